// Package dayplan is the in-memory model of a driver's ordered stop list
// for one day. It owns ordering, sequence assignment, neighbour swaps and
// the route status transition rule. Nothing here touches storage.
package dayplan

import (
	"sort"
	"strings"
	"time"

	"mumu_delivery/internal/apperr"
	"mumu_delivery/internal/models"
)

// DateLayout is the wire and storage format of a route date.
const DateLayout = "2006-01-02"

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Up, Down:
		return d, nil
	}
	return "", apperr.Validation("dayplan.ParseDirection", "direction must be up or down")
}

// ParseDate validates a YYYY-MM-DD date and returns it normalised.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", apperr.Validation("dayplan.ParseDate", "date must be YYYY-MM-DD")
	}
	return t.Format(DateLayout), nil
}

// Today is the current date in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateLayout)
}

// Sort orders entries by sequence. Equal sequences can exist after a
// failed write, so ties fall back to creation time and then id.
func Sort(entries []models.DailyRoute) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Sequence != b.Sequence {
			return a.Sequence < b.Sequence
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// NextSequence is the sequence a newly assigned stop receives.
func NextSequence(entries []models.DailyRoute) int {
	return len(entries) + 1
}

// NewEntry builds the pending stop appended by an assignment.
func NewEntry(date string, driverID, locationID uint, current []models.DailyRoute) models.DailyRoute {
	return models.DailyRoute{
		Date:       date,
		DriverID:   driverID,
		LocationID: locationID,
		Sequence:   NextSequence(current),
		Status:     models.RouteStatusPending,
	}
}

// HasLocation reports whether the day already visits locationID.
func HasLocation(entries []models.DailyRoute, locationID uint) bool {
	for _, e := range entries {
		if e.LocationID == locationID {
			return true
		}
	}
	return false
}

// SequenceUpdate is one persisted sequence change.
type SequenceUpdate struct {
	RouteID  uint
	Sequence int
}

// Dense reports whether the sorted entries carry sequences exactly 1..N.
func Dense(entries []models.DailyRoute) bool {
	for i, e := range entries {
		if e.Sequence != i+1 {
			return false
		}
	}
	return true
}

// Swap moves the entry at sorted position index one step in dir. The
// returned slice is a reordered copy. On a dense list updates holds
// exactly the two swapped entries, with sequences index+1 and target+1.
// A list with gaps or ties (left by a removal) is renumbered 1..N in its
// new order and updates covers every entry whose sequence changed.
// Moving the first entry up or the last entry down is a no-op.
func Swap(entries []models.DailyRoute, index int, dir Direction) ([]models.DailyRoute, []SequenceUpdate, error) {
	if index < 0 || index >= len(entries) {
		return nil, nil, apperr.Validation("dayplan.Swap", "index out of range")
	}
	target := index - 1
	if dir == Down {
		target = index + 1
	} else if dir != Up {
		return nil, nil, apperr.Validation("dayplan.Swap", "direction must be up or down")
	}

	out := make([]models.DailyRoute, len(entries))
	copy(out, entries)
	if target < 0 || target >= len(entries) {
		return out, nil, nil
	}

	dense := Dense(entries)
	out[index], out[target] = out[target], out[index]

	if dense {
		out[index].Sequence = index + 1
		out[target].Sequence = target + 1
		return out, []SequenceUpdate{
			{RouteID: out[index].ID, Sequence: index + 1},
			{RouteID: out[target].ID, Sequence: target + 1},
		}, nil
	}

	var updates []SequenceUpdate
	for i := range out {
		if out[i].Sequence != i+1 {
			out[i].Sequence = i + 1
			updates = append(updates, SequenceUpdate{RouteID: out[i].ID, Sequence: i + 1})
		}
	}
	return out, updates, nil
}

// CanTransition allows PENDING to COMPLETED and the idempotent
// COMPLETED to COMPLETED. There is no way back to PENDING.
func CanTransition(from, to models.RouteStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	switch from {
	case models.RouteStatusPending:
		return to == models.RouteStatusPending || to == models.RouteStatusCompleted
	case models.RouteStatusCompleted:
		return to == models.RouteStatusCompleted
	}
	return false
}

// Progress counts completed stops.
func Progress(entries []models.DailyRoute) (completed, total int) {
	for _, e := range entries {
		if e.Status == models.RouteStatusCompleted {
			completed++
		}
	}
	return completed, len(entries)
}

// Group splits a day's entries by driver, keeping each list sorted.
func Group(entries []models.DailyRoute) map[uint][]models.DailyRoute {
	out := make(map[uint][]models.DailyRoute)
	for _, e := range entries {
		out[e.DriverID] = append(out[e.DriverID], e)
	}
	for id := range out {
		Sort(out[id])
	}
	return out
}
