package dayplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mumu_delivery/internal/apperr"
	"mumu_delivery/internal/models"
)

func entries(n int) []models.DailyRoute {
	var out []models.DailyRoute
	for i := 0; i < n; i++ {
		e := NewEntry("2024-05-01", 7, uint(100+i), out)
		e.ID = uint(i + 1)
		out = append(out, e)
	}
	return out
}

func locationIDs(es []models.DailyRoute) []uint {
	ids := make([]uint, len(es))
	for i, e := range es {
		ids[i] = e.LocationID
	}
	return ids
}

func TestNewEntry_AssignsDenseSequence(t *testing.T) {
	es := entries(5)
	for i, e := range es {
		assert.Equal(t, i+1, e.Sequence)
		assert.Equal(t, models.RouteStatusPending, e.Status)
	}
}

func TestSwap_DownThenUpRestoresOrder(t *testing.T) {
	es := entries(4)
	for idx := 1; idx < len(es)-1; idx++ {
		moved, updates, err := Swap(es, idx, Up)
		require.NoError(t, err)
		require.Len(t, updates, 2)

		back, _, err := Swap(moved, idx-1, Down)
		require.NoError(t, err)
		assert.Equal(t, locationIDs(es), locationIDs(back))
	}
}

func TestSwap_BoundariesAreNoops(t *testing.T) {
	es := entries(3)

	out, updates, err := Swap(es, 0, Up)
	require.NoError(t, err)
	assert.Empty(t, updates)
	assert.Equal(t, locationIDs(es), locationIDs(out))

	out, updates, err = Swap(es, 2, Down)
	require.NoError(t, err)
	assert.Empty(t, updates)
	assert.Equal(t, locationIDs(es), locationIDs(out))
}

func TestSwap_WritesOnlyTheTwoSwappedEntries(t *testing.T) {
	es := entries(3)
	out, updates, err := Swap(es, 0, Down)
	require.NoError(t, err)

	assert.Equal(t, []uint{101, 100, 102}, locationIDs(out))
	assert.Equal(t, []SequenceUpdate{{RouteID: 2, Sequence: 1}, {RouteID: 1, Sequence: 2}}, updates)
	assert.Equal(t, 1, out[0].Sequence)
	assert.Equal(t, 2, out[1].Sequence)
	// input is untouched
	assert.Equal(t, uint(100), es[0].LocationID)
	assert.Equal(t, 1, es[0].Sequence)
}

// gapped mirrors a day after two removals and a new assignment:
// C and E share sequence 3, D holds 4.
func gapped() []models.DailyRoute {
	es := []models.DailyRoute{
		{LocationID: 3, Sequence: 3},
		{LocationID: 5, Sequence: 3},
		{LocationID: 4, Sequence: 4},
	}
	es[0].ID, es[1].ID, es[2].ID = 3, 5, 4
	return es
}

func TestSwap_RenumbersListWithGaps(t *testing.T) {
	es := gapped()
	assert.False(t, Dense(es))

	out, updates, err := Swap(es, 2, Up)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 4, 5}, locationIDs(out))
	assert.Equal(t, []int{1, 2, 3}, []int{out[0].Sequence, out[1].Sequence, out[2].Sequence})
	assert.Equal(t, []SequenceUpdate{{RouteID: 3, Sequence: 1}, {RouteID: 4, Sequence: 2}}, updates)
	assert.True(t, Dense(out))

	// once dense, the inverse move is a plain two-row swap
	back, updates, err := Swap(out, 1, Down)
	require.NoError(t, err)
	assert.Len(t, updates, 2)
	assert.Equal(t, locationIDs(es), locationIDs(back))
}

func TestSwap_BoundaryOnGappedListWritesNothing(t *testing.T) {
	out, updates, err := Swap(gapped(), 0, Up)
	require.NoError(t, err)
	assert.Empty(t, updates)
	assert.Equal(t, []uint{3, 5, 4}, locationIDs(out))
}

func TestSwap_RejectsBadInput(t *testing.T) {
	es := entries(2)
	_, _, err := Swap(es, 5, Up)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, _, err = Swap(es, 0, Direction("sideways"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSort_TieBreaksByCreationThenID(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	es := []models.DailyRoute{
		{Sequence: 2},
		{Sequence: 1},
		{Sequence: 1},
		{Sequence: 1},
	}
	es[0].ID, es[1].ID, es[2].ID, es[3].ID = 1, 2, 3, 4
	es[1].CreatedAt = base.Add(time.Minute)
	es[2].CreatedAt = base
	es[3].CreatedAt = base

	Sort(es)

	got := []uint{es[0].ID, es[1].ID, es[2].ID, es[3].ID}
	assert.Equal(t, []uint{3, 4, 2, 1}, got)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.RouteStatusPending, models.RouteStatusCompleted))
	assert.True(t, CanTransition(models.RouteStatusCompleted, models.RouteStatusCompleted))
	assert.False(t, CanTransition(models.RouteStatusCompleted, models.RouteStatusPending))
	assert.False(t, CanTransition(models.RouteStatus("LOST"), models.RouteStatusCompleted))
	assert.False(t, CanTransition(models.RouteStatusPending, models.RouteStatus("")))
}

func TestParseDirectionAndDate(t *testing.T) {
	d, err := ParseDirection(" UP ")
	require.NoError(t, err)
	assert.Equal(t, Up, d)

	_, err = ParseDirection("left")
	assert.Error(t, err)

	date, err := ParseDate("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", date)

	_, err = ParseDate("05/01/2024")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestGroupAndProgress(t *testing.T) {
	es := []models.DailyRoute{
		{DriverID: 1, Sequence: 2, Status: models.RouteStatusCompleted},
		{DriverID: 2, Sequence: 1},
		{DriverID: 1, Sequence: 1},
	}
	g := Group(es)
	require.Len(t, g, 2)
	assert.Equal(t, 1, g[1][0].Sequence)
	assert.Equal(t, 2, g[1][1].Sequence)

	done, total := Progress(g[1])
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)
}

func TestToday_UsesLocation(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	now := time.Date(2024, 4, 30, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-01", Today(now, seoul))
	assert.Equal(t, "2024-04-30", Today(now, nil))
}
