// Package status derives the display status of a route entry from its
// delivery log.
package status

import (
	"time"

	"mumu_delivery/internal/models"
)

type Color string

const (
	ColorNeutral Color = "neutral"
	ColorBlue    Color = "blue"
	ColorOrange  Color = "orange"
	ColorIndigo  Color = "indigo"
	ColorGray    Color = "gray"
)

// CodePending is reported when no log has been recorded yet.
const CodePending = "PENDING"

type Display struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	LabelEN string `json:"label_en"`
	Color   Color  `json:"color"`
	Time    string `json:"time,omitempty"`
}

// Project looks only at the first log; a route entry has at most one.
// Timestamps are rendered as hour:minute in loc (UTC when nil).
func Project(entry models.DailyRoute, logs []models.DeliveryLog, loc *time.Location) Display {
	if len(logs) == 0 {
		return Display{Code: CodePending, Label: "대기 중", LabelEN: "Pending", Color: ColorNeutral}
	}
	log := logs[0]
	d := forType(log.Type)
	if loc == nil {
		loc = time.UTC
	}
	if !log.CreatedAt.IsZero() {
		d.Time = log.CreatedAt.In(loc).Format("15:04")
	}
	return d
}

// ProjectEntry projects an entry using its preloaded logs.
func ProjectEntry(entry models.DailyRoute, loc *time.Location) Display {
	return Project(entry, entry.Logs, loc)
}

func forType(t models.LogType) Display {
	switch t {
	case models.LogDelivery:
		return Display{Code: string(t), Label: "배송 완료", LabelEN: "Delivery complete", Color: ColorBlue}
	case models.LogPickup:
		return Display{Code: string(t), Label: "회수 완료", LabelEN: "Pickup complete", Color: ColorOrange}
	case models.LogBoth:
		return Display{Code: string(t), Label: "배송+회수", LabelEN: "Delivery + pickup", Color: ColorIndigo}
	case models.LogOther:
		return Display{Code: string(t), Label: "기타", LabelEN: "Other", Color: ColorGray}
	}
	return Display{Code: "UNKNOWN", Label: "알 수 없음", LabelEN: "Unknown", Color: ColorGray}
}
