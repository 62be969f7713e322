package models

import "time"

// WorkingWindow is the time-of-day range a professional accepts bookings on one weekday.
// Times are "HH:mm" in UTC.
type WorkingWindow struct {
	ID             string `bson:"id" json:"id"`
	TenantID       string `bson:"tenantId" json:"tenantId"`
	ProfessionalID string `bson:"professionalId" json:"professionalId"`
	DayOfWeek      int    `bson:"dayOfWeek" json:"dayOfWeek" binding:"min=0,max=6"`
	StartTime      string `bson:"startTime" json:"startTime" binding:"required"`
	EndTime        string `bson:"endTime" json:"endTime" binding:"required"`
}

// SetScheduleRequest replaces every working window of a professional.
type SetScheduleRequest struct {
	Windows []WorkingWindow `json:"windows" binding:"dive"`
}

// EndOfDay is the only clock past 23:59 a window may use; it closes the window at midnight.
const EndOfDay = "24:00"

// ParseClock reads "HH:mm" into an offset from midnight. "24:00" is accepted as 24h.
func ParseClock(s string) (time.Duration, bool) {
	if s == EndOfDay {
		return 24 * time.Hour, true
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}
