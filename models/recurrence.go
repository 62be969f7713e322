package models

import "time"

// Frequency is the repetition unit of a recurrence rule.
type Frequency string

const (
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyBiweekly Frequency = "BIWEEKLY"
	FrequencyMonthly  Frequency = "MONTHLY"
)

// RecurrenceRule describes a bounded series of appointments.
// Count and EndDate are mutually exclusive.
type RecurrenceRule struct {
	ID        string     `bson:"id" json:"id"`
	TenantID  string     `bson:"tenantId" json:"tenantId"`
	Frequency Frequency  `bson:"frequency" json:"frequency"`
	Interval  int        `bson:"interval" json:"interval"`
	Count     *int       `bson:"count,omitempty" json:"count,omitempty"`
	EndDate   *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	DayOfWeek *int       `bson:"dayOfWeek,omitempty" json:"dayOfWeek,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// RecurringSeriesRequest is the payload for POST /appointments/recurring.
type RecurringSeriesRequest struct {
	Frequency      Frequency `json:"frequency" binding:"required"`
	Interval       int       `json:"interval"`
	Count          *int      `json:"count"`
	EndDate        *string   `json:"endDate"`
	DayOfWeek      *int      `json:"dayOfWeek"`
	ServiceID      string    `json:"serviceId" binding:"required"`
	ProfessionalID string    `json:"professionalId"`
	StartTime      string    `json:"startTime" binding:"required"`
	UserID         string    `json:"userId"`
}

// Skip codes reported for occurrences that were not booked.
const (
	SkipConflict        = "CONFLICT"
	SkipOutsideSchedule = "OUTSIDE_SCHEDULE"
	SkipInvalid         = "INVALID"
)

// SkippedOccurrence explains why one instant of a series was not booked.
type SkippedOccurrence struct {
	Date   time.Time `json:"date"`
	Code   string    `json:"code"`
	Reason string    `json:"reason"`
}

// SeriesSummary reports the outcome of booking a recurring series.
type SeriesSummary struct {
	Created int                 `json:"created"`
	Skipped int                 `json:"skipped"`
	Errors  []string            `json:"errors"`
	Skips   []SkippedOccurrence `json:"skips"`
}

// RecurringSeriesResult is returned after creating a series.
type RecurringSeriesResult struct {
	Rule    *RecurrenceRule `json:"rule"`
	Summary SeriesSummary   `json:"summary"`
}

// RecurrenceRuleView is a rule together with the number of appointments still linked to it.
type RecurrenceRuleView struct {
	RecurrenceRule `bson:",inline"`
	Appointments   int64 `json:"appointmentCount"`
}
