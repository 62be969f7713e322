package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	recurrenceRepo "flowmaster/database/repository/recurrence"
	"flowmaster/models"
	"flowmaster/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxOccurrences caps every series regardless of its bound.
const MaxOccurrences = 1000

// Largest interval accepted per frequency; all three span one year.
const (
	maxWeeklyInterval   = 52
	maxBiweeklyInterval = 26
	maxMonthlyInterval  = 12
)

// ExpandRecurrence lists the instants of rule starting at first (included).
func ExpandRecurrence(rule models.RecurrenceRule, first time.Time) ([]time.Time, error) {
	if err := validateRule(&rule, first); err != nil {
		return nil, err
	}
	first = first.UTC()

	limit := MaxOccurrences
	if rule.Count != nil && *rule.Count < limit {
		limit = *rule.Count
	}

	out := make([]time.Time, 0, min(limit, 64))
	for k := 0; len(out) < limit; k++ {
		t := step(rule, first, k)
		if rule.EndDate != nil && t.After(*rule.EndDate) {
			break
		}
		out = append(out, t)
	}
	return out, nil
}

// step returns the k-th occurrence. Months are counted from the first instant, so a
// series started on the 31st returns to the 31st whenever the month has one.
func step(rule models.RecurrenceRule, first time.Time, k int) time.Time {
	switch rule.Frequency {
	case models.FrequencyBiweekly:
		return first.AddDate(0, 0, 14*rule.Interval*k)
	case models.FrequencyMonthly:
		return addMonthsClamped(first, rule.Interval*k)
	default:
		return first.AddDate(0, 0, 7*rule.Interval*k)
	}
}

// addMonthsClamped moves t forward n calendar months, clamping the day to the
// target month's last day instead of spilling into the month after.
func addMonthsClamped(t time.Time, n int) time.Time {
	m := int(t.Month()) - 1 + n
	year := t.Year() + m/12
	month := time.Month(m%12 + 1)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return time.Date(year, month, min(t.Day(), last), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// validateRule checks the rule and fills the default interval.
func validateRule(rule *models.RecurrenceRule, first time.Time) error {
	switch rule.Frequency {
	case models.FrequencyWeekly, models.FrequencyBiweekly, models.FrequencyMonthly:
	default:
		return utils.NewValidationError("unknown frequency %q", rule.Frequency)
	}
	if rule.Interval < 0 {
		return utils.NewValidationError("interval must be at least 1")
	}
	if rule.Interval == 0 {
		rule.Interval = 1
	}
	if limit := maxInterval(rule.Frequency); rule.Interval > limit {
		return utils.NewValidationError("interval for %s must be at most %d", rule.Frequency, limit)
	}
	if rule.Count != nil && rule.EndDate != nil {
		return utils.NewValidationError("count and endDate are mutually exclusive")
	}
	if rule.Count != nil && *rule.Count < 1 {
		return utils.NewValidationError("count must be at least 1")
	}
	if rule.DayOfWeek != nil {
		if *rule.DayOfWeek < 0 || *rule.DayOfWeek > 6 {
			return utils.NewValidationError("dayOfWeek must be between 0 and 6")
		}
		if time.Weekday(*rule.DayOfWeek) != first.UTC().Weekday() {
			return utils.NewValidationError("startTime falls on %s but dayOfWeek is %s",
				first.UTC().Weekday(), time.Weekday(*rule.DayOfWeek))
		}
	}
	return nil
}

func maxInterval(f models.Frequency) int {
	switch f {
	case models.FrequencyBiweekly:
		return maxBiweeklyInterval
	case models.FrequencyMonthly:
		return maxMonthlyInterval
	default:
		return maxWeeklyInterval
	}
}

// parseEndDate accepts RFC 3339 or a bare date. A bare date covers the whole UTC day.
func parseEndDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, utils.NewValidationError("invalid endDate %q", raw)
	}
	return d.Add(24*time.Hour - time.Nanosecond), nil
}

// CreateRecurringSeries stores the rule and books its occurrences one after another.
// Occurrences that conflict or fall outside the schedule are skipped; any other failure
// stops the series and is returned.
func (s *DefaultBookingService) CreateRecurringSeries(ctx context.Context, tenantID string, req models.RecurringSeriesRequest) (*models.RecurringSeriesResult, error) {
	logger := utils.GetLogger()

	first, err := parseInstant(req.StartTime)
	if err != nil {
		return nil, err
	}
	rule := models.RecurrenceRule{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Frequency: req.Frequency,
		Interval:  req.Interval,
		Count:     req.Count,
		DayOfWeek: req.DayOfWeek,
		CreatedAt: s.now(),
	}
	if req.EndDate != nil {
		end, err := parseEndDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		rule.EndDate = &end
	}

	instants, err := ExpandRecurrence(rule, first)
	if err != nil {
		return nil, err
	}
	if rule.Interval == 0 {
		rule.Interval = 1
	}
	if err := s.requireService(ctx, tenantID, req.ServiceID); err != nil {
		return nil, err
	}
	if req.ProfessionalID != "" {
		if err := s.requireProfessional(ctx, tenantID, req.ProfessionalID); err != nil {
			return nil, err
		}
	}

	if err := s.Rules.Create(ctx, &rule); err != nil {
		return nil, fmt.Errorf("failed to save recurrence rule: %w", err)
	}

	summary := models.SeriesSummary{Errors: []string{}, Skips: []models.SkippedOccurrence{}}
	for _, at := range instants {
		_, err := s.Book(ctx, models.BookingRequest{
			TenantID:         tenantID,
			ServiceID:        req.ServiceID,
			ProfessionalID:   req.ProfessionalID,
			StartTime:        at.Format(time.RFC3339),
			UserID:           req.UserID,
			RecurrenceRuleID: rule.ID,
		})
		if err == nil {
			summary.Created++
			continue
		}

		code, ok := skipCode(err)
		if !ok {
			logger.Error("recurring series aborted",
				zap.String("ruleId", rule.ID), zap.Time("at", at), zap.Error(err))
			return nil, err
		}
		summary.Skipped++
		summary.Skips = append(summary.Skips, models.SkippedOccurrence{Date: at, Code: code, Reason: err.Error()})
		summary.Errors = append(summary.Errors, fmt.Sprintf("Skipped %s: %s", at.Format(time.RFC3339), err.Error()))
	}

	logger.Info("recurring series created",
		zap.String("tenantId", tenantID),
		zap.String("ruleId", rule.ID),
		zap.Int("created", summary.Created),
		zap.Int("skipped", summary.Skipped),
	)
	return &models.RecurringSeriesResult{Rule: &rule, Summary: summary}, nil
}

// skipCode classifies a booking failure that must not stop a series.
func skipCode(err error) (string, bool) {
	if utils.IsConflict(err) {
		return models.SkipConflict, true
	}
	var ve *utils.ValidationError
	if errors.As(err, &ve) {
		if ve.Code == models.SkipOutsideSchedule {
			return models.SkipOutsideSchedule, true
		}
		return models.SkipInvalid, true
	}
	return "", false
}

func (s *DefaultBookingService) ListRecurrenceRules(ctx context.Context, tenantID string) ([]models.RecurrenceRuleView, error) {
	rules, err := s.Rules.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	views := make([]models.RecurrenceRuleView, 0, len(rules))
	for _, r := range rules {
		n, err := s.Appointments.CountByRule(ctx, tenantID, r.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, models.RecurrenceRuleView{RecurrenceRule: r, Appointments: n})
	}
	return views, nil
}

// DeleteRecurrenceRule removes the rule's future, non-completed appointments and then the
// rule itself. Failing to remove the rule row is logged and ignored.
func (s *DefaultBookingService) DeleteRecurrenceRule(ctx context.Context, tenantID, ruleID string) error {
	logger := utils.GetLogger()

	if _, err := s.Rules.GetByID(ctx, tenantID, ruleID); err != nil {
		if errors.Is(err, recurrenceRepo.ErrNotFound) {
			return utils.NewNotFoundError("recurrence rule", ruleID)
		}
		return err
	}

	removed, err := s.Appointments.DeleteFutureByRule(ctx, tenantID, ruleID, s.now())
	if err != nil {
		return err
	}

	if err := s.Rules.Delete(ctx, tenantID, ruleID); err != nil {
		logger.Warn("recurrence rule kept after cleanup",
			zap.String("ruleId", ruleID), zap.Error(err))
	}
	logger.Info("recurrence rule deleted",
		zap.String("tenantId", tenantID), zap.String("ruleId", ruleID), zap.Int64("appointmentsRemoved", removed))
	return nil
}
