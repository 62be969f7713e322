package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"flowmaster/models"
	"flowmaster/utils"
)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestExpandRecurrence(t *testing.T) {
	first := at(monday, "09:00")
	jan31 := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		rule  models.RecurrenceRule
		first time.Time
		want  []time.Time
	}{
		{
			name:  "weekly by count",
			rule:  models.RecurrenceRule{Frequency: models.FrequencyWeekly, Interval: 1, Count: intPtr(3)},
			first: first,
			want:  []time.Time{first, first.AddDate(0, 0, 7), first.AddDate(0, 0, 14)},
		},
		{
			name:  "zero interval means one",
			rule:  models.RecurrenceRule{Frequency: models.FrequencyWeekly, Count: intPtr(2)},
			first: first,
			want:  []time.Time{first, first.AddDate(0, 0, 7)},
		},
		{
			name:  "weekly every other week",
			rule:  models.RecurrenceRule{Frequency: models.FrequencyWeekly, Interval: 2, Count: intPtr(2)},
			first: first,
			want:  []time.Time{first, first.AddDate(0, 0, 14)},
		},
		{
			name:  "biweekly",
			rule:  models.RecurrenceRule{Frequency: models.FrequencyBiweekly, Interval: 1, Count: intPtr(3)},
			first: first,
			want:  []time.Time{first, first.AddDate(0, 0, 14), first.AddDate(0, 0, 28)},
		},
		{
			name:  "end date is inclusive",
			rule:  models.RecurrenceRule{Frequency: models.FrequencyWeekly, Interval: 1, EndDate: timePtr(first.AddDate(0, 0, 14))},
			first: first,
			want:  []time.Time{first, first.AddDate(0, 0, 7), first.AddDate(0, 0, 14)},
		},
		{
			name:  "end date before first",
			rule:  models.RecurrenceRule{Frequency: models.FrequencyWeekly, Interval: 1, EndDate: timePtr(first.Add(-time.Hour))},
			first: first,
			want:  []time.Time{},
		},
		{
			name:  "monthly from the 31st clamps to month end",
			rule:  models.RecurrenceRule{Frequency: models.FrequencyMonthly, Interval: 1, Count: intPtr(4)},
			first: jan31,
			want: []time.Time{
				jan31,
				time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC),
				time.Date(2024, 4, 30, 10, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "monthly every two months across the year end",
			rule:  models.RecurrenceRule{Frequency: models.FrequencyMonthly, Interval: 2, Count: intPtr(3)},
			first: time.Date(2024, 10, 31, 10, 0, 0, 0, time.UTC),
			want: []time.Time{
				time.Date(2024, 10, 31, 10, 0, 0, 0, time.UTC),
				time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC),
				time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "matching day of week",
			rule:  models.RecurrenceRule{Frequency: models.FrequencyWeekly, Interval: 1, Count: intPtr(1), DayOfWeek: intPtr(int(time.Monday))},
			first: first,
			want:  []time.Time{first},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandRecurrence(tt.rule, tt.first)
			if err != nil {
				t.Fatalf("ExpandRecurrence: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d instants %v, want %d", len(got), got, len(tt.want))
			}
			for i := range tt.want {
				if !got[i].Equal(tt.want[i]) {
					t.Errorf("instant %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExpandRecurrence_Ceiling(t *testing.T) {
	first := at(monday, "09:00")
	rules := map[string]models.RecurrenceRule{
		"unbounded":   {Frequency: models.FrequencyWeekly, Interval: 1},
		"large count": {Frequency: models.FrequencyWeekly, Interval: 1, Count: intPtr(5000)},
		"far end":     {Frequency: models.FrequencyBiweekly, Interval: 1, EndDate: timePtr(first.AddDate(100, 0, 0))},
	}
	for name, rule := range rules {
		t.Run(name, func(t *testing.T) {
			got, err := ExpandRecurrence(rule, first)
			if err != nil {
				t.Fatalf("ExpandRecurrence: %v", err)
			}
			if len(got) != MaxOccurrences {
				t.Errorf("got %d instants, want %d", len(got), MaxOccurrences)
			}
		})
	}
}

func TestExpandRecurrence_Invalid(t *testing.T) {
	first := at(monday, "09:00")
	tests := []struct {
		name string
		rule models.RecurrenceRule
	}{
		{"count and end date", models.RecurrenceRule{Frequency: models.FrequencyWeekly, Count: intPtr(2), EndDate: timePtr(first.AddDate(0, 1, 0))}},
		{"zero count", models.RecurrenceRule{Frequency: models.FrequencyWeekly, Count: intPtr(0)}},
		{"negative interval", models.RecurrenceRule{Frequency: models.FrequencyWeekly, Interval: -1, Count: intPtr(2)}},
		{"weekly interval above a year", models.RecurrenceRule{Frequency: models.FrequencyWeekly, Interval: 53, Count: intPtr(2)}},
		{"biweekly interval above a year", models.RecurrenceRule{Frequency: models.FrequencyBiweekly, Interval: 27, Count: intPtr(2)}},
		{"monthly interval above a year", models.RecurrenceRule{Frequency: models.FrequencyMonthly, Interval: 13, Count: intPtr(2)}},
		{"huge interval", models.RecurrenceRule{Frequency: models.FrequencyWeekly, Interval: 1 << 30, Count: intPtr(2)}},
		{"unknown frequency", models.RecurrenceRule{Frequency: "DAILY", Count: intPtr(2)}},
		{"day of week mismatch", models.RecurrenceRule{Frequency: models.FrequencyWeekly, Count: intPtr(2), DayOfWeek: intPtr(int(time.Tuesday))}},
		{"day of week out of range", models.RecurrenceRule{Frequency: models.FrequencyWeekly, Count: intPtr(2), DayOfWeek: intPtr(7)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExpandRecurrence(tt.rule, first); !utils.IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
		})
	}
}

func TestCreateRecurringSeries(t *testing.T) {
	ctx := context.Background()

	t.Run("occupied occurrence is skipped", func(t *testing.T) {
		f := newFixture()
		if _, err := f.book(at(monday.AddDate(0, 0, 7), "09:00")); err != nil {
			t.Fatal(err)
		}
		res, err := f.svc.CreateRecurringSeries(ctx, testTenant, models.RecurringSeriesRequest{
			Frequency:      models.FrequencyWeekly,
			Count:          intPtr(3),
			ServiceID:      testSvc,
			ProfessionalID: testPro,
			StartTime:      "2024-06-10T09:00:00Z",
			UserID:         "user-1",
		})
		if err != nil {
			t.Fatalf("CreateRecurringSeries: %v", err)
		}
		if res.Summary.Created != 2 || res.Summary.Skipped != 1 {
			t.Fatalf("summary = %+v, want 2 created 1 skipped", res.Summary)
		}
		if len(res.Summary.Errors) != 1 || res.Summary.Errors[0] != "Skipped 2024-06-17T09:00:00Z: slot already booked" {
			t.Errorf("errors = %q", res.Summary.Errors)
		}
		if res.Summary.Skips[0].Code != models.SkipConflict {
			t.Errorf("skip code = %s", res.Summary.Skips[0].Code)
		}
		if res.Rule.Interval != 1 {
			t.Errorf("rule interval = %d, want 1", res.Rule.Interval)
		}
		if _, err := f.rules.GetByID(ctx, testTenant, res.Rule.ID); err != nil {
			t.Errorf("rule not stored: %v", err)
		}
		n, _ := f.ledger.CountByRule(ctx, testTenant, res.Rule.ID)
		if n != 2 {
			t.Errorf("appointments linked to rule = %d, want 2", n)
		}
	})

	t.Run("monthly drift off the working day", func(t *testing.T) {
		f := newFixture()
		// June 10 is a Monday, July 10 a Wednesday and August 10 a Saturday.
		res, err := f.svc.CreateRecurringSeries(ctx, testTenant, models.RecurringSeriesRequest{
			Frequency:      models.FrequencyMonthly,
			Count:          intPtr(3),
			ServiceID:      testSvc,
			ProfessionalID: testPro,
			StartTime:      "2024-06-10T09:00:00Z",
		})
		if err != nil {
			t.Fatalf("CreateRecurringSeries: %v", err)
		}
		if res.Summary.Created != 1 || res.Summary.Skipped != 2 {
			t.Fatalf("summary = %+v", res.Summary)
		}
		for _, s := range res.Summary.Skips {
			if s.Code != models.SkipOutsideSchedule {
				t.Errorf("skip %s code = %s, want %s", s.Date, s.Code, models.SkipOutsideSchedule)
			}
		}
		if !strings.HasPrefix(res.Summary.Errors[0], "Skipped 2024-07-10T09:00:00Z: ") {
			t.Errorf("error = %q", res.Summary.Errors[0])
		}
	})

	t.Run("date-only end date covers the day", func(t *testing.T) {
		f := newFixture()
		end := "2024-06-24"
		res, err := f.svc.CreateRecurringSeries(ctx, testTenant, models.RecurringSeriesRequest{
			Frequency:      models.FrequencyWeekly,
			EndDate:        &end,
			ServiceID:      testSvc,
			ProfessionalID: testPro,
			StartTime:      "2024-06-10T11:30:00Z",
		})
		if err != nil {
			t.Fatalf("CreateRecurringSeries: %v", err)
		}
		if res.Summary.Created != 3 {
			t.Errorf("created = %d, want 3", res.Summary.Created)
		}
	})

	t.Run("invalid rule stores nothing", func(t *testing.T) {
		f := newFixture()
		end := "2024-07-01"
		_, err := f.svc.CreateRecurringSeries(ctx, testTenant, models.RecurringSeriesRequest{
			Frequency:      models.FrequencyWeekly,
			Count:          intPtr(2),
			EndDate:        &end,
			ServiceID:      testSvc,
			ProfessionalID: testPro,
			StartTime:      "2024-06-10T09:00:00Z",
		})
		if !utils.IsValidation(err) {
			t.Fatalf("err = %v, want validation error", err)
		}
		if len(f.rules.byID) != 0 || f.ledger.count() != 0 {
			t.Errorf("rules=%d appointments=%d, want none", len(f.rules.byID), f.ledger.count())
		}
	})
}

func TestDeleteRecurrenceRule(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown rule", func(t *testing.T) {
		f := newFixture()
		if err := f.svc.DeleteRecurrenceRule(ctx, testTenant, "missing"); !utils.IsNotFound(err) {
			t.Fatalf("err = %v, want not found", err)
		}
	})

	t.Run("removes future appointments and keeps completed ones", func(t *testing.T) {
		f := newFixture()
		res, err := f.svc.CreateRecurringSeries(ctx, testTenant, models.RecurringSeriesRequest{
			Frequency:      models.FrequencyWeekly,
			Count:          intPtr(3),
			ServiceID:      testSvc,
			ProfessionalID: testPro,
			StartTime:      "2024-06-10T09:00:00Z",
		})
		if err != nil {
			t.Fatal(err)
		}
		appts, _ := f.ledger.List(ctx, testTenant, models.AppointmentFilter{})
		done := models.StatusCompleted
		if _, err := f.svc.UpdateAppointment(ctx, testTenant, appts[0].ID, models.AppointmentUpdate{Status: &done}); err != nil {
			t.Fatal(err)
		}

		if err := f.svc.DeleteRecurrenceRule(ctx, testTenant, res.Rule.ID); err != nil {
			t.Fatalf("DeleteRecurrenceRule: %v", err)
		}
		if f.ledger.count() != 1 {
			t.Errorf("ledger holds %d appointments, want the completed one", f.ledger.count())
		}
		if _, err := f.rules.GetByID(ctx, testTenant, res.Rule.ID); err == nil {
			t.Errorf("rule still stored")
		}
		if err := f.svc.DeleteRecurrenceRule(ctx, testTenant, res.Rule.ID); !utils.IsNotFound(err) {
			t.Errorf("second delete err = %v, want not found", err)
		}
	})

	t.Run("list reports linked appointments", func(t *testing.T) {
		f := newFixture()
		if _, err := f.svc.CreateRecurringSeries(ctx, testTenant, models.RecurringSeriesRequest{
			Frequency: models.FrequencyWeekly, Count: intPtr(2), ServiceID: testSvc,
			ProfessionalID: testPro, StartTime: "2024-06-10T10:00:00Z",
		}); err != nil {
			t.Fatal(err)
		}
		views, err := f.svc.ListRecurrenceRules(ctx, testTenant)
		if err != nil {
			t.Fatalf("ListRecurrenceRules: %v", err)
		}
		if len(views) != 1 || views[0].Appointments != 2 {
			t.Errorf("views = %+v", views)
		}
	})
}
