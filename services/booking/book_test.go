package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flowmaster/models"
	"flowmaster/utils"
)

func TestBook(t *testing.T) {
	ctx := context.Background()

	t.Run("free generated slot", func(t *testing.T) {
		f := newFixture()
		appt, err := f.book(at(monday, "09:00"))
		if err != nil {
			t.Fatalf("Book: %v", err)
		}
		if appt.Status != models.StatusScheduled || appt.PaymentStatus != models.PaymentNone {
			t.Errorf("status = %s/%s, want SCHEDULED/NONE", appt.Status, appt.PaymentStatus)
		}
		if !appt.Date.Equal(at(monday, "09:00")) || appt.Date.Location() != time.UTC {
			t.Errorf("date = %s, want 2024-06-10T09:00:00Z", appt.Date)
		}
		if f.ledger.count() != 1 {
			t.Errorf("ledger holds %d appointments, want 1", f.ledger.count())
		}
	})

	t.Run("offset timestamp is normalised", func(t *testing.T) {
		f := newFixture()
		appt, err := f.svc.Book(ctx, models.BookingRequest{
			TenantID: testTenant, ServiceID: testSvc, ProfessionalID: testPro,
			StartTime: "2024-06-10T06:30:00-03:00",
		})
		if err != nil {
			t.Fatalf("Book: %v", err)
		}
		if !appt.Date.Equal(at(monday, "09:30")) {
			t.Errorf("date = %s, want 09:30 UTC", appt.Date)
		}
	})

	t.Run("occupied slot conflicts", func(t *testing.T) {
		f := newFixture()
		if _, err := f.book(at(monday, "10:00")); err != nil {
			t.Fatalf("first Book: %v", err)
		}
		_, err := f.book(at(monday, "10:00"))
		if !utils.IsConflict(err) {
			t.Fatalf("err = %v, want conflict", err)
		}
		if err.Error() != "slot already booked" {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("instant off the grid", func(t *testing.T) {
		f := newFixture()
		_, err := f.book(at(monday, "09:15"))
		var ve *utils.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("err = %v, want validation error", err)
		}
		if ve.Code != models.SkipOutsideSchedule {
			t.Errorf("code = %q, want %q", ve.Code, models.SkipOutsideSchedule)
		}
		if ve.Message != "requested slot is not available in professional schedule" {
			t.Errorf("message = %q", ve.Message)
		}
	})

	t.Run("window end is not bookable", func(t *testing.T) {
		f := newFixture()
		_, err := f.book(at(monday, "12:00"))
		if !utils.IsValidation(err) {
			t.Fatalf("err = %v, want validation error", err)
		}
	})

	t.Run("day off", func(t *testing.T) {
		f := newFixture()
		_, err := f.book(at(monday.AddDate(0, 0, 1), "09:00"))
		if !utils.IsValidation(err) {
			t.Fatalf("err = %v, want validation error", err)
		}
	})

	tests := []struct {
		name string
		req  models.BookingRequest
	}{
		{"missing service", models.BookingRequest{TenantID: testTenant, ProfessionalID: testPro, StartTime: "2024-06-10T09:00:00Z"}},
		{"unknown service", models.BookingRequest{TenantID: testTenant, ServiceID: "nope", ProfessionalID: testPro, StartTime: "2024-06-10T09:00:00Z"}},
		{"service of another tenant", models.BookingRequest{TenantID: "tenant-b", ServiceID: testSvc, StartTime: "2024-06-10T09:00:00Z"}},
		{"unknown professional", models.BookingRequest{TenantID: testTenant, ServiceID: testSvc, ProfessionalID: "nope", StartTime: "2024-06-10T09:00:00Z"}},
		{"malformed start", models.BookingRequest{TenantID: testTenant, ServiceID: testSvc, ProfessionalID: testPro, StartTime: "2024-06-10 09:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.Book(ctx, tt.req)
			if !utils.IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if f.ledger.count() != 0 {
				t.Errorf("ledger holds %d appointments, want 0", f.ledger.count())
			}
		})
	}

	t.Run("without professional skips the schedule", func(t *testing.T) {
		f := newFixture()
		req := models.BookingRequest{TenantID: testTenant, ServiceID: testSvc, StartTime: "2024-06-11T03:17:00Z"}
		for i := 0; i < 2; i++ {
			if _, err := f.svc.Book(ctx, req); err != nil {
				t.Fatalf("Book #%d: %v", i+1, err)
			}
		}
		if f.ledger.count() != 2 {
			t.Errorf("ledger holds %d appointments, want 2", f.ledger.count())
		}
	})
}

func TestBook_ConcurrentRequestsForOneSlot(t *testing.T) {
	const callers = 5
	f := newFixture()
	slot := at(monday, "11:00")

	var (
		wg        sync.WaitGroup
		start     = make(chan struct{})
		successes int
		conflicts int
		mu        sync.Mutex
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.book(slot)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case utils.IsConflict(err):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if successes != 1 || conflicts != callers-1 {
		t.Fatalf("successes=%d conflicts=%d, want 1 and %d", successes, conflicts, callers-1)
	}
	if f.ledger.count() != 1 {
		t.Errorf("ledger holds %d appointments, want 1", f.ledger.count())
	}
}

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()
	ptr := func(s string) *string { return &s }

	t.Run("move onto an occupied slot", func(t *testing.T) {
		f := newFixture()
		if _, err := f.book(at(monday, "09:00")); err != nil {
			t.Fatal(err)
		}
		second, err := f.book(at(monday, "09:30"))
		if err != nil {
			t.Fatal(err)
		}
		_, err = f.svc.UpdateAppointment(ctx, testTenant, second.ID, models.AppointmentUpdate{StartTime: ptr("2024-06-10T09:00:00Z")})
		if !utils.IsConflict(err) {
			t.Fatalf("err = %v, want conflict", err)
		}
	})

	t.Run("move to a free slot", func(t *testing.T) {
		f := newFixture()
		appt, err := f.book(at(monday, "09:00"))
		if err != nil {
			t.Fatal(err)
		}
		got, err := f.svc.UpdateAppointment(ctx, testTenant, appt.ID, models.AppointmentUpdate{StartTime: ptr("2024-06-10T10:30:00Z")})
		if err != nil {
			t.Fatalf("UpdateAppointment: %v", err)
		}
		if !got.Date.Equal(at(monday, "10:30")) {
			t.Errorf("date = %s, want 10:30", got.Date)
		}
	})

	t.Run("reactivating onto a taken slot", func(t *testing.T) {
		f := newFixture()
		first, err := f.book(at(monday, "09:00"))
		if err != nil {
			t.Fatal(err)
		}
		if err := f.svc.CancelAppointment(ctx, testTenant, first.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := f.book(at(monday, "09:00")); err != nil {
			t.Fatalf("rebook freed slot: %v", err)
		}
		status := models.StatusScheduled
		_, err = f.svc.UpdateAppointment(ctx, testTenant, first.ID, models.AppointmentUpdate{Status: &status})
		if !utils.IsConflict(err) {
			t.Fatalf("err = %v, want conflict", err)
		}
	})

	t.Run("completing keeps the slot", func(t *testing.T) {
		f := newFixture()
		appt, err := f.book(at(monday, "09:00"))
		if err != nil {
			t.Fatal(err)
		}
		status := models.StatusCompleted
		got, err := f.svc.UpdateAppointment(ctx, testTenant, appt.ID, models.AppointmentUpdate{Status: &status})
		if err != nil {
			t.Fatalf("UpdateAppointment: %v", err)
		}
		if got.Status != models.StatusCompleted {
			t.Errorf("status = %s", got.Status)
		}
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UpdateAppointment(ctx, testTenant, "missing", models.AppointmentUpdate{})
		if !utils.IsNotFound(err) {
			t.Fatalf("err = %v, want not found", err)
		}
	})
}

func TestPaymentTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("approve twice", func(t *testing.T) {
		f := newFixture()
		appt, err := f.book(at(monday, "09:00"))
		if err != nil {
			t.Fatal(err)
		}
		got, err := f.svc.ApprovePayment(ctx, testTenant, appt.ID)
		if err != nil {
			t.Fatalf("ApprovePayment: %v", err)
		}
		if got.PaymentStatus != models.PaymentPaid {
			t.Errorf("payment = %s, want PAID", got.PaymentStatus)
		}
		if _, err := f.svc.ApprovePayment(ctx, testTenant, appt.ID); !utils.IsValidation(err) {
			t.Fatalf("second approve err = %v, want validation error", err)
		}
		if len(f.notifier.sent) != 1 || f.notifier.sent[0].Type != models.NotificationPaymentApproved {
			t.Errorf("notifications = %+v", f.notifier.sent)
		}
	})

	t.Run("reject cancels and frees the slot", func(t *testing.T) {
		f := newFixture()
		appt, err := f.book(at(monday, "09:00"))
		if err != nil {
			t.Fatal(err)
		}
		got, err := f.svc.RejectPayment(ctx, testTenant, appt.ID)
		if err != nil {
			t.Fatalf("RejectPayment: %v", err)
		}
		if got.Status != models.StatusCancelled || got.PaymentStatus != models.PaymentRejected {
			t.Errorf("state = %s/%s", got.Status, got.PaymentStatus)
		}
		if _, err := f.book(at(monday, "09:00")); err != nil {
			t.Errorf("slot should be free after rejection: %v", err)
		}
		if len(f.notifier.sent) != 1 || f.notifier.sent[0].Metadata["appointmentId"] != appt.ID {
			t.Errorf("notifications = %+v", f.notifier.sent)
		}
	})
}
