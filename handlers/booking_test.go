package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flowmaster/middleware"
	"flowmaster/models"
	"flowmaster/services/booking"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
)

type mockBookingService struct {
	booking.BookingService

	availableFunc  func(ctx context.Context, tenantID, professionalID, date string) ([]time.Time, error)
	bookFunc       func(ctx context.Context, req models.BookingRequest) (*models.Appointment, error)
	recurringFunc  func(ctx context.Context, tenantID string, req models.RecurringSeriesRequest) (*models.RecurringSeriesResult, error)
	deleteRuleFunc func(ctx context.Context, tenantID, ruleID string) error
}

func (m *mockBookingService) AvailableSlots(ctx context.Context, tenantID, professionalID, date string) ([]time.Time, error) {
	return m.availableFunc(ctx, tenantID, professionalID, date)
}

func (m *mockBookingService) Book(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	return m.bookFunc(ctx, req)
}

func (m *mockBookingService) CreateRecurringSeries(ctx context.Context, tenantID string, req models.RecurringSeriesRequest) (*models.RecurringSeriesResult, error) {
	return m.recurringFunc(ctx, tenantID, req)
}

func (m *mockBookingService) DeleteRecurrenceRule(ctx context.Context, tenantID, ruleID string) error {
	return m.deleteRuleFunc(ctx, tenantID, ruleID)
}

func bearer(t *testing.T, tenantID string) string {
	t.Helper()
	token, err := utils.GenerateToken(models.Principal{UserID: "user-1", TenantID: tenantID, Role: models.RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + token
}

func newBookingRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(svc)
	r := gin.New()
	r.GET("/api/public/availability", h.GetPublicAvailability)
	api := r.Group("/api", middleware.JWTAuthMiddleware())
	api.GET("/professionals/:id/availability", h.GetAvailability)
	api.POST("/appointments", h.CreateAppointment)
	api.POST("/appointments/recurring", h.CreateRecurring)
	api.DELETE("/recurrence-rules/:id", h.DeleteRecurrenceRule)
	return r
}

func do(r http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAppointment(t *testing.T) {
	okAppt := &models.Appointment{ID: "a1", TenantID: "t1", Date: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), Status: models.StatusScheduled}

	tests := []struct {
		name       string
		body       string
		bookErr    error
		wantStatus int
		wantMsg    string
	}{
		{name: "created", body: `{"serviceId":"s1","professionalId":"p1","startTime":"2024-06-10T09:00:00Z"}`, wantStatus: http.StatusCreated},
		{name: "slot taken", body: `{"serviceId":"s1","professionalId":"p1","startTime":"2024-06-10T09:00:00Z"}`, bookErr: utils.NewConflictError("slot already booked"), wantStatus: http.StatusConflict, wantMsg: "slot already booked"},
		{
			name:       "outside schedule",
			body:       `{"serviceId":"s1","professionalId":"p1","startTime":"2024-06-10T09:15:00Z"}`,
			bookErr:    &utils.ValidationError{Message: "requested slot is not available in professional schedule", Code: models.SkipOutsideSchedule},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "requested slot is not available in professional schedule",
		},
		{name: "missing start time", body: `{"serviceId":"s1"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{"serviceId":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.BookingRequest
			svc := &mockBookingService{bookFunc: func(_ context.Context, req models.BookingRequest) (*models.Appointment, error) {
				got = req
				if tt.bookErr != nil {
					return nil, tt.bookErr
				}
				return okAppt, nil
			}}
			w := do(newBookingRouter(svc), http.MethodPost, "/api/appointments", bearer(t, "t1"), tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusCreated && got.TenantID != "t1" {
				t.Errorf("tenant = %q, want the token's tenant", got.TenantID)
			}
			if tt.wantMsg != "" {
				var resp utils.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatal(err)
				}
				if resp.Status != "error" || resp.Message != tt.wantMsg {
					t.Errorf("body = %+v", resp)
				}
			}
		})
	}
}

func TestCreateAppointment_RequiresToken(t *testing.T) {
	svc := &mockBookingService{}
	w := do(newBookingRouter(svc), http.MethodPost, "/api/appointments", "", `{"serviceId":"s1","startTime":"2024-06-10T09:00:00Z"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestGetAvailability(t *testing.T) {
	slots := []time.Time{
		time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
	}
	var gotTenant, gotPro, gotDate string
	svc := &mockBookingService{availableFunc: func(_ context.Context, tenantID, professionalID, date string) ([]time.Time, error) {
		gotTenant, gotPro, gotDate = tenantID, professionalID, date
		if date == "bad" {
			return nil, utils.NewValidationError("invalid date")
		}
		return slots, nil
	}}
	r := newBookingRouter(svc)

	t.Run("protected", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/professionals/p1/availability?date=2024-06-10", bearer(t, "t1"), "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
		}
		var got []string
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0] != "2024-06-10T09:00:00Z" || got[1] != "2024-06-10T09:30:00Z" {
			t.Errorf("slots = %v", got)
		}
		if gotTenant != "t1" || gotPro != "p1" || gotDate != "2024-06-10" {
			t.Errorf("service called with %s/%s/%s", gotTenant, gotPro, gotDate)
		}
	})

	t.Run("public", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/public/availability?tenantId=t2&professionalId=p9&date=2024-06-10", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
		}
		if gotTenant != "t2" || gotPro != "p9" {
			t.Errorf("service called with %s/%s", gotTenant, gotPro)
		}
	})

	t.Run("public without tenant", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/public/availability?professionalId=p9&date=2024-06-10", "", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("missing date", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/professionals/p1/availability", bearer(t, "t1"), "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/professionals/p1/availability?date=bad", bearer(t, "t1"), "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestCreateRecurring(t *testing.T) {
	svc := &mockBookingService{recurringFunc: func(_ context.Context, tenantID string, req models.RecurringSeriesRequest) (*models.RecurringSeriesResult, error) {
		if req.Frequency == "DAILY" {
			return nil, utils.NewValidationError("unknown frequency %q", req.Frequency)
		}
		return &models.RecurringSeriesResult{
			Rule:    &models.RecurrenceRule{ID: "r1", TenantID: tenantID, Frequency: req.Frequency, Interval: 1, Count: req.Count},
			Summary: models.SeriesSummary{Created: 2, Skipped: 1, Errors: []string{"Skipped 2024-06-17T09:00:00Z: slot already booked"}},
		}, nil
	}}
	r := newBookingRouter(svc)

	w := do(r, http.MethodPost, "/api/appointments/recurring", bearer(t, "t1"),
		`{"frequency":"WEEKLY","count":3,"serviceId":"s1","professionalId":"p1","startTime":"2024-06-10T09:00:00Z"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}
	var res models.RecurringSeriesResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Rule == nil || res.Rule.ID != "r1" || res.Summary.Created != 2 || res.Summary.Skipped != 1 {
		t.Errorf("result = %+v", res)
	}

	w = do(r, http.MethodPost, "/api/appointments/recurring", bearer(t, "t1"),
		`{"frequency":"DAILY","count":3,"serviceId":"s1","startTime":"2024-06-10T09:00:00Z"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDeleteRecurrenceRule(t *testing.T) {
	svc := &mockBookingService{deleteRuleFunc: func(_ context.Context, tenantID, ruleID string) error {
		if ruleID != "r1" || tenantID != "t1" {
			return utils.NewNotFoundError("recurrence rule", ruleID)
		}
		return nil
	}}
	r := newBookingRouter(svc)

	if w := do(r, http.MethodDelete, "/api/recurrence-rules/r1", bearer(t, "t1"), ""); w.Code != http.StatusNoContent {
		t.Errorf("delete existing: status = %d, want 204", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/recurrence-rules/r2", bearer(t, "t1"), ""); w.Code != http.StatusNotFound {
		t.Errorf("delete missing: status = %d, want 404", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/recurrence-rules/r1", bearer(t, "t2"), ""); w.Code != http.StatusNotFound {
		t.Errorf("delete from other tenant: status = %d, want 404", w.Code)
	}
}
