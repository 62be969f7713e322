package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	appointmentRepo "flowmaster/database/repository/appointment"
	professionalRepo "flowmaster/database/repository/professional"
	recurrenceRepo "flowmaster/database/repository/recurrence"
	serviceRepo "flowmaster/database/repository/service"
	"flowmaster/models"
)

// memLedger is an in-memory appointment ledger. The mutex plays the part of the
// professional row lock taken by the Mongo implementation.
type memLedger struct {
	mu    sync.Mutex
	appts map[string]models.Appointment
	// professionals that exist for CreateExclusive's lock.
	professionals map[string]bool
}

func newMemLedger(professionalIDs ...string) *memLedger {
	l := &memLedger{appts: map[string]models.Appointment{}, professionals: map[string]bool{}}
	for _, id := range professionalIDs {
		l.professionals[id] = true
	}
	return l
}

func (l *memLedger) occupiedLocked(a *models.Appointment) bool {
	for _, other := range l.appts {
		if other.ID != a.ID && other.TenantID == a.TenantID && other.ProfessionalID == a.ProfessionalID &&
			other.Active() && other.Date.Equal(a.Date) {
			return true
		}
	}
	return false
}

func (l *memLedger) Create(_ context.Context, a *models.Appointment) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.appts[a.ID] = *a
	return nil
}

func (l *memLedger) CreateExclusive(_ context.Context, a *models.Appointment) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.professionals[a.ProfessionalID] {
		return appointmentRepo.ErrProfessionalNotFound
	}
	if l.occupiedLocked(a) {
		return appointmentRepo.ErrSlotTaken
	}
	l.appts[a.ID] = *a
	return nil
}

func (l *memLedger) UpdateExclusive(_ context.Context, a *models.Appointment) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.appts[a.ID]; !ok {
		return appointmentRepo.ErrNotFound
	}
	if l.occupiedLocked(a) {
		return appointmentRepo.ErrSlotTaken
	}
	l.appts[a.ID] = *a
	return nil
}

func (l *memLedger) Update(_ context.Context, a *models.Appointment) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.appts[a.ID]; !ok {
		return appointmentRepo.ErrNotFound
	}
	l.appts[a.ID] = *a
	return nil
}

func (l *memLedger) GetByID(_ context.Context, tenantID, id string) (*models.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.appts[id]
	if !ok || a.TenantID != tenantID {
		return nil, appointmentRepo.ErrNotFound
	}
	return &a, nil
}

func (l *memLedger) List(_ context.Context, tenantID string, filter models.AppointmentFilter) ([]models.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Appointment
	for _, a := range l.appts {
		if a.TenantID != tenantID {
			continue
		}
		if filter.ProfessionalID != "" && a.ProfessionalID != filter.ProfessionalID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (l *memLedger) ListActiveInRange(_ context.Context, tenantID, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Appointment
	for _, a := range l.appts {
		if a.TenantID == tenantID && a.ProfessionalID == professionalID && a.Active() &&
			!a.Date.Before(from) && a.Date.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (l *memLedger) ListScheduledBetween(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (l *memLedger) ListCompleted(_ context.Context, tenantID string, filter models.ReportFilter) ([]models.Appointment, error) {
	return nil, nil
}

func (l *memLedger) CountByRule(_ context.Context, tenantID, ruleID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int64
	for _, a := range l.appts {
		if a.TenantID == tenantID && a.RecurrenceRuleID == ruleID {
			n++
		}
	}
	return n, nil
}

func (l *memLedger) DeleteFutureByRule(_ context.Context, tenantID, ruleID string, now time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int64
	for id, a := range l.appts {
		if a.TenantID == tenantID && a.RecurrenceRuleID == ruleID && a.Date.After(now) && a.Status != models.StatusCompleted {
			delete(l.appts, id)
			n++
		}
	}
	return n, nil
}

func (l *memLedger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.appts)
}

type memSchedules struct {
	windows []models.WorkingWindow
}

func (m *memSchedules) GetWindows(_ context.Context, tenantID, professionalID string, dayOfWeek int) ([]models.WorkingWindow, error) {
	var out []models.WorkingWindow
	for _, w := range m.windows {
		if w.TenantID == tenantID && w.ProfessionalID == professionalID && w.DayOfWeek == dayOfWeek {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memSchedules) ListByProfessional(_ context.Context, tenantID, professionalID string) ([]models.WorkingWindow, error) {
	return m.windows, nil
}

func (m *memSchedules) Replace(_ context.Context, tenantID, professionalID string, windows []models.WorkingWindow) error {
	m.windows = windows
	return nil
}

type memProfessionals struct {
	byID map[string]models.Professional
}

func (m *memProfessionals) Create(_ context.Context, p *models.Professional) error {
	m.byID[p.ID] = *p
	return nil
}

func (m *memProfessionals) GetByID(_ context.Context, tenantID, id string) (*models.Professional, error) {
	p, ok := m.byID[id]
	if !ok || p.TenantID != tenantID {
		return nil, professionalRepo.ErrNotFound
	}
	return &p, nil
}

func (m *memProfessionals) List(_ context.Context, tenantID string) ([]models.Professional, error) {
	return nil, nil
}

func (m *memProfessionals) Update(_ context.Context, p *models.Professional) error {
	return nil
}

func (m *memProfessionals) DeleteWithSchedules(_ context.Context, tenantID, id string) error {
	return nil
}

type memServices struct {
	byID map[string]models.Service
}

func (m *memServices) Create(_ context.Context, s *models.Service) error {
	m.byID[s.ID] = *s
	return nil
}

func (m *memServices) GetByID(_ context.Context, tenantID, id string) (*models.Service, error) {
	s, ok := m.byID[id]
	if !ok || s.TenantID != tenantID {
		return nil, serviceRepo.ErrNotFound
	}
	return &s, nil
}

func (m *memServices) List(_ context.Context, tenantID string) ([]models.Service, error) {
	return nil, nil
}

func (m *memServices) Update(_ context.Context, s *models.Service) error {
	return nil
}

func (m *memServices) Delete(_ context.Context, tenantID, id string) error {
	return nil
}

type memRules struct {
	mu   sync.Mutex
	byID map[string]models.RecurrenceRule
}

func (m *memRules) Create(_ context.Context, r *models.RecurrenceRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[r.ID] = *r
	return nil
}

func (m *memRules) GetByID(_ context.Context, tenantID, id string) (*models.RecurrenceRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok || r.TenantID != tenantID {
		return nil, recurrenceRepo.ErrNotFound
	}
	return &r, nil
}

func (m *memRules) List(_ context.Context, tenantID string) ([]models.RecurrenceRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.RecurrenceRule
	for _, r := range m.byID {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRules) Delete(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return recurrenceRepo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, *n)
	return nil
}

const (
	testTenant = "tenant-a"
	testPro    = "pro-1"
	testSvc    = "svc-1"
)

// monday is 2024-06-10, a Monday.
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *DefaultBookingService
	ledger   *memLedger
	rules    *memRules
	notifier *recordingNotifier
}

// newFixture builds a service whose professional works Mondays 09:00-12:00 UTC.
func newFixture() *fixture {
	ledger := newMemLedger(testPro)
	rules := &memRules{byID: map[string]models.RecurrenceRule{}}
	notifier := &recordingNotifier{}
	svc := &DefaultBookingService{
		Appointments: ledger,
		Schedules: &memSchedules{windows: []models.WorkingWindow{
			{ID: "w1", TenantID: testTenant, ProfessionalID: testPro, DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "12:00"},
		}},
		Professionals: &memProfessionals{byID: map[string]models.Professional{
			testPro: {ID: testPro, TenantID: testTenant, Name: "Ana"},
		}},
		Services: &memServices{byID: map[string]models.Service{
			testSvc: {ID: testSvc, TenantID: testTenant, Name: "Haircut", Price: 50},
		}},
		Rules:    rules,
		Notifier: notifier,
		Now:      func() time.Time { return monday.Add(-24 * time.Hour) },
	}
	return &fixture{svc: svc, ledger: ledger, rules: rules, notifier: notifier}
}

func (f *fixture) book(at time.Time) (*models.Appointment, error) {
	return f.svc.Book(context.Background(), models.BookingRequest{
		TenantID:       testTenant,
		ServiceID:      testSvc,
		ProfessionalID: testPro,
		StartTime:      at.Format(time.RFC3339),
		UserID:         "user-1",
	})
}
