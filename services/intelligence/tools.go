// File: services/intelligence/tools.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"flowmaster/models"
	"flowmaster/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// guestPrefix marks users created through the chat channel.
const guestPrefix = "whatsapp-guest-"

// DecodeToolCall maps a raw function call onto its typed variant and checks its arguments.
func DecodeToolCall(name string, args map[string]any) (models.ToolCall, error) {
	var call models.ToolCall
	switch name {
	case models.ToolListServices:
		return models.ListServicesCall{}, nil
	case models.ToolCheckAvailability:
		call = &models.CheckAvailabilityCall{}
	case models.ToolCreateAppointment:
		call = &models.CreateAppointmentCall{}
	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}

	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode arguments of %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, call); err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
	}
	if err := validate.Struct(call); err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
	}
	return call, nil
}

// GuestUserID derives a stable user id from a phone number.
func GuestUserID(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return guestPrefix + b.String()
}

// runTool executes one call for tenantID. Business errors are returned to the model, not to the caller.
func (s *DefaultAgentService) runTool(ctx context.Context, tenantID string, fc FunctionCall) ToolResult {
	logger := utils.GetLogger()

	call, err := DecodeToolCall(fc.Name, fc.Args)
	if err != nil {
		return ToolResult{Name: fc.Name, Response: map[string]any{"error": err.Error()}}
	}

	var resp map[string]any
	switch c := call.(type) {
	case models.ListServicesCall:
		resp, err = s.listServices(ctx, tenantID)
	case *models.CheckAvailabilityCall:
		resp, err = s.checkAvailability(ctx, tenantID, c)
	case *models.CreateAppointmentCall:
		resp, err = s.createAppointment(ctx, tenantID, c)
	}
	if err != nil {
		if !utils.IsConflict(err) && !utils.IsValidation(err) && !utils.IsNotFound(err) {
			logger.Error("agent tool failed", zap.String("tool", fc.Name), zap.Error(err))
			return ToolResult{Name: fc.Name, Response: map[string]any{"error": "internal error, try again later"}}
		}
		return ToolResult{Name: fc.Name, Response: map[string]any{"error": err.Error()}}
	}
	return ToolResult{Name: fc.Name, Response: resp}
}

func (s *DefaultAgentService) listServices(ctx context.Context, tenantID string) (map[string]any, error) {
	svcs, err := s.Catalog.ListServices(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	pros, err := s.Catalog.ListProfessionals(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	services := make([]map[string]any, 0, len(svcs))
	for _, sv := range svcs {
		services = append(services, map[string]any{
			"id":              sv.ID,
			"name":            sv.Name,
			"price":           sv.Price,
			"durationMinutes": sv.DurationMinutes,
		})
	}
	professionals := make([]map[string]any, 0, len(pros))
	for _, p := range pros {
		professionals = append(professionals, map[string]any{"id": p.ID, "name": p.Name})
	}
	return map[string]any{"services": services, "professionals": professionals}, nil
}

func (s *DefaultAgentService) checkAvailability(ctx context.Context, tenantID string, c *models.CheckAvailabilityCall) (map[string]any, error) {
	slots, err := s.Booking.AvailableSlots(ctx, tenantID, c.ProfessionalID, c.Date)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(slots))
	for _, t := range slots {
		out = append(out, t.Format(time.RFC3339))
	}
	return map[string]any{"date": c.Date, "slots": out}, nil
}

func (s *DefaultAgentService) createAppointment(ctx context.Context, tenantID string, c *models.CreateAppointmentCall) (map[string]any, error) {
	appt, err := s.Booking.Book(ctx, models.BookingRequest{
		TenantID:       tenantID,
		ServiceID:      c.ServiceID,
		ProfessionalID: c.ProfessionalID,
		StartTime:      c.StartTime,
		UserID:         GuestUserID(c.CustomerPhone),
		CustomerName:   c.CustomerName,
		CustomerPhone:  c.CustomerPhone,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"appointmentId": appt.ID,
		"date":          appt.Date.Format(time.RFC3339),
		"status":        string(appt.Status),
	}, nil
}
