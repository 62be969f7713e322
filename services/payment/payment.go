package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	appointmentRepo "flowmaster/database/repository/appointment"
	"flowmaster/models"
	"flowmaster/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultPaymentService) appointment(ctx context.Context, tenantID, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, tenantID, id)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, utils.NewNotFoundError("appointment", id)
	}
	if err != nil {
		return nil, err
	}
	if appt.PaymentStatus == models.PaymentPaid {
		return nil, utils.NewValidationError("appointment %s is already paid", id)
	}
	return appt, nil
}

// UploadProof stores the receipt and marks the payment as awaiting approval.
func (s *DefaultPaymentService) UploadProof(ctx context.Context, tenantID, appointmentID string, file ProofFile) (*models.PaymentProof, error) {
	if file.Size > MaxProofSize {
		return nil, utils.NewValidationError("file too large, max %d MB", MaxProofSize>>20)
	}
	if !AllowedProofTypes[file.ContentType] {
		return nil, utils.NewValidationError("unsupported file type %q", file.ContentType)
	}
	if s.Storage == nil {
		return nil, errors.New("payment proof storage is not configured")
	}

	if _, err := s.appointment(ctx, tenantID, appointmentID); err != nil {
		return nil, err
	}

	obj, err := s.Storage.Upload(ctx, file.Body, file.Name, fmt.Sprintf("flowmaster/%s/payment-proofs", tenantID))
	if err != nil {
		return nil, fmt.Errorf("upload payment proof: %w", err)
	}

	proof := &models.PaymentProof{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		AppointmentID: appointmentID,
		URL:           obj.URL,
		PublicID:      obj.PublicID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Proofs.AttachProof(ctx, proof); err != nil {
		if delErr := s.Storage.Delete(ctx, obj.PublicID); delErr != nil {
			utils.GetLogger().Warn("orphaned payment proof", zap.String("publicId", obj.PublicID), zap.Error(delErr))
		}
		return nil, err
	}
	return proof, nil
}

// CreateIntent opens a card payment for the service price of the appointment.
func (s *DefaultPaymentService) CreateIntent(ctx context.Context, tenantID, appointmentID string) (*models.PaymentIntent, error) {
	if s.Gateway == nil {
		return nil, errors.New("card payments are not configured")
	}
	appt, err := s.appointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}
	svc, err := s.Services.GetByID(ctx, tenantID, appt.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("load service of appointment %s: %w", appointmentID, err)
	}

	amount := int64(math.Round(svc.Price * 100))
	if amount <= 0 {
		return nil, utils.NewValidationError("service %s has no price", svc.ID)
	}
	id, secret, err := s.Gateway.CreateIntent(ctx, amount, s.Currency, map[string]string{
		"tenantId":      tenantID,
		"appointmentId": appointmentID,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	appt.PaymentIntentID = id
	appt.PaymentStatus = models.PaymentPendingApproval
	appt.UpdatedAt = time.Now().UTC()
	if err := s.Appointments.Update(ctx, appt); err != nil {
		return nil, err
	}

	return &models.PaymentIntent{
		AppointmentID: appointmentID,
		IntentID:      id,
		ClientSecret:  secret,
		Amount:        amount,
		Currency:      s.Currency,
	}, nil
}
