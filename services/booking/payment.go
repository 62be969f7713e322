package booking

import (
	"context"
	"fmt"

	"flowmaster/models"
	"flowmaster/utils"

	"go.uber.org/zap"
)

// ApprovePayment marks the appointment PAID and notifies its user.
func (s *DefaultBookingService) ApprovePayment(ctx context.Context, tenantID, id string) (*models.Appointment, error) {
	appt, err := s.GetAppointment(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if appt.PaymentStatus == models.PaymentPaid {
		return nil, utils.NewValidationError("payment already approved")
	}

	appt.PaymentStatus = models.PaymentPaid
	appt.UpdatedAt = s.now()
	if err := s.Appointments.Update(ctx, appt); err != nil {
		return nil, ledgerError(err, appt.ID, appt.ProfessionalID)
	}

	s.notifyPayment(ctx, appt, models.NotificationPaymentApproved,
		fmt.Sprintf("Your payment for the appointment on %s was approved.", appt.Date.Format("02/01/2006 15:04")))
	return appt, nil
}

// RejectPayment marks the payment REJECTED, cancels the appointment and notifies its user.
func (s *DefaultBookingService) RejectPayment(ctx context.Context, tenantID, id string) (*models.Appointment, error) {
	appt, err := s.GetAppointment(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	appt.PaymentStatus = models.PaymentRejected
	appt.Status = models.StatusCancelled
	appt.UpdatedAt = s.now()
	if err := s.Appointments.Update(ctx, appt); err != nil {
		return nil, ledgerError(err, appt.ID, appt.ProfessionalID)
	}

	s.notifyPayment(ctx, appt, models.NotificationPaymentRejected,
		fmt.Sprintf("Your payment for the appointment on %s was rejected and the appointment was cancelled.", appt.Date.Format("02/01/2006 15:04")))
	return appt, nil
}

// notifyPayment is best effort: the payment transition has already been stored.
func (s *DefaultBookingService) notifyPayment(ctx context.Context, appt *models.Appointment, notifType, message string) {
	if s.Notifier == nil || appt.UserID == "" {
		return
	}
	err := s.Notifier.Notify(ctx, &models.Notification{
		TenantID: appt.TenantID,
		UserID:   appt.UserID,
		Type:     notifType,
		Message:  message,
		Metadata: map[string]string{"appointmentId": appt.ID},
	})
	if err != nil {
		utils.GetLogger().Warn("payment notification failed",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}
