package review

import (
	"context"
	"errors"
	"time"

	appointmentRepo "flowmaster/database/repository/appointment"
	reviewRepo "flowmaster/database/repository/review"
	"flowmaster/models"
	"flowmaster/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	Create(ctx context.Context, tenantID, userID string, req models.CreateReviewRequest) (*models.Review, error)
}

type DefaultReviewService struct {
	Appointments appointmentRepo.AppointmentRepository
	Reviews      reviewRepo.ReviewRepository
}

// Create rates a completed appointment once and refreshes the professional's average.
func (s *DefaultReviewService) Create(ctx context.Context, tenantID, userID string, req models.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.NewValidationError("rating must be between 1 and 5")
	}

	appt, err := s.Appointments.GetByID(ctx, tenantID, req.AppointmentID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, utils.NewNotFoundError("appointment", req.AppointmentID)
	}
	if err != nil {
		return nil, err
	}
	if appt.Status != models.StatusCompleted {
		return nil, utils.NewValidationError("only completed appointments can be reviewed")
	}
	if appt.ProfessionalID == "" {
		return nil, utils.NewValidationError("appointment has no professional to review")
	}

	exists, err := s.Reviews.ExistsForAppointment(ctx, appt.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.NewConflictError("appointment already reviewed")
	}

	rv := &models.Review{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		AppointmentID:  appt.ID,
		ServiceID:      appt.ServiceID,
		ProfessionalID: appt.ProfessionalID,
		UserID:         userID,
		Rating:         req.Rating,
		Comment:        req.Comment,
		CreatedAt:      time.Now().UTC(),
	}
	avg, err := s.Reviews.CreateAndRecalculate(ctx, rv)
	if errors.Is(err, reviewRepo.ErrAlreadyReviewed) {
		return nil, utils.NewConflictError("appointment already reviewed")
	}
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("review stored",
		zap.String("professionalId", rv.ProfessionalID), zap.Float64("averageRating", avg))
	return rv, nil
}
