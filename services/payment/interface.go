package payment

import (
	"context"
	"io"

	appointmentRepo "flowmaster/database/repository/appointment"
	paymentRepo "flowmaster/database/repository/payment"
	serviceRepo "flowmaster/database/repository/service"
	"flowmaster/models"
	"flowmaster/services/storage"
)

// MaxProofSize is the largest payment proof accepted, in bytes.
const MaxProofSize = 5 << 20

// AllowedProofTypes lists the accepted MIME types of payment proofs.
var AllowedProofTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// ProofFile is an uploaded payment proof before it is stored.
type ProofFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PaymentService moves appointments into PENDING_APPROVAL, either by receipt or by card.
type PaymentService interface {
	UploadProof(ctx context.Context, tenantID, appointmentID string, file ProofFile) (*models.PaymentProof, error)
	CreateIntent(ctx context.Context, tenantID, appointmentID string) (*models.PaymentIntent, error)
}

// IntentGateway creates card payment intents at the processor.
type IntentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (id, clientSecret string, err error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Services     serviceRepo.ServiceRepository
	Proofs       paymentRepo.PaymentProofRepository
	Storage      storage.StorageService
	Gateway      IntentGateway
	Currency     string
}
