package catalog

import (
	"context"

	professionalRepo "flowmaster/database/repository/professional"
	scheduleRepo "flowmaster/database/repository/schedule"
	serviceRepo "flowmaster/database/repository/service"
	"flowmaster/models"
)

// CatalogService manages what a tenant sells, who performs it and when they work.
type CatalogService interface {
	CreateService(ctx context.Context, tenantID string, svc models.Service) (*models.Service, error)
	ListServices(ctx context.Context, tenantID string) ([]models.Service, error)
	GetService(ctx context.Context, tenantID, id string) (*models.Service, error)
	UpdateService(ctx context.Context, tenantID, id string, svc models.Service) (*models.Service, error)
	DeleteService(ctx context.Context, tenantID, id string) error

	CreateProfessional(ctx context.Context, tenantID string, p models.Professional) (*models.Professional, error)
	ListProfessionals(ctx context.Context, tenantID string) ([]models.Professional, error)
	GetProfessional(ctx context.Context, tenantID, id string) (*models.Professional, error)
	UpdateProfessional(ctx context.Context, tenantID, id string, p models.Professional) (*models.Professional, error)
	DeleteProfessional(ctx context.Context, tenantID, id string) error

	GetSchedule(ctx context.Context, tenantID, professionalID string) ([]models.WorkingWindow, error)
	SetSchedule(ctx context.Context, tenantID, professionalID string, windows []models.WorkingWindow) ([]models.WorkingWindow, error)
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Services      serviceRepo.ServiceRepository
	Professionals professionalRepo.ProfessionalRepository
	Schedules     scheduleRepo.ScheduleRepository
}
