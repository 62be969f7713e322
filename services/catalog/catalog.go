package catalog

import (
	"context"
	"errors"
	"time"

	professionalRepo "flowmaster/database/repository/professional"
	serviceRepo "flowmaster/database/repository/service"
	"flowmaster/models"
	"flowmaster/utils"

	"github.com/google/uuid"
)

func (s *DefaultCatalogService) CreateService(ctx context.Context, tenantID string, svc models.Service) (*models.Service, error) {
	if svc.Name == "" {
		return nil, utils.NewValidationError("name is required")
	}
	if svc.Price < 0 {
		return nil, utils.NewValidationError("price must not be negative")
	}
	now := time.Now().UTC()
	svc.ID = uuid.New().String()
	svc.TenantID = tenantID
	svc.CreatedAt = now
	svc.UpdatedAt = now
	if err := s.Services.Create(ctx, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *DefaultCatalogService) ListServices(ctx context.Context, tenantID string) ([]models.Service, error) {
	return s.Services.List(ctx, tenantID)
}

func (s *DefaultCatalogService) GetService(ctx context.Context, tenantID, id string) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, tenantID, id)
	if errors.Is(err, serviceRepo.ErrNotFound) {
		return nil, utils.NewNotFoundError("service", id)
	}
	return svc, err
}

func (s *DefaultCatalogService) UpdateService(ctx context.Context, tenantID, id string, upd models.Service) (*models.Service, error) {
	current, err := s.GetService(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != "" {
		current.Name = upd.Name
	}
	if upd.Price < 0 {
		return nil, utils.NewValidationError("price must not be negative")
	}
	current.Description = upd.Description
	current.Price = upd.Price
	current.DurationMinutes = upd.DurationMinutes
	current.UpdatedAt = time.Now().UTC()
	if err := s.Services.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *DefaultCatalogService) DeleteService(ctx context.Context, tenantID, id string) error {
	err := s.Services.Delete(ctx, tenantID, id)
	if errors.Is(err, serviceRepo.ErrNotFound) {
		return utils.NewNotFoundError("service", id)
	}
	return err
}

func (s *DefaultCatalogService) CreateProfessional(ctx context.Context, tenantID string, p models.Professional) (*models.Professional, error) {
	if p.Name == "" {
		return nil, utils.NewValidationError("name is required")
	}
	if p.CommissionRate < 0 || p.CommissionRate > 100 {
		return nil, utils.NewValidationError("commissionRate must be between 0 and 100")
	}
	now := time.Now().UTC()
	p.ID = uuid.New().String()
	p.TenantID = tenantID
	p.AverageRating = 0
	p.LockVersion = 0
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.Professionals.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *DefaultCatalogService) ListProfessionals(ctx context.Context, tenantID string) ([]models.Professional, error) {
	return s.Professionals.List(ctx, tenantID)
}

func (s *DefaultCatalogService) GetProfessional(ctx context.Context, tenantID, id string) (*models.Professional, error) {
	p, err := s.Professionals.GetByID(ctx, tenantID, id)
	if errors.Is(err, professionalRepo.ErrNotFound) {
		return nil, utils.NewNotFoundError("professional", id)
	}
	return p, err
}

func (s *DefaultCatalogService) UpdateProfessional(ctx context.Context, tenantID, id string, upd models.Professional) (*models.Professional, error) {
	current, err := s.GetProfessional(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if upd.CommissionRate < 0 || upd.CommissionRate > 100 {
		return nil, utils.NewValidationError("commissionRate must be between 0 and 100")
	}
	if upd.Name != "" {
		current.Name = upd.Name
	}
	current.Email = upd.Email
	current.Phone = upd.Phone
	current.CommissionRate = upd.CommissionRate
	current.UpdatedAt = time.Now().UTC()
	if err := s.Professionals.Update(ctx, current); err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("professional", id)
		}
		return nil, err
	}
	return current, nil
}

// DeleteProfessional removes the professional together with its working windows.
func (s *DefaultCatalogService) DeleteProfessional(ctx context.Context, tenantID, id string) error {
	err := s.Professionals.DeleteWithSchedules(ctx, tenantID, id)
	if errors.Is(err, professionalRepo.ErrNotFound) {
		return utils.NewNotFoundError("professional", id)
	}
	return err
}
