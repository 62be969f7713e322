package tenant

import (
	"context"
	"strings"
	"time"

	tenantRepo "flowmaster/database/repository/tenant"
	"flowmaster/models"
	"flowmaster/utils"

	"go.uber.org/zap"
)

const (
	defaultAgentName     = "Assistant"
	defaultAgentTone     = "friendly"
	defaultAgentGreeting = "Hi! How can I help you book today?"
)

// TenantService reads and edits tenant settings. Reads are served from a TTL cache.
type TenantService interface {
	GetConfig(ctx context.Context, tenantID string) (*models.TenantConfig, error)
	UpdateConfig(ctx context.Context, tenantID string, upd models.TenantConfigUpdate) (*models.TenantConfig, error)
	UpdateAgentConfig(ctx context.Context, tenantID string, upd models.AgentConfigUpdate) (*models.TenantConfig, error)
	PublicPaymentConfig(ctx context.Context, tenantID string) (*models.PublicPaymentConfig, error)
	AgentConfig(ctx context.Context, tenantID string) (*models.AgentConfig, error)
}

// DefaultTenantService implements TenantService.
type DefaultTenantService struct {
	Repo  tenantRepo.TenantConfigRepository
	Cache utils.TTLCache
}

// GetConfig returns the tenant's settings, creating an empty record on first access.
func (s *DefaultTenantService) GetConfig(ctx context.Context, tenantID string) (*models.TenantConfig, error) {
	if tenantID == "" {
		return nil, utils.NewValidationError("tenantId is required")
	}
	logger := utils.GetLogger()

	var cached models.TenantConfig
	if s.Cache != nil {
		ok, err := s.Cache.Get(ctx, tenantID, &cached)
		if err != nil {
			logger.Warn("tenant config cache read failed", zap.String("tenantId", tenantID), zap.Error(err))
		} else if ok {
			return &cached, nil
		}
	}

	cfg, err := s.Repo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, cfg)
	return cfg, nil
}

func (s *DefaultTenantService) UpdateConfig(ctx context.Context, tenantID string, upd models.TenantConfigUpdate) (*models.TenantConfig, error) {
	cfg, err := s.Repo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	setIf(&cfg.PublicName, upd.PublicName)
	setIf(&cfg.ThemeColor, upd.ThemeColor)
	setIf(&cfg.LogoURL, upd.LogoURL)
	setIf(&cfg.PixKey, upd.PixKey)
	return s.save(ctx, cfg)
}

func (s *DefaultTenantService) UpdateAgentConfig(ctx context.Context, tenantID string, upd models.AgentConfigUpdate) (*models.TenantConfig, error) {
	if upd.AgentTone != nil && !validTone(*upd.AgentTone) {
		return nil, utils.NewValidationError("agentTone must be one of friendly, formal, casual")
	}
	cfg, err := s.Repo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	setIf(&cfg.AgentName, upd.AgentName)
	setIf(&cfg.AgentGreeting, upd.AgentGreeting)
	setIf(&cfg.AgentPersonality, upd.AgentPersonality)
	setIf(&cfg.AgentTone, upd.AgentTone)
	return s.save(ctx, cfg)
}

func (s *DefaultTenantService) PublicPaymentConfig(ctx context.Context, tenantID string) (*models.PublicPaymentConfig, error) {
	cfg, err := s.GetConfig(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &models.PublicPaymentConfig{
		PixKey:     cfg.PixKey,
		LogoURL:    cfg.LogoURL,
		PublicName: cfg.PublicName,
		ThemeColor: cfg.ThemeColor,
	}, nil
}

// AgentConfig resolves the chat persona, filling defaults for unset fields.
func (s *DefaultTenantService) AgentConfig(ctx context.Context, tenantID string) (*models.AgentConfig, error) {
	cfg, err := s.GetConfig(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := &models.AgentConfig{
		AgentName:        orDefault(cfg.AgentName, defaultAgentName),
		AgentGreeting:    orDefault(cfg.AgentGreeting, defaultAgentGreeting),
		AgentPersonality: cfg.AgentPersonality,
		AgentTone:        orDefault(cfg.AgentTone, defaultAgentTone),
		PublicName:       cfg.PublicName,
	}
	return out, nil
}

func (s *DefaultTenantService) save(ctx context.Context, cfg *models.TenantConfig) (*models.TenantConfig, error) {
	cfg.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	s.store(ctx, cfg)
	return cfg, nil
}

func (s *DefaultTenantService) store(ctx context.Context, cfg *models.TenantConfig) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, cfg.TenantID, cfg); err != nil {
		utils.GetLogger().Warn("tenant config cache write failed", zap.String("tenantId", cfg.TenantID), zap.Error(err))
	}
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func validTone(t string) bool {
	switch t {
	case "friendly", "formal", "casual":
		return true
	}
	return false
}
