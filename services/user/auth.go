package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "flowmaster/database/repository/user"
	"flowmaster/models"
	"flowmaster/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const agentSubject = "ai-agent"

func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 6 {
		return nil, utils.NewValidationError("email and a password of at least 6 characters are required")
	}
	if req.TenantID == "" {
		return nil, utils.NewValidationError("tenantId is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.New().String(),
		TenantID:     req.TenantID,
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			return nil, utils.NewConflictError("email already registered")
		}
		return nil, err
	}
	return s.authResult(u)
}

func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, &utils.UnauthorizedError{Message: "invalid email or password"}
	}
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &utils.UnauthorizedError{Message: "invalid email or password"}
	}
	return s.authResult(u)
}

func (s *DefaultUserService) IssueServiceToken(ctx context.Context, req models.ServiceTokenRequest) (string, error) {
	if s.AgentAPIKey == "" || subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(s.AgentAPIKey)) != 1 {
		return "", &utils.UnauthorizedError{Message: "invalid api key"}
	}
	logger := utils.GetLogger()

	var cached string
	if s.TokenCache != nil {
		if ok, err := s.TokenCache.Get(ctx, req.TenantID, &cached); err == nil && ok {
			return cached, nil
		} else if err != nil {
			logger.Warn("service token cache read failed", zap.Error(err))
		}
	}

	token, err := utils.GenerateToken(models.Principal{
		UserID:   agentSubject,
		TenantID: req.TenantID,
		Role:     models.RoleAgent,
	}, s.tokenTTL())
	if err != nil {
		return "", fmt.Errorf("failed to sign service token: %w", err)
	}
	if s.TokenCache != nil {
		if err := s.TokenCache.Set(ctx, req.TenantID, token); err != nil {
			logger.Warn("service token cache write failed", zap.Error(err))
		}
	}
	return token, nil
}

func (s *DefaultUserService) authResult(u *models.User) (*models.AuthResult, error) {
	token, err := utils.GenerateToken(models.Principal{
		UserID:   u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Role:     u.Role,
	}, s.tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &models.AuthResult{User: u, Token: token}, nil
}
