package user

import (
	"context"
	"time"

	userRepo "flowmaster/database/repository/user"
	"flowmaster/models"
	"flowmaster/utils"
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error)
	// IssueServiceToken returns a token for a trusted agent that presents the shared API key.
	IssueServiceToken(ctx context.Context, req models.ServiceTokenRequest) (string, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	SetFCMToken(ctx context.Context, id, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
	// TokenCache keeps issued service tokens per tenant.
	TokenCache  utils.TTLCache
	AgentAPIKey string
	TokenTTL    time.Duration
}

func (s *DefaultUserService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 24 * time.Hour
}
