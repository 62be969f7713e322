package user

import (
	"context"
	"errors"

	userRepo "flowmaster/database/repository/user"
	"flowmaster/models"
	"flowmaster/utils"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, utils.NewNotFoundError("user", id)
	}
	return u, err
}

func (s *DefaultUserService) SetFCMToken(ctx context.Context, id, token string) error {
	err := s.Repo.SetFCMToken(ctx, id, token)
	if errors.Is(err, userRepo.ErrNotFound) {
		return utils.NewNotFoundError("user", id)
	}
	return err
}
