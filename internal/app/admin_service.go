package app

import (
	"context"

	"quizhub/internal/domain"
)

// AdminService covers admin-only user management. Role enforcement happens in
// the transport authorization gate; these methods assume an admin caller.
type AdminService struct {
	users UserRepository
}

func NewAdminService(users UserRepository) *AdminService {
	return &AdminService{users: users}
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, int, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *AdminService) User(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.ByID(ctx, id)
}

type UpdateUserInput struct {
	Username *string
	FullName *string
	Email    *string
}

func (s *AdminService) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error) {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if taken, err := s.users.UsernameExists(ctx, *in.Username); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrUsernameTaken
		}
		user.Username = *in.Username
	}
	if in.Email != nil && *in.Email != user.Email {
		if taken, err := s.users.EmailExists(ctx, *in.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrEmailTaken
		}
		user.Email = *in.Email
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account; scores and signups cascade in the database.
func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.users.ByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
