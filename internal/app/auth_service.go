package app

import (
	"context"
	"time"

	"quizhub/internal/auth"
	"quizhub/internal/domain"
)

// AuthService covers registration, login, profile and logout.
type AuthService struct {
	users       UserRepository
	issuer      *auth.Issuer
	revocations RevocationStore
	now         func() time.Time
}

func NewAuthService(users UserRepository, issuer *auth.Issuer, revocations RevocationStore) *AuthService {
	return &AuthService{users: users, issuer: issuer, revocations: revocations, now: time.Now}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	DOB      *time.Time
	Role     string
}

// Register creates a user account. Admin self-registration is rejected;
// admins are seeded out of band.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Role == domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if taken, err := s.users.EmailExists(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrEmailTaken
	}
	if taken, err := s.users.UsernameExists(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		DOB:          in.DOB,
		Role:         domain.RoleUser,
		JoinedAt:     s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials by email or username and issues an access token.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	user, err := s.users.ByIdentifier(ctx, identifier)
	if err != nil {
		// Do not leak whether the account exists.
		return "", nil, domain.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, _, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// CurrentUser loads the caller's own account.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.ByID(ctx, userID)
}

type UpdateProfileInput struct {
	Username *string
	FullName *string
	DOB      *time.Time
}

// UpdateProfile applies the provided fields to the caller's account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.ByID(ctx, userID)
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
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.DOB != nil {
		user.DOB = in.DOB
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims auth.Claims) error {
	ttl := time.Until(claims.Expiry)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.revocations.Revoke(ctx, claims.JTI, ttl)
}
