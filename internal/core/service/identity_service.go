package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplite/catalog-system/internal/core/domain"
	"github.com/shoplite/catalog-system/internal/core/ports"
	"github.com/shoplite/catalog-system/pkg/password"
	"github.com/shoplite/catalog-system/pkg/token"
)

// IdentityService validates credentials, issues tokens and manages
// registration against the credential store.
type IdentityService struct {
	repo     ports.UserRepository
	codec    *token.Codec
	recorder ports.AuthEventRecorder
	logger   zerolog.Logger
}

func NewIdentityService(repo ports.UserRepository, codec *token.Codec, recorder ports.AuthEventRecorder, logger zerolog.Logger) *IdentityService {
	return &IdentityService{repo: repo, codec: codec, recorder: recorder, logger: logger}
}

// Authenticate verifies username/password and issues a token carrying the
// user's role snapshot. Unknown user, inactive account and wrong password
// all collapse into the same opaque ErrInvalidCredentials so callers cannot
// enumerate usernames.
func (s *IdentityService) Authenticate(ctx context.Context, username, pass string) (*ports.LoginResult, error) {
	if username == "" || pass == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		s.record(username, domain.AuditActionLogin, domain.AuditResultFailure, "unknown user")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		s.record(username, domain.AuditActionLogin, domain.AuditResultFailure, "inactive account")
		return nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(pass, user.PasswordHash) {
		s.record(username, domain.AuditActionLogin, domain.AuditResultFailure, "wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	raw, claims, err := s.codec.Encode(user.Username, user.Roles)
	if err != nil {
		return nil, err
	}

	s.record(username, domain.AuditActionLogin, domain.AuditResultSuccess, "")
	s.logger.Info().Str("username", username).Msg("user authenticated")

	return &ports.LoginResult{Token: raw, User: user, ExpiresAt: claims.ExpiresAt}, nil
}

// Register creates an account with the default user role.
func (s *IdentityService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Role = domain.RoleUser
	return s.create(ctx, in)
}

// RegisterPrivileged creates an account with a caller-specified role from
// the seeded set. The Admin precondition is enforced by the gatekeeper at
// the route, not here.
func (s *IdentityService) RegisterPrivileged(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}
	return s.create(ctx, in)
}

func (s *IdentityService) create(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        []string{in.Role},
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	// The store's unique constraints make this an atomic insert-if-absent:
	// the user and its role assignment land together or not at all.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.record(in.Username, domain.AuditActionRegister, domain.AuditResultFailure, err.Error())
		return nil, err
	}

	s.record(in.Username, domain.AuditActionRegister, domain.AuditResultSuccess, in.Role)
	s.logger.Info().Str("username", in.Username).Str("role", in.Role).Msg("user registered")
	return created, nil
}

// GetByID returns the user only while it is active.
func (s *IdentityService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// GetByUsername returns the user only while it is active.
func (s *IdentityService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Deactivate flips the active flag; outstanding tokens keep working until
// they expire (tokens are pure snapshots, there is no revocation).
func (s *IdentityService) Deactivate(ctx context.Context, id string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.record(user.Username, domain.AuditActionDeactivate, domain.AuditResultSuccess, "")
	s.logger.Info().Str("username", user.Username).Msg("user deactivated")
	return nil
}

func (s *IdentityService) record(username, action, result, detail string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(ports.AuthEventInput{
		Username: username,
		Action:   action,
		Result:   result,
		Detail:   detail,
		At:       time.Now().UTC(),
	})
}
