package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"shopverse/internal/domain"
	identityrepo "shopverse/internal/repository/identity"
	sessionrepo "shopverse/internal/repository/session"
)

// Service handles registration, login and the per-role session markers.
type Service struct {
	users    identityrepo.Repository
	admins   identityrepo.Repository
	sessions sessionrepo.Repository
	ids      *domain.IDGenerator
	logger   *log.Logger
}

// New creates a Service. users and admins must be bound to their roles.
func New(users, admins identityrepo.Repository, sessions sessionrepo.Repository, ids *domain.IDGenerator, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if ids == nil {
		ids = domain.NewIDGenerator()
	}
	return &Service{users: users, admins: admins, sessions: sessions, ids: ids, logger: logger}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a shopper account. Email matching is exact.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	user := domain.User{
		ID:        s.ids.Next(),
		Name:      strings.TrimSpace(in.Name),
		Email:     in.Email,
		Password:  in.Password,
		CreatedAt: s.ids.Now(),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("account: registered user id=%d", created.ID)
	return created, nil
}

// Authenticate scans the role's collection for an exact email and password match.
func (s *Service) Authenticate(ctx context.Context, role domain.Role, email, password string) (*domain.Identity, error) {
	repo, err := s.repo(role)
	if err != nil {
		return nil, err
	}
	found, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if found.Password != password {
		return nil, domain.ErrInvalidCredentials
	}
	return found, nil
}

// Login authenticates and, on success, replaces the role's session marker.
func (s *Service) Login(ctx context.Context, role domain.Role, email, password string) (*domain.Identity, error) {
	id, err := s.Authenticate(ctx, role, email, password)
	if err != nil {
		s.logger.Printf("account: login role=%s failed", role)
		return nil, err
	}
	if err := s.SetSession(ctx, role, *id); err != nil {
		return nil, err
	}
	return id, nil
}

func (s *Service) SetSession(ctx context.Context, role domain.Role, identity domain.Identity) error {
	if _, err := s.repo(role); err != nil {
		return err
	}
	if err := s.sessions.Set(ctx, role, identity); err != nil {
		return err
	}
	s.logger.Printf("account: session set role=%s id=%d", role, identity.ID)
	return nil
}

// ClearSession logs the role out. Clearing an empty session is not an error.
func (s *Service) ClearSession(ctx context.Context, role domain.Role) error {
	if _, err := s.repo(role); err != nil {
		return err
	}
	if err := s.sessions.Clear(ctx, role); err != nil {
		return err
	}
	s.logger.Printf("account: session cleared role=%s", role)
	return nil
}

// CurrentSession returns the logged-in identity for role, or nil.
func (s *Service) CurrentSession(ctx context.Context, role domain.Role) (*domain.Identity, error) {
	if _, err := s.repo(role); err != nil {
		return nil, err
	}
	return s.sessions.Get(ctx, role)
}

func (s *Service) repo(role domain.Role) (identityrepo.Repository, error) {
	switch role {
	case domain.RoleUser:
		return s.users, nil
	case domain.RoleAdmin:
		return s.admins, nil
	}
	return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
}
