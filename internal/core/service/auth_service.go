package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
	"github.com/stayflow/rental-marketplace/internal/core/ports"
	"github.com/stayflow/rental-marketplace/internal/core/token"
)

// Reconciler is notified after a successful login so anonymous submissions can
// be linked to the principal in the background.
type Reconciler interface {
	EnqueueReconcile(principalID, email string)
}

// noopReconciler is used when no dispatcher is wired (tests).
type noopReconciler struct{}

func (noopReconciler) EnqueueReconcile(string, string) {}

// AuthService implements registration and the login flows.
type AuthService struct {
	repo       ports.UserRepository
	tokens     *token.Manager
	setupCode  string
	reconciler Reconciler
	logger     zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *token.Manager, setupCode string, logger zerolog.Logger) *AuthService {
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		setupCode:  setupCode,
		reconciler: noopReconciler{},
		logger:     logger,
	}
}

// SetReconciler wires the background reconciliation dispatcher. Optional; the
// lazy reconciliation on fetch paths covers principals either way.
func (s *AuthService) SetReconciler(r Reconciler) {
	if r != nil {
		s.reconciler = r
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	created, err := s.createUser(ctx, input, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return s.openSession(created, "register")
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		// An unknown email answers the same as a wrong password so the
		// public login endpoint cannot be used to enumerate accounts.
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.openSession(user, "password")
}

// GoogleLogin finds or creates the principal for a decoded Google profile.
// New accounts get an unusable password hash; they can only sign in via the
// provider until a password reset flow sets one.
func (s *AuthService) GoogleLogin(ctx context.Context, input ports.GoogleLoginInput) (*ports.AuthResult, error) {
	if input.Email == "" || input.GoogleID == "" {
		return nil, domain.ErrInvalidCredentials
	}

	email := strings.ToLower(input.Email)
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.createUser(ctx, ports.RegisterInput{
			Name:     input.Name,
			Email:    email,
			Password: "google:" + input.GoogleID,
		}, domain.RoleCustomer)
	}
	if err != nil {
		return nil, err
	}

	return s.openSession(user, "google")
}

func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	result, err := s.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !result.User.IsAdmin() {
		return nil, domain.ErrForbiddenRole
	}
	return result, nil
}

func (s *AuthService) AdminRegister(ctx context.Context, input ports.RegisterInput, setupCode string) (*ports.AuthResult, error) {
	if s.setupCode == "" || setupCode != s.setupCode {
		return nil, domain.ErrForbiddenRole
	}

	created, err := s.createUser(ctx, input, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", created.Email).Msg("admin account bootstrapped")
	return s.openSession(created, "admin_register")
}

func (s *AuthService) AdminCreate(ctx context.Context, actor *domain.Principal, input ports.RegisterInput) (*domain.Principal, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbiddenRole
	}
	created, err := s.createUser(ctx, input, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", created.Email).Str("issued_by", actor.ID).Msg("admin account created")
	return created, nil
}

func (s *AuthService) createUser(ctx context.Context, input ports.RegisterInput, role string) (*domain.Principal, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.Principal{
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *AuthService) openSession(user *domain.Principal, kind string) (*ports.AuthResult, error) {
	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("kind", kind).Str("user", user.ID).Msg("session opened")
	s.reconciler.EnqueueReconcile(user.ID, user.Email)
	return &ports.AuthResult{Token: signed, User: user}, nil
}
