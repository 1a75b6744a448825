package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	repo "github.com/learnsphere/learnsphere-api/internal/domain/repository"
	"github.com/learnsphere/learnsphere-api/pkg/helpers"
	"github.com/learnsphere/learnsphere-api/pkg/mailer"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a login response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
)

// EmailPublisher enqueues email jobs for the worker. Satisfied by
// *helpers.RabbitPublisher; an interface so tests can observe dispatches.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService orchestrates registration, login and current-user lookup.
type AuthService struct {
	Users      repo.UserRepository
	JWT        *helpers.JWTManager
	Pub        EmailPublisher
	Logger     *logrus.Logger
	BcryptCost int
	MailEnable bool
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, pub EmailPublisher, logger *logrus.Logger, bcryptCost int, mailEnable bool) *AuthService {
	return &AuthService{
		Users:      users,
		JWT:        jwt,
		Pub:        pub,
		Logger:     logger,
		BcryptCost: bcryptCost,
		MailEnable: mailEnable,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string // optional; defaults to Student
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Register creates a new user, issues a session token and enqueues a welcome
// email. The email dispatch is best-effort: a failure is logged and never
// rolls back the registration.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, ErrInvalidRole
	}

	// Cheap pre-check for a friendly error; the unique index in the store is
	// the authoritative guard under concurrency.
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Role:         role,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, exp, err := s.JWT.Generate(u)
	if err != nil {
		return nil, err
	}

	s.sendWelcomeEmail(ctx, u)

	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// Login verifies credentials and issues a session token. An unknown email and
// a wrong password produce the identical error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Generate(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// CurrentUser resolves the authenticated identity against the store. Returns
// ErrUserNotFound when the record was deleted after the token was issued.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) sendWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnable {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data:     map[string]any{"Name": u.Name},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to enqueue welcome email")
	}
}
