package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/placebook/internal/domain/entity"
	repo "github.com/oksasatya/placebook/internal/domain/repository"
	"github.com/oksasatya/placebook/pkg/apperror"
	"github.com/oksasatya/placebook/pkg/helpers"
	"github.com/oksasatya/placebook/pkg/mailer"
	mailtpl "github.com/oksasatya/placebook/pkg/mailer/templates"
)

const (
	msgUserExists         = "User exists already, please login instead."
	msgSignupFailed       = "Signing up failed, please try again later."
	msgInvalidCredentials = "Invalid credentials, could not log you in."
	msgLoginFailed        = "Logging in failed, please try again later."
	msgUserNotFound       = "Could not find user for provided id."
	msgFetchUsersFailed   = "Fetching users failed, please try again later."
)

// UserService handles signup, login and user lookups.
type UserService struct {
	Users        repo.UserRepository
	JWT          *helpers.JWTManager
	Mail         JobPublisher // optional; welcome emails are skipped when nil
	Branding     mailtpl.Branding
	DefaultImage string
	Logger       *logrus.Logger
}

func NewUserService(users repo.UserRepository, jwt *helpers.JWTManager, mail JobPublisher, branding mailtpl.Branding, defaultImage string, logger *logrus.Logger) *UserService {
	return &UserService{
		Users:        users,
		JWT:          jwt,
		Mail:         mail,
		Branding:     branding,
		DefaultImage: defaultImage,
		Logger:       logger,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a user with a bcrypt-hashed password and issues a token.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.Validation(apperror.InvalidInput)
	}

	_, err := s.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperror.Validation(msgUserExists)
	case !errors.Is(err, repo.ErrNotFound):
		return nil, apperror.Storage(msgSignupFailed, err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Storage(msgSignupFailed, err)
	}
	u := &entity.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: hash,
		Image:    s.DefaultImage,
		Places:   []string{},
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Validation(msgUserExists)
		}
		return nil, apperror.Storage(msgSignupFailed, err)
	}

	token, _, err := s.JWT.Issue(u.ID, u.Email)
	if err != nil {
		return nil, apperror.Storage(msgSignupFailed, err)
	}
	s.sendWelcome(ctx, u)
	return &AuthResult{UserID: u.ID, Email: u.Email, Token: token}, nil
}

// Login verifies credentials. Unknown emails and wrong passwords fail the same way.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Auth(msgInvalidCredentials)
		}
		return nil, apperror.Storage(msgLoginFailed, err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperror.Auth(msgInvalidCredentials)
	}
	token, _, err := s.JWT.Issue(u.ID, u.Email)
	if err != nil {
		return nil, apperror.Storage(msgLoginFailed, err)
	}
	return &AuthResult{UserID: u.ID, Email: u.Email, Token: token}, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, apperror.Storage(msgFetchUsersFailed, err)
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, apperror.Storage(msgFetchUsersFailed, err)
	}
	return users, nil
}

// sendWelcome enqueues the welcome email. Failures are logged only.
func (s *UserService) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil {
		return
	}
	job := mailer.TemplateJob(u.Email, mailtpl.Welcome, mailtpl.NewWelcomeData(s.Branding, u.Name, u.Email))
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}
