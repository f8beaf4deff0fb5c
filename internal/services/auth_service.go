package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yoockh/folio/internal/auth"
	"github.com/yoockh/folio/internal/models"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/utils"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type Session struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	users  pgrepo.UserRepository
	tokens *auth.Tokens
	// serializes the count-then-create that picks the first admin
	regMu sync.Mutex
}

func NewAuthService(users pgrepo.UserRepository, tokens *auth.Tokens) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Register creates an account. The very first account is the admin.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "AuthService.Register"

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is invalid", err)
	}
	if err := utils.ValidatePassword(in.Password); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	s.regMu.Lock()
	defer s.regMu.Unlock()

	n, err := s.users.Count(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count users", err)
	}
	role := models.RoleUser
	if n == 0 {
		role = models.RoleAdmin
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        []string{role},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "email already registered", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	const op = "AuthService.Login"

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.BurnPasswordCheck(in.Password)
			return nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if err := utils.CheckPassword(u.PasswordHash, in.Password); err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
	}

	tok, exp, err := s.tokens.Issue(u.ID, u.Name, u.Email, u.Roles)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return &Session{AccessToken: tok, ExpiresAt: exp, User: u}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	const op = "AuthService.Me"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}
