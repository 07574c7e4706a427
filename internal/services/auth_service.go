package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contactbook/engine/internal/auth"
	"github.com/contactbook/engine/internal/models"
	"github.com/contactbook/engine/internal/repository"
	appErr "github.com/contactbook/engine/pkg/errors"
	"github.com/contactbook/engine/pkg/logger"
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// Session is an authenticated user together with a freshly minted token.
type Session struct {
	User  models.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Authenticate(ctx context.Context, email, password string) (*Session, error)
	Get(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type authService struct {
	repos  repository.Manager
	hasher auth.PasswordHasher
	tokens auth.TokenIssuer
	now    Clock
}

func NewAuthService(repos repository.Manager, hasher auth.PasswordHasher, tokens auth.TokenIssuer, now Clock) AuthService {
	if now == nil {
		now = SystemClock
	}
	return &authService{repos: repos, hasher: hasher, tokens: tokens, now: now}
}

var _ AuthService = (*authService)(nil)

var errInvalidCredentials = appErr.New(appErr.CodeInvalidCredentials, "invalid email or password")

// Register creates the account and its default categories in one transaction.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	exists, err := s.repos.Users().EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, appErr.New(appErr.CodeDuplicateEmail, "email already registered")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	now := s.now()
	user := models.User{Email: in.Email, Name: in.Name, PasswordHash: hash, CreatedAt: now}
	err = s.repos.InTx(ctx, func(tx repository.Manager) error {
		if err := tx.Users().Create(ctx, &user); err != nil {
			return err
		}
		return seedDefaultCategories(ctx, tx.Categories(), user.ID, now)
	})
	if err != nil {
		return nil, err
	}

	logger.L().Info("user registered", logger.UserID(user.ID))
	return s.session(user)
}

// Authenticate fails identically for an unknown email and a wrong password.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	var user models.User
	if err := s.repos.Users().GetByEmail(ctx, email, &user); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		logger.L().Info("login rejected", logger.UserID(user.ID))
		return nil, errInvalidCredentials
	}
	return s.session(user)
}

func (s *authService) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.repos.Users().GetByID(ctx, userID, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) session(user models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		logger.L().Error("issue token failed", logger.UserID(user.ID), zap.Error(err))
		return nil, appErr.Wrap(err, appErr.CodeInternal, "issue token failed")
	}
	return &Session{User: user, Token: token}, nil
}
