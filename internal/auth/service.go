package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teran1416/InventarioApp/internal/models"
	"github.com/teran1416/InventarioApp/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// Session is what register and login hand back: the identity plus its bearer token.
type Session struct {
	User  models.User
	Token string
}

type Service struct {
	users  repo.UserRepository
	tokens *TokenManager
	cost   int
}

func NewService(users repo.UserRepository, tokens *TokenManager) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (s *Service) WithHashCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) Tokens() *TokenManager {
	return s.tokens
}

func (s *Service) Register(ctx context.Context, fullName, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return Session{}, ErrUserExists
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		return Session{}, fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		PasswordHash: string(hashed),
	})
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		return Session{}, ErrUserExists
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	return s.session(user)
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repo.ErrUserNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}

	return s.session(user)
}

func (s *Service) Profile(ctx context.Context, userID string) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) session(user models.User) (Session, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Token: token}, nil
}
