package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"studyplanner/internal/core/domain"
	"studyplanner/internal/core/ports"
)

type AuthService struct {
	userRepository ports.UserRepository
	cost           int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(userRepository ports.UserRepository) *AuthService {
	return &AuthService{userRepository: userRepository, cost: bcrypt.DefaultCost}
}

func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return domain.User{}, domain.ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.userRepository.CreateUser(ctx, domain.CreateUserInput{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
}

// Login answers ErrInvalidLogin for both an unknown email and a wrong
// password. An unknown email still pays for one bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	user, err := s.userRepository.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return domain.Identity{}, domain.ErrInvalidLogin
		}
		return domain.Identity{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.Identity{}, domain.ErrInvalidLogin
	}

	return user.Identity(), nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("study-planner"), s.cost)
	})
	return s.dummyHash
}

var _ ports.AuthService = (*AuthService)(nil)
