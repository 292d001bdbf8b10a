package service

import (
	"context"
	"errors"
	"fmt"

	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/repository"
	"projecthub-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	idGen    security.IDGenerator
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, idGen security.IDGenerator) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		idGen:    idGen,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error) {
	if name == "" || email == "" {
		return nil, "", "", fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, "", "", fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &domain.User{
		ID:           s.idGen.NewID(),
		Email:        domain.NormalizeEmail(email),
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", "", fmt.Errorf("%w: an account with this email already exists", ErrInvalidInput)
		}
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokenPair(user)
	return user, access, refresh, err
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	return s.issueTokenPair(user)
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil || claims.Type != security.TokenTypeRefresh {
		return "", "", fmt.Errorf("%w: invalid refresh token", ErrForbidden)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid refresh token", ErrForbidden)
	}

	return s.issueTokenPair(user)
}

func (s *authService) issueTokenPair(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Name)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
