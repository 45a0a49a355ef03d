package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/app/repositories"
	"github.com/handcraftedhaven/haven/pkg/auth"
)

// TokenPair is the login/refresh response payload.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterInput is the signup request body.
type RegisterInput struct {
	Email    string `json:"email"     validate:"required,email,max=255"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Role     string `json:"role"      validate:"required,in=buyer,seller"`
	ShopName string `json:"shop_name" validate:"nullable,max=255"`
}

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register creates an account and returns it with a fresh token pair.
func (s *AuthService) Register(in RegisterInput) (models.User, TokenPair, error) {
	taken, err := s.users.EmailTaken(in.Email)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	if taken {
		return models.User{}, TokenPair{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}

	user := models.User{
		Email:    in.Email,
		Password: hash,
		FullName: in.FullName,
		Role:     in.Role,
		ShopName: in.ShopName,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, TokenPair{}, err
	}

	tokens, err := s.tokensFor(user)
	return user, tokens, err
}

// Login checks credentials and returns the user with a token pair.
func (s *AuthService) Login(email, password string) (models.User, TokenPair, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return models.User{}, TokenPair{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}

	tokens, err := s.tokensFor(user)
	return user, tokens, err
}

// Refresh exchanges a valid refresh token for a new token pair.
// Role and ID are re-read from the database so revoked or re-roled
// accounts do not keep stale claims alive.
func (s *AuthService) Refresh(refreshToken string) (TokenPair, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	return s.tokensFor(user)
}

func (s *AuthService) tokensFor(user models.User) (TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
