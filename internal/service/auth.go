package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/atrium/api/internal/model"
)

const (
	bcryptCost = 12

	minPasswordLength = 8
	maxPasswordLength = 128

	// RFC 5321 ceiling for a full address
	maxEmailLength = 254
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	SetLoginOn(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, hash string) error
	Delete(ctx context.Context, id string) error
}

// AuthService owns account lifecycle: registration, login, token
// refresh, and password changes. Token issuance itself is delegated to
// the TokenService.
type AuthService struct {
	userRepo     UserRepository
	tokenService *TokenService
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo     UserRepository
	TokenService *TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:     cfg.UserRepo,
		tokenService: cfg.TokenService,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string
	Name     string
	Password string
}

// RegisterResult represents a successful registration
type RegisterResult struct {
	User      *model.User
	TokenPair *TokenPair
}

// Register creates an account and signs it in. Email addresses are
// normalized to lower case, so ANA@example.com and ana@example.com are
// the same account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	email := normalizeEmail(req.Email)
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email: email,
		Name:  name,
		Hash:  &hash,
		Role:  model.UserRoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{User: user, TokenPair: pair}, nil
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResult represents a successful login
type LoginResult struct {
	User      *model.User
	TokenPair *TokenPair
}

// Login authenticates by email and password. Every failure mode maps
// to ErrInvalidCredentials so responses don't reveal which part was
// wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if !passwordMatches(user, req.Password) {
		return nil, ErrInvalidCredentials
	}

	// Best effort, a failed timestamp write should not block login
	_ = s.userRepo.SetLoginOn(ctx, user.ID)

	pair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, TokenPair: pair}, nil
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// RefreshTokens exchanges a valid refresh token for a new pair,
// rotating the old one out
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := s.tokenService.tokenRepo.GetRefreshTokenByHash(ctx, hashToken(refreshToken))
	if err != nil || stored == nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return s.tokenService.RefreshTokens(ctx, refreshToken, user)
}

// Logout revokes every refresh token the user holds
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.tokenService.RevokeAllUserTokens(ctx, userID)
}

// ValidateAccessToken validates an access token and returns the claims
func (s *AuthService) ValidateAccessToken(token string) (*model.TokenClaims, error) {
	claims, err := s.tokenService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	return &model.TokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
	}, nil
}

// ChangePassword verifies the current password, stores the new hash,
// and revokes all refresh tokens so other sessions must sign in again
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.Hash != nil && *user.Hash != "" && !checkPassword(oldPassword, *user.Hash) {
		return ErrInvalidCredentials
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	return s.tokenService.RevokeAllUserTokens(ctx, userID)
}

// Credential helpers

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func passwordMatches(user *model.User, password string) bool {
	if user == nil || user.Hash == nil || *user.Hash == "" {
		return false
	}
	return checkPassword(password, *user.Hash)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func validatePassword(password string) error {
	switch {
	case password == "":
		return ErrPasswordRequired
	case len(password) < minPasswordLength:
		return ErrPasswordTooShort
	case len(password) > maxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}

// isValidEmail is a shape check, not an RFC parser: something before
// an @, a dot after it, and nothing absurdly long. Deliverability is
// the mail server's problem.
func isValidEmail(email string) bool {
	if email == "" || len(email) > maxEmailLength {
		return false
	}
	at := strings.Index(email, "@")
	if at < 1 {
		return false
	}
	dot := strings.LastIndex(email, ".")
	return dot >= at+2 && dot < len(email)-1
}
