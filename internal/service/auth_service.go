package service

import (
	"context"
	"time"

	"recipehub/internal/authz"
	"recipehub/internal/cache"
	apperrors "recipehub/internal/errors"
	"recipehub/internal/models"
	"recipehub/internal/repository"
	"recipehub/pkg/auth"
)

const userCacheTTL = 15 * time.Minute

// AuthService handles authentication business logic.
type AuthService struct {
	userRepo   repository.UserRepository
	cache      cache.Cache
	jwtManager auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, cache cache.Cache, jwtManager auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		cache:      cache,
		jwtManager: jwtManager,
	}
}

// Register creates a new user account and returns a signed token.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.generateAuthResponse(user)
}

// Login authenticates a user and returns a signed token. Unknown email
// and wrong password yield the same error so the response does not leak
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := auth.CheckPassword(req.Password, user.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.generateAuthResponse(user)
}

// Me returns the authenticated user's account (with caching).
func (s *AuthService) Me(ctx context.Context, principal authz.Principal) (*models.User, error) {
	cacheKey := cache.UserCacheKey(principal.ID.Hex())
	var cached models.User
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return &cached, nil
	}

	user, err := s.userRepo.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	// Cache is best effort
	_ = s.cache.Set(ctx, cacheKey, user, userCacheTTL)

	return user, nil
}

// ChangePassword verifies the current password and replaces it.
func (s *AuthService) ChangePassword(ctx context.Context, principal authz.Principal, req *models.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, principal.ID)
	if err != nil {
		return err
	}

	if err := auth.CheckPassword(req.CurrentPassword, user.Password); err != nil {
		return apperrors.ErrPasswordMismatch
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, principal.ID, hashedPassword); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, cache.UserCacheKey(principal.ID.Hex()))

	return nil
}

func (s *AuthService) generateAuthResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(user.ID.Hex(), user.Username, user.Email)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}
