package service

import (
	"context"
	"testing"
	"time"

	"recipehub/internal/authz"
	cachemocks "recipehub/internal/cache/mocks"
	apperrors "recipehub/internal/errors"
	"recipehub/internal/models"
	repomocks "recipehub/internal/repository/mocks"
	"recipehub/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("testsecret", 15*time.Minute)
}

func testPrincipal(id primitive.ObjectID) authz.Principal {
	return authz.Principal{
		ID:       id,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleUser,
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates user with hashed password and returns token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repomocks.NewMockUserRepository(ctrl)
		mockCache := cachemocks.NewMockCache(ctrl)

		userID := primitive.NewObjectID()
		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *models.User) error {
				assert.Equal(t, "alice", user.Username)
				assert.Equal(t, "alice@example.com", user.Email)
				assert.NotEqual(t, "secret123", user.Password)
				assert.NoError(t, auth.CheckPassword("secret123", user.Password))
				user.ID = userID
				return nil
			})

		svc := NewAuthService(mockRepo, mockCache, testJWTManager())

		resp, err := svc.Register(context.Background(), &models.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, userID, resp.User.ID)
	})

	t.Run("propagates duplicate email error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repomocks.NewMockUserRepository(ctrl)
		mockCache := cachemocks.NewMockCache(ctrl)

		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(apperrors.ErrUserAlreadyExists)

		svc := NewAuthService(mockRepo, mockCache, testJWTManager())

		resp, err := svc.Register(context.Background(), &models.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret123",
		})

		assert.Nil(t, resp)
		assert.Equal(t, apperrors.ErrUserAlreadyExists, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	user := &models.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		Email:    "alice@example.com",
		Password: hashed,
		Role:     models.RoleUser,
	}

	t.Run("returns token for valid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repomocks.NewMockUserRepository(ctrl)
		mockCache := cachemocks.NewMockCache(ctrl)

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "alice@example.com").
			Return(user, nil)

		svc := NewAuthService(mockRepo, mockCache, testJWTManager())

		resp, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "alice@example.com",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, user.ID, resp.User.ID)
	})

	t.Run("returns same error for unknown email and wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repomocks.NewMockUserRepository(ctrl)
		mockCache := cachemocks.NewMockCache(ctrl)

		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "nobody@example.com").
			Return(nil, apperrors.ErrUserNotFound)
		mockRepo.EXPECT().
			FindByEmail(gomock.Any(), "alice@example.com").
			Return(user, nil)

		svc := NewAuthService(mockRepo, mockCache, testJWTManager())

		_, unknownErr := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		})
		_, wrongErr := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "alice@example.com",
			Password: "totally-wrong",
		})

		assert.Equal(t, apperrors.ErrInvalidCredentials, unknownErr)
		assert.Equal(t, apperrors.ErrInvalidCredentials, wrongErr)
	})
}

func TestAuthService_Me(t *testing.T) {
	userID := primitive.NewObjectID()
	user := &models.User{
		ID:       userID,
		Username: "alice",
		Email:    "alice@example.com",
	}

	t.Run("returns user from cache when cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repomocks.NewMockUserRepository(ctrl)
		mockCache := cachemocks.NewMockCache(ctrl)

		mockCache.EXPECT().
			Get(gomock.Any(), "user:"+userID.Hex(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest interface{}) (bool, error) {
				*dest.(*models.User) = *user
				return true, nil
			})

		svc := NewAuthService(mockRepo, mockCache, testJWTManager())

		got, err := svc.Me(context.Background(), testPrincipal(userID))

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("fetches from database on cache miss and caches result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repomocks.NewMockUserRepository(ctrl)
		mockCache := cachemocks.NewMockCache(ctrl)

		mockCache.EXPECT().
			Get(gomock.Any(), "user:"+userID.Hex(), gomock.Any()).
			Return(false, nil)
		mockRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(user, nil)
		mockCache.EXPECT().
			Set(gomock.Any(), "user:"+userID.Hex(), user, userCacheTTL).
			Return(nil)

		svc := NewAuthService(mockRepo, mockCache, testJWTManager())

		got, err := svc.Me(context.Background(), testPrincipal(userID))

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	userID := primitive.NewObjectID()
	hashed, err := auth.HashPassword("oldpassword")
	require.NoError(t, err)

	user := &models.User{ID: userID, Email: "alice@example.com", Password: hashed}

	t.Run("replaces password after verifying current one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repomocks.NewMockUserRepository(ctrl)
		mockCache := cachemocks.NewMockCache(ctrl)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(user, nil)
		mockRepo.EXPECT().
			UpdatePassword(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ primitive.ObjectID, newHash string) error {
				assert.NoError(t, auth.CheckPassword("newpassword", newHash))
				return nil
			})
		mockCache.EXPECT().
			Delete(gomock.Any(), "user:"+userID.Hex()).
			Return(nil)

		svc := NewAuthService(mockRepo, mockCache, testJWTManager())

		err := svc.ChangePassword(context.Background(), testPrincipal(userID), &models.ChangePasswordRequest{
			CurrentPassword: "oldpassword",
			NewPassword:     "newpassword",
		})

		assert.NoError(t, err)
	})

	t.Run("rejects wrong current password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repomocks.NewMockUserRepository(ctrl)
		mockCache := cachemocks.NewMockCache(ctrl)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(user, nil)

		svc := NewAuthService(mockRepo, mockCache, testJWTManager())

		err := svc.ChangePassword(context.Background(), testPrincipal(userID), &models.ChangePasswordRequest{
			CurrentPassword: "not-the-password",
			NewPassword:     "newpassword",
		})

		assert.Equal(t, apperrors.ErrPasswordMismatch, err)
	})
}
