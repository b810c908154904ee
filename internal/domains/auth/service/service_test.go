package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/jwt"
	jwtMocks "agenda/infras/jwt/mocks"
	"agenda/infras/otel/mocks"
	"agenda/internal/domains/auth/model/dto"
	"agenda/internal/domains/auth/service"
	userMocks "agenda/internal/domains/user/mocks"
	userModel "agenda/internal/domains/user/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
)

// bcrypt hash of "password"
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func validUser() userModel.User {
	return userModel.User{
		ID:       "user-id-123",
		Email:    "test@example.com",
		Password: passwordHash,
		Name:     "Test User",
		Role:     constant.RoleClient,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "user-id-123",
			ModifiedBy: "user-id-123",
		},
	}
}

func withUser(id string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleClient)
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	req := dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "secret123",
		Name:     "New Pro",
		Role:     constant.RoleProfessional,
	}

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful registration",
			req:  req,
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, constant.RoleProfessional, user.Role)
						assert.NotEqual(t, "secret123", user.Password)

						return nil
					})
			},
		},
		{
			name: "email already registered",
			req:  req,
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "concurrent registration hits unique index",
			req:  req,
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "admin role is refused",
			req: dto.RegisterRequest{
				Email:    "boss@example.com",
				Password: "secret123",
				Name:     "Boss",
				Role:     constant.RoleAdmin,
			},
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "repository error",
			req:  req,
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Register(context.Background(), tt.req)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, "new@example.com", res.Email)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	user := validUser()
	tokenPair := &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer"}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Role).
					Return(tokenPair, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login failure does not block login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Role).
					Return(tokenPair, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
		},
		{
			name: "user not found",
			req:  dto.LoginRequest{Email: "nonexistent@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				inactive := user
				inactive.Active = false

				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Role).
					Return(nil, errors.New("token generation failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Login(context.Background(), tt.req)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", result.AccessToken)
			assert.Equal(t, "refresh-token", result.RefreshToken)
			assert.Equal(t, constant.RoleClient, result.Role)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(userMocks.NewMockUser(ctrl), &config.Config{}, mocks.NewOtel(), mockJWT)

	tests := []struct {
		name      string
		req       dto.RefreshTokenRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful token refresh",
			req:  dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"},
			setupMock: func() {
				mockJWT.EXPECT().
					RefreshTokens(gomock.Any(), "valid-refresh-token").
					Return(&jwt.TokenPair{AccessToken: "new-access-token", RefreshToken: "new-refresh-token"}, nil)
			},
		},
		{
			name: "invalid refresh token",
			req:  dto.RefreshTokenRequest{RefreshToken: "invalid-refresh-token"},
			setupMock: func() {
				mockJWT.EXPECT().
					RefreshTokens(gomock.Any(), "invalid-refresh-token").
					Return(nil, errors.New("invalid token"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.RefreshToken(context.Background(), tt.req)
			if tt.wantErr {
				assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	user := validUser()
	req := dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.ChangePasswordRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful password change",
			ctx:  withUser(user.ID),
			req:  req,
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				mockUserRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.NotEqual(t, "newpassword123", fields[userModel.FieldPassword])
						assert.Equal(t, user.ID, fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:      "anonymous caller",
			ctx:       context.Background(),
			req:       req,
			setupMock: func() {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "repository error",
			ctx:  withUser(user.ID),
			req:  req,
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "user no longer exists",
			ctx:  withUser(user.ID),
			req:  req,
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "wrong current password",
			ctx:  withUser(user.ID),
			req:  dto.ChangePasswordRequest{CurrentPassword: "wrongpassword", NewPassword: "newpassword123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "update password error",
			ctx:  withUser(user.ID),
			req:  req,
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ChangePassword(tt.ctx, tt.req)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
