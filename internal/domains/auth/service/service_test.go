package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookly/config"
	"bookly/infras/jwt"
	jwtMocks "bookly/infras/jwt/mocks"
	"bookly/infras/otel/mocks"
	"bookly/internal/domains/auth/model/dto"
	"bookly/internal/domains/auth/service"
	businessMocks "bookly/internal/domains/business/mocks"
	businessModel "bookly/internal/domains/business/model"
	"bookly/internal/domains/plan"
	userMocks "bookly/internal/domains/user/mocks"
	userModel "bookly/internal/domains/user/model"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/failure"
	"bookly/shared/password"
	"bookly/shared/timezone"
)

var tokens = &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer", ExpiresIn: 900}

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, *businessMocks.MockBusiness, *jwtMocks.MockJWT) {
	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockBusinessRepo := businessMocks.NewMockBusiness(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.App.Timezone = "America/Sao_Paulo"
	cfg.Plan.TrialDays = 14

	return service.New(mockUserRepo, mockBusinessRepo, cfg, mocks.NewOtel(), mockJWT), mockUserRepo, mockBusinessRepo, mockJWT
}

func hashed(t *testing.T, plain string) string {
	h, err := password.Hash(plain)
	require.NoError(t, err)

	return h
}

func TestAuthService_Register(t *testing.T) {
	svc, mockUserRepo, mockBusinessRepo, mockJWT := newService(t)

	req := dto.RegisterRequest{
		BusinessName: "Barbearia São João",
		Email:        "owner@example.com",
		Password:     "password123",
		FullName:     "João",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantSlug  string
		wantCode  int
	}{
		{
			name: "creates business and owner together",
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockBusinessRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						assert.Equal(t, "barbearia-sao-joao", filter.Filters[0].(gDto.Filter).Value)

						return false, nil
					})
				mockUserRepo.EXPECT().Transaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
						return fn(nil)
					})
				mockBusinessRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, business businessModel.Business) error {
						assert.Equal(t, plan.TierFreemium, business.Plan)
						assert.Equal(t, plan.StatusTrial, business.PlanStatus)
						assert.Equal(t, "America/Sao_Paulo", business.Timezone)
						require.NotNil(t, business.TrialEndsAt)
						assert.True(t, business.TrialEndsAt.After(timezone.Now().AddDate(0, 0, 13)))

						return nil
					})
				mockUserRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, user userModel.User) error {
						assert.Equal(t, constant.RoleOwner, user.Role)
						assert.NotEmpty(t, user.BusinessID)

						return nil
					})
				mockJWT.EXPECT().GenerateTokenPair(gomock.Any()).
					DoAndReturn(func(identity jwt.Identity) (*jwt.TokenPair, error) {
						assert.NotEmpty(t, identity.BusinessID)
						assert.Equal(t, constant.RoleOwner, identity.Role)

						return tokens, nil
					})
			},
			wantSlug: "barbearia-sao-joao",
		},
		{
			name: "taken slug gets a suffix",
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockBusinessRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockUserRepo.EXPECT().Transaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
						return fn(nil)
					})
				mockBusinessRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mockUserRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mockJWT.EXPECT().GenerateTokenPair(gomock.Any()).Return(tokens, nil)
			},
			wantSlug: "barbearia-sao-joao-",
		},
		{
			name: "email already registered",
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "owner insert fails",
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockBusinessRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().Transaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
						return fn(nil)
					})
				mockBusinessRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mockUserRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("duplicate key"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Register(context.Background(), req)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Contains(t, res.BusinessSlug, tt.wantSlug)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.NotEmpty(t, res.UserID)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, mockUserRepo, _, mockJWT := newService(t)

	validUser := userModel.User{
		ID:         "user-id-123",
		BusinessID: "biz-1",
		Email:      "test@example.com",
		Password:   hashed(t, "password123"),
		Role:       constant.RoleOwner,
		Active:     true,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(jwt.Identity{UserID: validUser.ID, BusinessID: "biz-1", Email: validUser.Email, Role: constant.RoleOwner}).
					Return(tokens, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login update failure does not block the login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().GenerateTokenPair(gomock.Any()).Return(tokens, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("timeout"))
			},
		},
		{
			name: "user not found",
			req:  dto.LoginRequest{Email: "nonexistent@example.com", Password: "password123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantErr: true,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password123"},
			setupMock: func() {
				inactiveUser := validUser
				inactiveUser.Active = false

				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactiveUser, nil)
			},
			wantErr: true,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().GenerateTokenPair(gomock.Any()).Return(nil, errors.New("token generation failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, _, _, mockJWT := newService(t)

	mockJWT.EXPECT().RefreshTokens("valid").Return(tokens, nil)

	res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid"})
	require.NoError(t, err)
	assert.Equal(t, "access-token", res.AccessToken)

	mockJWT.EXPECT().RefreshTokens("expired").Return(nil, jwt.ErrExpiredToken)

	_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "expired"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, mockUserRepo, _, _ := newService(t)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id-123")
	ctx = context.WithValue(ctx, constant.ContextKeyBusinessID, "biz-1")

	user := userModel.User{ID: "user-id-123", BusinessID: "biz-1", Password: hashed(t, "password123")}

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "updates the hash",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "newpassword456"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						newHash, ok := fields[userModel.FieldPassword].(string)
						require.True(t, ok)
						assert.NoError(t, password.Verify("newpassword456", newHash))

						return nil
					})
			},
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newpassword456"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "user not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "newpassword456"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ChangePassword(ctx, tt.req)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
