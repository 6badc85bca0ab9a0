package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookly/config"
	"bookly/infras/jwt"
	jwtMocks "bookly/infras/jwt/mocks"
	"bookly/infras/otel/mocks"
	"bookly/permissions"
	"bookly/shared/constant"
	"bookly/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const testToken = "access-token"

func newDashboardRouter(t *testing.T, mockJWT *jwtMocks.MockJWT) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	authRole := middleware.NewAuthRoleMiddleware(mockJWT, mocks.NewOtel(), permissions.Get(), cfg)

	echoBusiness := func(w http.ResponseWriter, r *http.Request) {
		businessID, _ := r.Context().Value(constant.ContextKeyBusinessID).(string)
		userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)

		w.Header().Set("X-Business", businessID)
		w.Header().Set("X-User", userID)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Route("/v1", func(v1 chi.Router) {
		v1.Group(func(internal chi.Router) {
			internal.Use(authRole.APIKey)
			internal.Post("/internal/reminders/run", echoBusiness)
		})

		v1.Group(func(dashboard chi.Router) {
			dashboard.Use(authRole.Auth, authRole.RBAC)
			dashboard.Route("/users", func(users chi.Router) {
				users.Post("/", echoBusiness)
				users.Get("/{id}", echoBusiness)
			})
			dashboard.Delete("/appointments/{id}", echoBusiness)
			dashboard.Get("/appointments/{id}", echoBusiness)
		})
	})

	return router
}

func claims(role string) *jwt.Claims {
	return &jwt.Claims{
		Identity: jwt.Identity{
			UserID:     "user-1",
			BusinessID: "business-1",
			Email:      "owner@example.com",
			Role:       role,
		},
		TokenID: "token-1",
		Type:    jwt.AccessToken,
	}
}

func TestAuthRole_Dashboard(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		header       string
		setupMock    func(mockJWT *jwtMocks.MockJWT)
		wantCode     int
		wantBusiness string
	}{
		{
			name:     "missing header",
			method:   http.MethodGet,
			path:     "/v1/users/abc",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodGet,
			path:     "/v1/users/abc",
			header:   "Token abc",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			path:   "/v1/users/abc",
			header: "Bearer " + testToken,
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(testToken, jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "claims without email",
			method: http.MethodGet,
			path:   "/v1/users/abc",
			header: "Bearer " + testToken,
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				c := claims(constant.RoleOwner)
				c.Email = ""
				mockJWT.EXPECT().ValidateToken(testToken, jwt.AccessToken).Return(c, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "staff can read users",
			method: http.MethodGet,
			path:   "/v1/users/abc",
			header: "Bearer " + testToken,
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(testToken, jwt.AccessToken).Return(claims(constant.RoleStaff), nil)
			},
			wantCode:     http.StatusOK,
			wantBusiness: "business-1",
		},
		{
			name:   "staff cannot create users",
			method: http.MethodPost,
			path:   "/v1/users",
			header: "Bearer " + testToken,
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(testToken, jwt.AccessToken).Return(claims(constant.RoleStaff), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "owner can create users",
			method: http.MethodPost,
			path:   "/v1/users",
			header: "Bearer " + testToken,
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(testToken, jwt.AccessToken).Return(claims(constant.RoleOwner), nil)
			},
			wantCode:     http.StatusOK,
			wantBusiness: "business-1",
		},
		{
			name:   "staff cannot delete appointments",
			method: http.MethodDelete,
			path:   "/v1/appointments/abc",
			header: "Bearer " + testToken,
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(testToken, jwt.AccessToken).Return(claims(constant.RoleStaff), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "staff can read appointments",
			method: http.MethodGet,
			path:   "/v1/appointments/abc",
			header: "Bearer " + testToken,
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(testToken, jwt.AccessToken).Return(claims(constant.RoleStaff), nil)
			},
			wantCode:     http.StatusOK,
			wantBusiness: "business-1",
		},
		{
			name:   "unexpected validation error",
			method: http.MethodGet,
			path:   "/v1/appointments/abc",
			header: "Bearer " + testToken,
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(testToken, jwt.AccessToken).Return(nil, errors.New("boom"))
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockJWT := jwtMocks.NewMockJWT(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(mockJWT)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			recorder := httptest.NewRecorder()
			newDashboardRouter(t, mockJWT).ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantBusiness, recorder.Header().Get("X-Business"))
		})
	}
}

func TestAuthRole_APIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		wantCode int
		wantUser string
	}{
		{name: "missing key", wantCode: http.StatusForbidden},
		{name: "wrong key", key: "nope", wantCode: http.StatusForbidden},
		{name: "valid key runs as system", key: "internal-key", wantCode: http.StatusOK, wantUser: constant.ContextSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			req := httptest.NewRequest(http.MethodPost, "/v1/internal/reminders/run", nil)
			if tt.key != "" {
				req.Header.Set(constant.RequestHeaderAPIKey, tt.key)
			}

			recorder := httptest.NewRecorder()
			newDashboardRouter(t, jwtMocks.NewMockJWT(ctrl)).ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantUser, recorder.Header().Get("X-User"))
		})
	}
}
