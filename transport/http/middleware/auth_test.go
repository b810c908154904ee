package middleware_test

import (
	"agenda/config"
	"agenda/infras/jwt"
	"agenda/infras/otel/mocks"
	"agenda/permissions"
	"agenda/shared/constant"
	"agenda/transport/http/middleware"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKey = "internal-key"

func newRouter(t *testing.T) (http.Handler, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "agenda"
	cfg.App.APIKey = apiKey
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	tracer := mocks.NewOtel()
	tokens := jwt.New(cfg, tracer)

	table := permissions.Get()
	require.NotNil(t, table)

	auth := middleware.NewAuthRoleMiddleware(tokens, tracer, table, cfg)

	whoami := func(w http.ResponseWriter, r *http.Request) {
		id, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		_, _ = w.Write([]byte(id))
	}

	mux := chi.NewRouter()
	mux.Group(func(r chi.Router) {
		r.Use(auth.APIKey, auth.Auth, auth.RBAC)
		r.Route("/v1", func(r chi.Router) {
			r.Route("/bookings", func(r chi.Router) {
				r.Post("/", whoami)
				r.Get("/{id}", whoami)
			})
			r.Get("/services", whoami)
		})
	})

	return mux, tokens
}

func bearer(t *testing.T, tokens jwt.JWT, userID, role string) string {
	t.Helper()

	pair, err := tokens.GenerateTokenPair(context.Background(), userID, userID+"@example.com", role)
	require.NoError(t, err)

	return "Bearer " + pair.AccessToken
}

func TestAuthRole(t *testing.T) {
	router, tokens := newRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		header   map[string]string
		wantCode int
		wantBody string
	}{
		{
			name:     "missing token on protected route",
			method:   http.MethodPost,
			path:     "/v1/bookings",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "garbage token",
			method:   http.MethodGet,
			path:     "/v1/bookings/b-1",
			header:   map[string]string{"Authorization": "Bearer nope"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "professional cannot book",
			method:   http.MethodPost,
			path:     "/v1/bookings",
			header:   map[string]string{"Authorization": bearer(t, tokens, "pro-1", constant.RoleProfessional)},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "client books",
			method:   http.MethodPost,
			path:     "/v1/bookings",
			header:   map[string]string{"Authorization": bearer(t, tokens, "client-1", constant.RoleClient)},
			wantCode: http.StatusOK,
			wantBody: "client-1",
		},
		{
			name:     "parametrized route resolves its pattern",
			method:   http.MethodGet,
			path:     "/v1/bookings/b-1",
			header:   map[string]string{"Authorization": bearer(t, tokens, "pro-1", constant.RoleProfessional)},
			wantCode: http.StatusOK,
			wantBody: "pro-1",
		},
		{
			name:     "public route is anonymous without token",
			method:   http.MethodGet,
			path:     "/v1/services",
			wantCode: http.StatusOK,
			wantBody: "",
		},
		{
			name:     "public route keeps identity when token is valid",
			method:   http.MethodGet,
			path:     "/v1/services",
			header:   map[string]string{"Authorization": bearer(t, tokens, "pro-1", constant.RoleProfessional)},
			wantCode: http.StatusOK,
			wantBody: "pro-1",
		},
		{
			name:     "public route ignores invalid token",
			method:   http.MethodGet,
			path:     "/v1/services",
			header:   map[string]string{"Authorization": "Bearer nope"},
			wantCode: http.StatusOK,
		},
		{
			name:     "internal api key bypasses auth",
			method:   http.MethodPost,
			path:     "/v1/bookings",
			header:   map[string]string{constant.RequestHeaderAPIKey: apiKey},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong api key is rejected",
			method:   http.MethodPost,
			path:     "/v1/bookings",
			header:   map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.header {
				request.Header.Set(key, value)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}
