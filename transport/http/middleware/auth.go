package middleware

import (
	"agenda/config"
	"agenda/infras/jwt"
	"agenda/infras/otel"
	"agenda/permissions"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/transport/http/response"
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type internalCallKey struct{}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole authenticates callers and enforces the role table from permissions.json.
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func isInternalCall(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCallKey{}).(bool)

	return internal
}

// endpoint resolves the chi pattern of the request, e.g. /v1/bookings/{id}, and its rule.
func (m *authRoleImpl) endpoint(request *http.Request) (string, permissions.Permission) {
	pattern := request.URL.Path
	if rctx := chi.RouteContext(request.Context()); rctx != nil && rctx.Routes != nil {
		if found := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path); found != "" {
			pattern = found
		}
	}

	if m.permission == nil {
		return pattern, permissions.Permission{}
	}

	return pattern, m.permission.FindPermissions(pattern, request.Method)
}

func reject(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	scope.End()

	response.WithError(writer, err)
}

func tokenMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "Invalid token claims"
	default:
		return "Token validation failed"
	}
}

// claimsFromRequest validates the bearer access token. The returned error is a 401 failure.
func (m *authRoleImpl) claimsFromRequest(ctx context.Context, request *http.Request) (*jwt.Claims, error) {
	header := request.Header.Get(constant.RequestHeaderAuthorization)
	if header == "" {
		return nil, failure.Unauthorized("Missing authorization header")
	}

	token, err := jwt.ExtractTokenFromHeader(header)
	if err != nil {
		return nil, failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(ctx, token, jwt.AccessToken)
	if err != nil {
		return nil, failure.Unauthorized(tokenMessage(err))
	}

	if claims.UserID == "" || claims.Email == "" || claims.Role == "" {
		log.Error().Str("user_id", claims.UserID).Msg("JWT claims are incomplete")

		return nil, failure.Unauthorized("Invalid token claims")
	}

	return claims, nil
}

// Auth requires a valid access token unless the route is public. Public routes
// still carry the caller identity when a valid token is sent.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		if isInternalCall(ctx) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		pattern, rule := m.endpoint(request)
		scope.SetAttributes(map[string]any{
			"http.route":  pattern,
			"http.method": request.Method,
			"auth.public": rule.Skip,
		})

		claims, err := m.claimsFromRequest(ctx, request)

		switch {
		case err == nil:
			scope.End()
			next.ServeHTTP(writer, request.WithContext(withClaims(ctx, claims)))
		case rule.Skip:
			scope.End()
			next.ServeHTTP(writer, request)
		default:
			reject(writer, scope, err)
		}
	})
}

func withClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

	return ctx
}

// RBAC lets the request through when the caller's role is listed for the route.
// It must run after Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if isInternalCall(ctx) || (m.permission != nil && m.permission.Skip) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		_, rule := m.endpoint(request)
		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if rule.Skip || len(rule.Permissions) == 0 || slices.Contains(rule.Permissions, role) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"user_role":     role,
			"allowed_roles": rule.Permissions,
		})
		reject(writer, scope, failure.ForbiddenError)
	})
}

// APIKey marks requests carrying the configured X-API-Key as internal calls
// that bypass Auth and RBAC. A wrong key is rejected outright.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		expected := m.cfg.App.APIKey
		if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, internalCallKey{}, true)))
	})
}
