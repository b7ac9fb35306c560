package http

import (
	"errors"
	"net/http"
	"strings"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/generated/servers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const staffContextKey = "printdesk.staff"

var errNoStaff = errors.New("no authenticated staff member")

// JWTConfig configures bearer-token authentication. Tokens are HS256 and
// name the staff member in sub.
type JWTConfig struct {
	Secret []byte
	// Issuer, when set, must match the iss claim.
	Issuer string
	// Skipper exempts requests from authentication.
	Skipper func(ctx echo.Context) bool
}

// JWTAuth rejects requests without a valid token with 401. The SSE route also
// accepts the token as access_token, since EventSource cannot send headers.
func JWTAuth(cfg JWTConfig) echo.MiddlewareFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if cfg.Skipper != nil && cfg.Skipper(ctx) {
				return next(ctx)
			}

			raw := bearerToken(ctx)
			if raw == "" {
				return unauthorized(ctx, "Missing bearer token")
			}

			claims := &jwt.RegisteredClaims{}
			_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return cfg.Secret, nil
			})
			if err != nil {
				return unauthorized(ctx, "Invalid bearer token")
			}

			staff, err := kernel.NewStaffID(claims.Subject)
			if err != nil {
				return unauthorized(ctx, "Token has no subject")
			}

			ctx.Set(staffContextKey, staff)
			return next(ctx)
		}
	}
}

func bearerToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if ctx.Request().Method == http.MethodGet && strings.HasSuffix(ctx.Request().URL.Path, "/events") {
		return ctx.QueryParam("access_token")
	}
	return ""
}

func unauthorized(ctx echo.Context, msg string) error {
	ctx.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="printdesk"`)
	return ctx.JSON(http.StatusUnauthorized, servers.Error{Error: msg})
}

// staffFromContext returns the member JWTAuth authenticated.
func staffFromContext(ctx echo.Context) (kernel.StaffID, error) {
	staff, ok := ctx.Get(staffContextKey).(kernel.StaffID)
	if !ok || staff == "" {
		return "", errNoStaff
	}
	return staff, nil
}
