package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

type contextKey string

// AdminSubjectKey holds the sub claim of an authenticated admin request.
const AdminSubjectKey contextKey = "admin_subject"

// AdminAuth validates HS256 bearer tokens issued by the auth provider and
// lets through only those carrying the admin role.
type AdminAuth struct {
	secret []byte
	role   string
	log    *zap.SugaredLogger
}

// NewAdminAuth creates a new AdminAuth
func NewAdminAuth(secret, role string, logger *zap.Logger) *AdminAuth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminAuth{secret: []byte(secret), role: role, log: logger.Sugar()}
}

// AdminOnly rejects requests without a valid admin token. Missing or invalid
// tokens get 401; valid tokens without the role get 403.
func (a *AdminAuth) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return
		}

		claims, err := a.parse(strings.TrimSpace(parts[1]))
		if err != nil {
			a.log.Warnf("⚠️  Rejected admin token: %v", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		if roleOf(claims) != a.role {
			a.log.Warnf("⚠️  Token for %v lacks role %s", claims["sub"], a.role)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		sub, _ := claims["sub"].(string)
		ctx := context.WithValue(r.Context(), AdminSubjectKey, sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *AdminAuth) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("token invalid")
	}
	return claims, nil
}

// roleOf reads app_metadata.role, falling back to the top-level role claim.
func roleOf(claims jwt.MapClaims) string {
	if meta, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if role, ok := meta["role"].(string); ok && role != "" {
			return role
		}
	}
	role, _ := claims["role"].(string)
	return role
}

// AdminSubject returns the sub claim stored by AdminOnly.
func AdminSubject(ctx context.Context) string {
	sub, _ := ctx.Value(AdminSubjectKey).(string)
	return sub
}
