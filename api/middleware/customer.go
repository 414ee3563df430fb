package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mercantile-labs/wishlists-backend/api/responses"
	"github.com/mercantile-labs/wishlists-backend/pkg/config"
	pkgerrors "github.com/mercantile-labs/wishlists-backend/pkg/errors"
	"github.com/mercantile-labs/wishlists-backend/pkg/logger"
)

type customerClaims struct {
	CustomerID int64 `json:"customer_id"`
	jwt.RegisteredClaims
}

// Customer resolves the acting customer for the request. A bearer token
// carrying a customer_id claim takes precedence; without credentials the
// configured default customer is assumed. Requests with a bad token are
// rejected rather than silently downgraded to the default.
func Customer(jwtCfg config.JWTConfig, customerCfg config.CustomerConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customerID := customerCfg.DefaultID

			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw != "" && jwtCfg.Secret != "" {
				token := raw
				if strings.HasPrefix(strings.ToLower(token), "bearer ") {
					token = strings.TrimSpace(token[7:])
				}

				claims, err := parseCustomerToken(jwtCfg, token)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
					return
				}
				if claims.CustomerID <= 0 {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token missing customer id"))
					return
				}
				customerID = claims.CustomerID
			}

			ctx := WithCustomerID(r.Context(), customerID)
			if logg != nil {
				ctx = logg.WithCustomerID(ctx, customerID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseCustomerToken(cfg config.JWTConfig, token string) (*customerClaims, error) {
	claims := &customerClaims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
