package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/pkg/logger"
)

const tokenContextKey = "user"

// OperatorClaims is the token payload; UID is the users.id recorded on documents and ledger entries
type OperatorClaims struct {
	UID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// OperatorLookup reports whether a uid names a row in users
type OperatorLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// OperatorIdentity validates an HMAC bearer token and stores its uid as the operator.
// The uid must belong to a known user. With an empty secret every request passes
// through without an operator.
func OperatorIdentity(secret string, users OperatorLookup) echo.MiddlewareFunc {
	if secret == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		ContextKey: tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(OperatorClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return jwtMiddleware(attachOperator(users, next))
	}
}

func attachOperator(users OperatorLookup, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get(tokenContextKey).(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}

		claims, ok := token.Claims.(*OperatorClaims)
		if !ok || claims.UID <= 0 {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing uid in token")
		}

		exists, err := users.Exists(c.Request().Context(), claims.UID)
		if err != nil {
			logger.Error(c.Request().Context()).Err(err).Int64("uid", claims.UID).Msg("operator lookup failed")
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
		if !exists {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unknown operator")
		}

		ctx := common.WithOperatorID(c.Request().Context(), claims.UID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
