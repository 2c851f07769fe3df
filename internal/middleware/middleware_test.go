package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
)

const testSecret = "parts-counter-secret"

// knownUsers is an in-memory users table
type knownUsers map[int64]bool

func (u knownUsers) Exists(ctx context.Context, id int64) (bool, error) {
	return u[id], nil
}

type failingUsers struct{}

func (failingUsers) Exists(ctx context.Context, id int64) (bool, error) {
	return false, errors.New("connection reset")
}

func operatorEcho(secret string) *echo.Echo {
	return operatorEchoWith(secret, knownUsers{7: true})
}

func operatorEchoWith(secret string, users OperatorLookup) *echo.Echo {
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		operatorID, ok := common.GetOperatorIDFromContext(c.Request().Context())
		if !ok {
			return c.JSON(http.StatusOK, map[string]interface{}{"operator": nil})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"operator": operatorID})
	}, OperatorIdentity(secret, users))
	return e
}

func signToken(t *testing.T, secret string, claims OperatorClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestOperatorIdentity_OpenWithoutSecret(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()

	operatorEcho("").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"operator":null}`, rec.Body.String())
}

func TestOperatorIdentity_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, OperatorClaims{
		UID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()

	operatorEcho(testSecret).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"operator":7}`, rec.Body.String())
}

func TestOperatorIdentity_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing token", header: ""},
		{name: "wrong secret", header: "Bearer " + signToken(t, "other-secret", OperatorClaims{UID: 7})},
		{name: "missing uid", header: "Bearer " + signToken(t, testSecret, OperatorClaims{})},
		{name: "uid without a user row", header: "Bearer " + signToken(t, testSecret, OperatorClaims{UID: 999})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()

			operatorEcho(testSecret).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestOperatorIdentity_LookupFailure(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, testSecret, OperatorClaims{UID: 7}))
	rec := httptest.NewRecorder()

	operatorEchoWith(testSecret, failingUsers{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type adjustRequest struct {
	Mode     string `json:"mode" validate:"required,oneof=delta absolute"`
	Quantity *int   `json:"quantity" validate:"required"`
	Items    []struct {
		PartID int64 `json:"part_id" validate:"required"`
	} `json:"items" validate:"dive"`
}

func TestRequestValidator_ReportsJSONFieldNames(t *testing.T) {
	rv := NewRequestValidator()

	err := rv.Validate(&adjustRequest{
		Mode: "sideways",
		Items: []struct {
			PartID int64 `json:"part_id" validate:"required"`
		}{{}},
	})
	require.Error(t, err)

	details := ValidationDetails(err)
	assert.Equal(t, "oneof=delta absolute", details["mode"])
	assert.Equal(t, "required", details["quantity"])
	assert.Equal(t, "required", details["items[0].part_id"])
}

func TestRequestValidator_Valid(t *testing.T) {
	quantity := 0
	assert.NoError(t, NewRequestValidator().Validate(&adjustRequest{Mode: "delta", Quantity: &quantity}))
	assert.Nil(t, ValidationDetails(nil))
}

func TestVersionRoute_SetsHeaders(t *testing.T) {
	e := echo.New()
	vm := NewVersionMiddleware()
	v1 := vm.VersionRoute(e, vm.GetCurrentVersion())
	v1.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))
}
