package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by the middlewares.
const (
	SessionKey  = "session_id"
	UsernameKey = "username"
)

// Claims extends jwt.RegisteredClaims with application-specific fields.
// Guest tokens carry SessionID; admin tokens carry Username.
type Claims struct {
	SessionID string `json:"sid,omitempty"`
	Username  string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// NewSessionToken signs a guest token for a fresh session id.
func NewSessionToken(key []byte, ttl time.Duration) (token, sessionID string, err error) {
	sessionID = uuid.NewString()
	claims := &Claims{SessionID: sessionID}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	return token, sessionID, err
}

// NewAdminToken signs a token for an authenticated admin user.
func NewAdminToken(key []byte, username string, ttl time.Duration) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

func parse(c echo.Context, key []byte) (*Claims, error) {
	token := c.Request().Header.Get("Authorization")
	if token == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "missing authorization header")
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) || errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token signature")
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "token expired")
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !tkn.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// Session returns an Echo middleware that requires a guest token and
// stores its session id in the context.
func Session(key []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parse(c, key)
			if err != nil {
				return err
			}
			if claims.SessionID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not a session token")
			}
			c.Set(SessionKey, claims.SessionID)
			return next(c)
		}
	}
}

// Admin returns an Echo middleware that requires a token issued to one of
// the users accepted by isAdmin.
func Admin(key []byte, isAdmin func(string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parse(c, key)
			if err != nil {
				return err
			}
			if claims.Username == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if !isAdmin(claims.Username) {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			c.Set(UsernameKey, claims.Username)
			return next(c)
		}
	}
}
