package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	actorKey     = "acting_user_id"
	UserIDHeader = "X-User-ID"
	bearerPrefix = "Bearer "
)

// ResolveActor stores the acting user id for downstream handlers. The id
// comes from the `sub` claim of an HS256 bearer token, or, when
// allowHeader is set, from the X-User-ID header. Requests without either
// pass through anonymously; handlers decide whether that is acceptable.
func ResolveActor(secret []byte, allowHeader bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if strings.HasPrefix(auth, bearerPrefix) {
				subject, err := subjectFromToken(strings.TrimPrefix(auth, bearerPrefix), secret)
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token")
				}
				c.Set(actorKey, subject)
				return next(c)
			}

			if allowHeader {
				if id := strings.TrimSpace(c.Request().Header.Get(UserIDHeader)); id != "" {
					c.Set(actorKey, id)
				}
			}
			return next(c)
		}
	}
}

func subjectFromToken(raw string, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", jwt.ErrTokenUnverifiable
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return subject, nil
}

// ActorFrom returns the acting user id resolved for this request, or "".
func ActorFrom(c echo.Context) string {
	id, _ := c.Get(actorKey).(string)
	return id
}
