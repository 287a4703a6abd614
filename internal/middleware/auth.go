package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/wedding-vendors/internal/auth"
	"github.com/BruksfildServices01/wedding-vendors/internal/domain/user"
	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/models"
)

const (
	ContextUser     = "user"
	ContextUserID   = "userID"
	ContextUserRole = "userRole"

	TokenCookie = "token"
)

// AuthMiddleware requires a valid session token and attaches the user it
// belongs to.
func AuthMiddleware(tokens *auth.TokenIssuer, users user.Repository) gin.HandlerFunc {
	return authenticate(tokens, users, true)
}

// OptionalAuth attaches the user when a token is sent. Requests without a
// token pass through; an invalid token is still rejected.
func OptionalAuth(tokens *auth.TokenIssuer, users user.Repository) gin.HandlerFunc {
	return authenticate(tokens, users, false)
}

func authenticate(tokens *auth.TokenIssuer, users user.Repository, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if tokenString == "" {
			if required {
				httperr.Respond(c, httperr.ErrUnauthorized("Not authorized, no token"))
				return
			}
			c.Next()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			httperr.Respond(c, httperr.ErrUnauthorized("Not authorized, token failed"))
			return
		}

		u, err := users.GetUserByID(c.Request.Context(), claims.Subject)
		if err != nil {
			if httperr.StatusOf(err) == http.StatusNotFound {
				httperr.Respond(c, httperr.ErrUnauthorized("Not authorized, user not found"))
				return
			}
			httperr.Respond(c, err)
			return
		}

		c.Set(ContextUser, u)
		c.Set(ContextUserID, u.ID)
		c.Set(ContextUserRole, u.Role)

		c.Next()
	}
}

// extractToken reads the bearer token from the Authorization header, then
// from the session cookie. No credentials at all yields "".
func extractToken(c *gin.Context) (string, error) {
	// Other schemes (Basic from a proxy, say) fall through to the cookie.
	scheme, token, _ := strings.Cut(c.GetHeader("Authorization"), " ")
	if strings.EqualFold(scheme, "Bearer") {
		token = strings.TrimSpace(token)
		if token == "" {
			return "", httperr.ErrUnauthorized("Invalid authorization header")
		}
		return token, nil
	}

	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", nil
}

// Authorize allows the request through only for the given roles.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			httperr.Respond(c, httperr.ErrUnauthenticated("Authentication required"))
			return
		}

		for _, role := range roles {
			if u.Role == role {
				c.Next()
				return
			}
		}
		httperr.Respond(c, httperr.ErrForbidden("Not authorized for this action"))
	}
}

// CurrentUser returns the user attached by AuthMiddleware or OptionalAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

// CurrentUserID is "" for anonymous requests.
func CurrentUserID(c *gin.Context) string {
	if u, ok := CurrentUser(c); ok {
		return u.ID
	}
	return ""
}
