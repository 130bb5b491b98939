package auth

import (
	"net/http"
	"strings"

	"github.com/expensebud/backend/internal/httputil"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const claimsKey = "auth.claims"

// Authenticate parses a bearer token from the Authorization header and
// stores its claims in the context.
//
// Requests without a token pass through unauthenticated, routes that
// need a user are guarded by EnsureCorrectUser. Invalid tokens are
// rejected.
func Authenticate(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			httputil.NewError(c, http.StatusUnauthorized, ErrInvalidToken)
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			log.Debug().Err(err).Msg("rejected token")
			httputil.NewError(c, http.StatusUnauthorized, ErrInvalidToken)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentUser returns the claims of the authenticated user.
func CurrentUser(c *gin.Context) (Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return Claims{}, false
	}

	claims, ok := v.(Claims)
	return claims, ok
}

// EnsureCorrectUser rejects requests that are not authenticated as the
// user in the userId path parameter.
func EnsureCorrectUser(c *gin.Context) {
	claims, ok := CurrentUser(c)
	if !ok {
		httputil.NewError(c, http.StatusUnauthorized, ErrMissingToken)
		return
	}

	if claims.ID.String() != strings.ToLower(c.Param("userId")) {
		httputil.NewError(c, http.StatusForbidden, ErrWrongUser)
		return
	}

	c.Next()
}

// RateLimit rejects requests exceeding the limiter's rate.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			httputil.NewError(c, http.StatusTooManyRequests, ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
