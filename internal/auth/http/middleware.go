package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/docshare/internal/auth/usecase"
	apperrors "github.com/allisson/docshare/internal/errors"
	"github.com/allisson/docshare/internal/httputil"
)

// AuthenticationMiddleware resolves the Bearer value in the Authorization
// header to a user and stores it in the request context.
//
// Unlike a conventional auth gate this middleware never aborts: a missing
// header, malformed header or unresolvable value lets the request proceed
// anonymously. The authorization decision belongs to the domain policy
// (public documents are world-readable), so rejecting here would be wrong.
// Routes that do require an identity stack RequireUserMiddleware on top.
func AuthenticationMiddleware(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		value := bearerValue(c.GetHeader("Authorization"))
		if value == "" {
			c.Next()
			return
		}

		user, err := tokenUseCase.Authenticate(c.Request.Context(), value)
		if err != nil {
			// An unresolvable value downgrades to anonymous instead of 401.
			logger.Debug("bearer value did not resolve, proceeding anonymously",
				slog.String("error", err.Error()))
			c.Next()
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", user.ID.String()),
			slog.String("username", user.Username))

		c.Next()
	}
}

// RequireUserMiddleware aborts with 401 when no authenticated user is in the
// request context. Stack after AuthenticationMiddleware on routes that do not
// accept anonymous callers.
func RequireUserMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUser(c.Request.Context()); !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireVerifiedMiddleware aborts with 401 when the caller is anonymous or
// has not confirmed their email address. Used on email-gated routes.
func RequireVerifiedMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok || !user.Verified {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}
		c.Next()
	}
}

// bearerValue extracts the credential from an Authorization header.
// The "bearer" scheme match is case-insensitive; the value itself is not
// normalized in any way.
func bearerValue(header string) string {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return header[len(bearerPrefix):]
}
