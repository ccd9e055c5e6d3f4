package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/requestdata"
)

const (
	LoginPath     = "/"
	CallbackPath  = "/auth/callback"
	QuizPath      = "/quiz"
	DashboardPath = "/dashboard"
)

// sessionReader resolves a raw session token to a user ID without touching
// the database; services.AuthService satisfies it.
type sessionReader interface {
	UserIDFromToken(tokenString string) (uuid.UUID, error)
}

// profileChecker is the slice of repos.UserProfileRepo the gate needs.
type profileChecker interface {
	ExistsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error)
}

// AccessGate is the per-navigation routing decision: it inspects session
// presence and onboarding completion and either serves the requested page or
// redirects to the right one. It runs before any page content is produced.
type AccessGate struct {
	log        *logger.Logger
	sessions   sessionReader
	profiles   profileChecker
	cookieName string
}

func NewAccessGate(log *logger.Logger, sessions sessionReader, profiles profileChecker, cookieName string) *AccessGate {
	gateLog := log.With("middleware", "AccessGate")
	return &AccessGate{log: gateLog, sessions: sessions, profiles: profiles, cookieName: cookieName}
}

func isPublicPath(path string) bool {
	return path == LoginPath || path == CallbackPath
}

func (ag *AccessGate) Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		userID, ok := ag.sessionUserID(c)

		// No session on a protected page: back to login.
		if !ok && !isPublicPath(path) {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		// A signed-in user on the login page gets dispatched by onboarding
		// state. The profile check is fresh on every request; completion can
		// change between two navigations.
		if ok && path == LoginPath {
			exists, err := ag.profiles.ExistsForUser(c.Request.Context(), nil, userID)
			if err != nil {
				// Fail open: log and serve the originally requested page.
				ag.log.Warn("Profile lookup failed, serving requested page", "user_id", userID, "error", err)
			} else if exists {
				c.Redirect(http.StatusFound, DashboardPath)
				c.Abort()
				return
			} else {
				c.Redirect(http.StatusFound, QuizPath)
				c.Abort()
				return
			}
		}

		if ok {
			rd := &requestdata.RequestData{UserID: userID}
			c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
		}
		c.Next()
	}
}

func (ag *AccessGate) sessionUserID(c *gin.Context) (uuid.UUID, bool) {
	cookieToken, err := c.Cookie(ag.cookieName)
	if err != nil || cookieToken == "" {
		return uuid.Nil, false
	}
	userID, err := ag.sessions.UserIDFromToken(cookieToken)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}
