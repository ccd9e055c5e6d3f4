package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/services"
)

type OAuthHandler struct {
	log           *logger.Logger
	oauthService  services.OAuthService
	onboarding    services.OnboardingService
	sessionCookie CookieConfig
}

func NewOAuthHandler(
	log *logger.Logger,
	oauthService services.OAuthService,
	onboarding services.OnboardingService,
	sessionCookie CookieConfig,
) *OAuthHandler {
	handlerLog := log.With("handler", "OAuthHandler")
	return &OAuthHandler{
		log:           handlerLog,
		oauthService:  oauthService,
		onboarding:    onboarding,
		sessionCookie: sessionCookie,
	}
}

// Callback completes the external OAuth handshake. Every failure mode ends
// in a redirect with an error indicator; a raw error page never reaches the
// browser from here.
func (oh *OAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, "/?error=no_code")
		return
	}

	user, accessToken, _, err := oh.oauthService.ExchangeAndLogin(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, services.ErrExchangeFailed) {
			c.Redirect(http.StatusFound, "/?error=auth_failed")
			return
		}
		oh.log.Warn("OAuth callback failed after exchange", "error", err)
		c.Redirect(http.StatusFound, "/?error=callback_error")
		return
	}

	oh.sessionCookie.Write(c, accessToken)

	hasProfile, pErr := oh.onboarding.HasProfile(c.Request.Context(), user.ID)
	if pErr != nil {
		oh.log.Warn("Profile lookup failed in OAuth callback", "user_id", user.ID, "error", pErr)
		c.Redirect(http.StatusFound, "/?error=callback_error")
		return
	}
	if hasProfile {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/quiz")
}
