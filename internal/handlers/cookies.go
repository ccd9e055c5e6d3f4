package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieConfig spells out every cookie attribute we set. The session token
// cookie is what makes page navigation (and the access gate) work without an
// Authorization header.
type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

func DefaultSessionCookie(secure bool, maxAge int) CookieConfig {
	return CookieConfig{
		Name:     "cb_session",
		Path:     "/",
		Domain:   "",
		MaxAge:   maxAge,
		Secure:   secure,
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (cc CookieConfig) Write(c *gin.Context, value string) {
	c.SetSameSite(cc.SameSite)
	c.SetCookie(cc.Name, value, cc.MaxAge, cc.Path, cc.Domain, cc.Secure, cc.HTTPOnly)
}

func (cc CookieConfig) Clear(c *gin.Context) {
	c.SetSameSite(cc.SameSite)
	c.SetCookie(cc.Name, "", -1, cc.Path, cc.Domain, cc.Secure, cc.HTTPOnly)
}
