package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/services"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

type fakeOAuthService struct {
	user        *types.User
	exchangeErr error
	otherErr    error
}

func (f *fakeOAuthService) ExchangeAndLogin(ctx context.Context, code string) (*types.User, string, string, error) {
	if f.exchangeErr != nil {
		return nil, "", "", fmt.Errorf("%w: %v", services.ErrExchangeFailed, f.exchangeErr)
	}
	if f.otherErr != nil {
		return nil, "", "", f.otherErr
	}
	return f.user, "access-token", "refresh-token", nil
}

type fakeOnboarding struct {
	hasProfile bool
	err        error
}

func (f *fakeOnboarding) HasProfile(ctx context.Context, userID uuid.UUID) (bool, error) {
	return f.hasProfile, f.err
}

func (f *fakeOnboarding) Complete(ctx context.Context, userID uuid.UUID, answers map[string]string) (*types.UserProfile, error) {
	return nil, errors.New("not implemented")
}

func callbackRouter(t *testing.T, oauth services.OAuthService, onboarding services.OnboardingService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	h := NewOAuthHandler(log, oauth, onboarding, DefaultSessionCookie(false, 3600))
	r := gin.New()
	r.GET("/auth/callback", h.Callback)
	return r
}

func getCallback(r *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCallbackWithoutCode(t *testing.T) {
	r := callbackRouter(t, &fakeOAuthService{}, &fakeOnboarding{})
	w := getCallback(r, "/auth/callback")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/?error=no_code" {
		t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestCallbackExchangeFailure(t *testing.T) {
	r := callbackRouter(t, &fakeOAuthService{exchangeErr: errors.New("provider said no")}, &fakeOnboarding{})
	w := getCallback(r, "/auth/callback?code=abc")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/?error=auth_failed" {
		t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestCallbackLookupFailure(t *testing.T) {
	r := callbackRouter(t, &fakeOAuthService{otherErr: errors.New("db down")}, &fakeOnboarding{})
	w := getCallback(r, "/auth/callback?code=abc")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/?error=callback_error" {
		t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
	}

	user := &types.User{ID: uuid.New()}
	r = callbackRouter(t, &fakeOAuthService{user: user}, &fakeOnboarding{err: errors.New("profile read failed")})
	w = getCallback(r, "/auth/callback?code=abc")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/?error=callback_error" {
		t.Fatalf("profile err: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestCallbackRoutesByProfile(t *testing.T) {
	user := &types.User{ID: uuid.New()}

	r := callbackRouter(t, &fakeOAuthService{user: user}, &fakeOnboarding{hasProfile: true})
	w := getCallback(r, "/auth/callback?code=abc")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("with profile: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}

	r = callbackRouter(t, &fakeOAuthService{user: user}, &fakeOnboarding{hasProfile: false})
	w = getCallback(r, "/auth/callback?code=abc")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/quiz" {
		t.Fatalf("without profile: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}

	// The session cookie is written before the redirect.
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "cb_session" && c.Value == "access-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("session cookie not set on successful callback")
	}
}
