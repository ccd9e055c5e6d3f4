package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/requestdata"
)

const testCookie = "cb_session"

type fakeSessions struct {
	userID uuid.UUID
}

func (fs *fakeSessions) UserIDFromToken(tokenString string) (uuid.UUID, error) {
	if tokenString == "valid-token" {
		return fs.userID, nil
	}
	return uuid.Nil, fmt.Errorf("invalid token")
}

type fakeProfiles struct {
	exists bool
	err    error
	calls  int
}

func (fp *fakeProfiles) ExistsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error) {
	fp.calls++
	return fp.exists, fp.err
}

func gateRouter(t *testing.T, sessions *fakeSessions, profiles *fakeProfiles) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	gate := NewAccessGate(log, sessions, profiles, testCookie)

	r := gin.New()
	r.Use(gate.Gate())
	ok := func(c *gin.Context) { c.String(http.StatusOK, "page") }
	r.GET("/", ok)
	r.GET("/quiz", ok)
	r.GET("/dashboard", func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.String(http.StatusInternalServerError, "no request data")
			return
		}
		c.String(http.StatusOK, "dashboard for %s", rd.UserID)
	})
	r.GET("/auth/callback", ok)
	return r
}

func doGet(r *gin.Engine, path string, withSession bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withSession {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "valid-token"})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGateRedirectsAnonymousFromProtectedPaths(t *testing.T) {
	r := gateRouter(t, &fakeSessions{userID: uuid.New()}, &fakeProfiles{})

	for _, path := range []string{"/dashboard", "/quiz"} {
		w := doGet(r, path, false)
		if w.Code != http.StatusFound {
			t.Fatalf("%s: status = %d, want 302", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/" {
			t.Fatalf("%s: redirect to %q, want /", path, loc)
		}
	}
}

func TestGateServesPublicPathsToAnonymous(t *testing.T) {
	r := gateRouter(t, &fakeSessions{userID: uuid.New()}, &fakeProfiles{})

	for _, path := range []string{"/", "/auth/callback"} {
		w := doGet(r, path, false)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", path, w.Code)
		}
	}
}

func TestGateDispatchesLoginPageBySessionProfile(t *testing.T) {
	withProfile := &fakeProfiles{exists: true}
	r := gateRouter(t, &fakeSessions{userID: uuid.New()}, withProfile)
	w := doGet(r, "/", true)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("with profile: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}

	withoutProfile := &fakeProfiles{exists: false}
	r = gateRouter(t, &fakeSessions{userID: uuid.New()}, withoutProfile)
	w = doGet(r, "/", true)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/quiz" {
		t.Fatalf("without profile: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestGateFailsOpenOnProfileLookupError(t *testing.T) {
	broken := &fakeProfiles{err: errors.New("backend unavailable")}
	r := gateRouter(t, &fakeSessions{userID: uuid.New()}, broken)

	w := doGet(r, "/", true)
	if w.Code != http.StatusOK {
		t.Fatalf("fail-open: status = %d, want 200", w.Code)
	}
}

func TestGateServesProtectedPageWithSession(t *testing.T) {
	userID := uuid.New()
	profiles := &fakeProfiles{exists: true}
	r := gateRouter(t, &fakeSessions{userID: userID}, profiles)

	w := doGet(r, "/dashboard", true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	// Non-login protected paths never trigger the profile dispatch lookup.
	if profiles.calls != 0 {
		t.Fatalf("profile lookups on /dashboard = %d, want 0", profiles.calls)
	}
}

func TestGateDecisionIsIdempotent(t *testing.T) {
	profiles := &fakeProfiles{exists: true}
	r := gateRouter(t, &fakeSessions{userID: uuid.New()}, profiles)

	first := doGet(r, "/", true)
	second := doGet(r, "/", true)
	if first.Code != second.Code || first.Header().Get("Location") != second.Header().Get("Location") {
		t.Fatalf("decisions differ: %d/%q vs %d/%q",
			first.Code, first.Header().Get("Location"),
			second.Code, second.Header().Get("Location"))
	}
	// No caching between requests: each decision re-queries the profile.
	if profiles.calls != 2 {
		t.Fatalf("profile lookups = %d, want 2", profiles.calls)
	}
}

func TestGateInvalidCookieIsAnonymous(t *testing.T) {
	r := gateRouter(t, &fakeSessions{userID: uuid.New()}, &fakeProfiles{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("invalid cookie: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}
