package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/auth"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/models"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func guardedRouter() *gin.Engine {
	r := gin.New()

	pages := r.Group("/")
	pages.Use(RequireUser(testSecret))
	pages.GET("/cart", func(c *gin.Context) {
		c.String(http.StatusOK, "cart of user %d", UserID(c))
	})

	api := r.Group("/api")
	api.Use(RequireUserAPI(testSecret))
	api.GET("/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})

	return r
}

func TestAnonymousPageRedirectsToLogin(t *testing.T) {
	r := guardedRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("redirect to %q, want /login", loc)
	}
	if strings.Contains(w.Body.String(), "cart of user") {
		t.Fatal("cart contents leaked to an anonymous request")
	}
}

func TestAnonymousAPIGets401(t *testing.T) {
	r := guardedRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "authentication required") {
		t.Fatalf("body = %q, want an authentication error", w.Body.String())
	}
}

func TestValidSessionPassesGuard(t *testing.T) {
	r := guardedRouter()

	token, err := auth.IssueSession(testSecret, time.Hour, &models.User{ID: 7, Username: "alice"})
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "cart of user 7") {
		t.Fatalf("body = %q, want the guarded page for user 7", w.Body.String())
	}
}

func TestTamperedSessionRejected(t *testing.T) {
	r := guardedRouter()

	token, err := auth.IssueSession("other-secret", time.Hour, &models.User{ID: 7, Username: "alice"})
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
