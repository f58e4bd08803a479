package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/messagely/messaging-api/internal/core/token"
)

func runAuth(t *testing.T, issuer *token.Issuer, authorization string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUsername string
	handler := Auth(issuer)(func(c echo.Context) error {
		seenUsername, _ = c.Get("username").(string)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seenUsername
}

func TestAuth_ValidToken(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	tok, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	rec, username := runAuth(t, issuer, "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if username != "alice" {
		t.Fatalf("expected username in context, got %q", username)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)

	rec, _ := runAuth(t, issuer, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)

	rec, _ := runAuth(t, issuer, "Basic abc123")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)

	rec, _ := runAuth(t, issuer, "Bearer not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	other := token.NewIssuer("other-secret", time.Hour)
	tok, err := other.Issue("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	issuer := token.NewIssuer("secret", time.Hour)
	rec, _ := runAuth(t, issuer, "Bearer "+tok)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
