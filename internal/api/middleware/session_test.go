package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/swiftpark/parking-portal/internal/core/domain"
)

type stubSessions struct {
	principals map[string]*domain.Principal
	sessionIDs map[string]string
}

func newStubSessions() *stubSessions {
	return &stubSessions{
		principals: make(map[string]*domain.Principal),
		sessionIDs: make(map[string]string),
	}
}

func (s *stubSessions) Start(_ context.Context, p *domain.Principal) (string, error) {
	token := "token-" + p.UserID
	s.principals[token] = p
	s.sessionIDs[token] = "sid-" + p.UserID
	return token, nil
}

func (s *stubSessions) Restore(_ context.Context, token string) (*domain.Principal, string, error) {
	p, ok := s.principals[token]
	if !ok {
		return nil, "", nil
	}
	return p, s.sessionIDs[token], nil
}

func (s *stubSessions) Invalidate(_ context.Context, token string) error {
	delete(s.principals, token)
	return nil
}

func newContext(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSession_RestoresPrincipal(t *testing.T) {
	e := echo.New()
	sessions := newStubSessions()
	token, _ := sessions.Start(context.Background(), &domain.Principal{UserID: "u1", Email: "a@b.com", Role: domain.RoleUser})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Session(sessions)(func(c echo.Context) error {
		called = true
		p := PrincipalFrom(c)
		if p == nil || p.UserID != "u1" {
			t.Fatalf("principal not restored: %+v", p)
		}
		if SessionIDFrom(c) != "sid-u1" {
			t.Fatalf("session id not set: %q", SessionIDFrom(c))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
}

func TestSession_UnknownTokenIsAnonymous(t *testing.T) {
	e := echo.New()
	sessions := newStubSessions()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(sessions)(func(c echo.Context) error {
		if PrincipalFrom(c) != nil {
			t.Fatal("expected anonymous")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAuthenticated_RedirectsAnonymous(t *testing.T) {
	e := echo.New()
	c, rec := newContext(e, "/battery/new?x=1")

	handler := RequireAuthenticated("/auth/login")(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/auth/login" {
		t.Fatalf("expected redirect to /auth/login, got %q", loc)
	}

	res := rec.Result()
	var captured string
	for _, cookie := range res.Cookies() {
		if cookie.Name == "return_to" {
			captured = cookie.Value
		}
	}
	if captured != "/battery/new?x=1" {
		t.Fatalf("return_to not captured: %q", captured)
	}
}

func TestRequireAuthenticated_PassesPrincipal(t *testing.T) {
	e := echo.New()
	c, rec := newContext(e, "/user")
	c.Set("principal", &domain.Principal{UserID: "u1", Role: domain.RoleUser})

	called := false
	handler := RequireAuthenticated("/auth/login")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAnonymous_RedirectsAuthenticated(t *testing.T) {
	e := echo.New()
	c, rec := newContext(e, "/auth/login")
	c.Set("principal", &domain.Principal{UserID: "u1", Role: domain.RoleUser})

	handler := RequireAnonymous("/")(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestConsumeReturnTo(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"/trucks", "/trucks"},
		{"/battery/new?x=1", "/battery/new?x=1"},
		{"//evil.example.com", ""},
		{"https://evil.example.com", ""},
		{"", ""},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		if tc.value != "" {
			req.AddCookie(&http.Cookie{Name: "return_to", Value: tc.value})
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if got := ConsumeReturnTo(c); got != tc.want {
			t.Errorf("ConsumeReturnTo(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
