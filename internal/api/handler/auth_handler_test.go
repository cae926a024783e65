package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/swiftpark/parking-portal/internal/api/middleware"
	"github.com/swiftpark/parking-portal/internal/core/domain"
	"github.com/swiftpark/parking-portal/internal/web"
)

type stubAuthService struct {
	loginErr    error
	registerErr error
	principal   *domain.Principal
	user        *domain.User
}

func (s *stubAuthService) Register(_ context.Context, email, _, _ string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	if s.user != nil {
		return s.user, nil
	}
	return &domain.User{ID: "u1", Email: domain.NormalizeEmail(email), Role: domain.RoleUser}, nil
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*domain.Principal, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.principal, nil
}

type stubSessions struct {
	started     []*domain.Principal
	invalidated []string
}

func (s *stubSessions) Start(_ context.Context, p *domain.Principal) (string, error) {
	s.started = append(s.started, p)
	return "session-token", nil
}

func (s *stubSessions) Restore(_ context.Context, _ string) (*domain.Principal, string, error) {
	return nil, "", nil
}

func (s *stubSessions) Invalidate(_ context.Context, token string) error {
	s.invalidated = append(s.invalidated, token)
	return nil
}

type stubFlashStore struct{}

func (stubFlashStore) Push(_ context.Context, _ string, _ domain.Flash) error { return nil }
func (stubFlashStore) Consume(_ context.Context, _ string) ([]domain.Flash, error) {
	return nil, nil
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("build renderer: %v", err)
	}
	e.Renderer = renderer
	return e
}

func newAuthHandler(svc *stubAuthService, sessions *stubSessions) *AuthHandler {
	render := NewPageRenderer(stubFlashStore{}, zerolog.Nop())
	return NewAuthHandler(svc, sessions, render, false, zerolog.Nop())
}

func postForm(e *echo.Echo, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho(t)
	svc := &stubAuthService{principal: &domain.Principal{UserID: "u1", Email: "a@b.com", Role: domain.RoleUser}}
	sessions := &stubSessions{}
	h := newAuthHandler(svc, sessions)

	c, rec := postForm(e, "/auth/login", url.Values{
		"email":    {"a@b.com"},
		"password": {"pass1234"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if len(sessions.started) != 1 {
		t.Fatalf("expected one session started, got %d", len(sessions.started))
	}

	var sessionCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("session cookie not set")
	}
	if sessionCookie.Value != "session-token" {
		t.Fatalf("unexpected cookie value %q", sessionCookie.Value)
	}
	if !sessionCookie.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
}

func TestAuthHandler_Login_ReturnsToCapturedPath(t *testing.T) {
	e := newTestEcho(t)
	svc := &stubAuthService{principal: &domain.Principal{UserID: "u1", Email: "a@b.com", Role: domain.RoleAdmin}}
	h := newAuthHandler(svc, &stubSessions{})

	form := url.Values{"email": {"a@b.com"}, "password": {"pass1234"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: "return_to", Value: "/battery"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/battery" {
		t.Fatalf("expected redirect to /battery, got %q", loc)
	}
}

func TestAuthHandler_Login_GenericFailure(t *testing.T) {
	e := newTestEcho(t)
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	sessions := &stubSessions{}
	h := newAuthHandler(svc, sessions)

	c, rec := postForm(e, "/auth/login", url.Values{
		"email":    {"unknown@x.com"},
		"password": {"anything"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Fatal("generic failure message missing from page")
	}
	if len(sessions.started) != 0 {
		t.Fatal("session started on failed login")
	}
}

func TestAuthHandler_Register_ValidationErrorsAllShown(t *testing.T) {
	e := newTestEcho(t)
	svc := &stubAuthService{registerErr: &domain.ValidationError{
		Causes: []string{"email must be a valid email address", "passwords do not match"},
	}}
	h := newAuthHandler(svc, &stubSessions{})

	c, rec := postForm(e, "/auth/register", url.Values{
		"email":     {"bad"},
		"password":  {"pass1234"},
		"password2": {"other"},
	})

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "email must be a valid email address") ||
		!strings.Contains(body, "passwords do not match") {
		t.Fatal("expected every validation cause on the page")
	}
	// The submitted email is redisplayed.
	if !strings.Contains(body, `value="bad"`) {
		t.Fatal("submitted email not redisplayed")
	}
}

func TestAuthHandler_Register_DuplicateStaysGeneric(t *testing.T) {
	e := newTestEcho(t)
	svc := &stubAuthService{registerErr: domain.ErrUserExists}
	h := newAuthHandler(svc, &stubSessions{})

	c, rec := postForm(e, "/auth/register", url.Values{
		"email":     {"taken@example.com"},
		"password":  {"pass1234"},
		"password2": {"pass1234"},
	})

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "already") || strings.Contains(body, "exists") {
		t.Fatal("duplicate response must not confirm the address is taken")
	}
	if !strings.Contains(body, "could not complete registration") {
		t.Fatal("generic retry message missing")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho(t)
	sessions := &stubSessions{}
	h := newAuthHandler(&stubAuthService{}, sessions)

	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "session-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if len(sessions.invalidated) != 1 || sessions.invalidated[0] != "session-token" {
		t.Fatalf("session not invalidated: %v", sessions.invalidated)
	}

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie not cleared")
	}
}
