package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"handmadepixel/internal/platform/metrics"
	"handmadepixel/internal/signup/handler"
	"handmadepixel/internal/signup/service"
	dErrors "handmadepixel/pkg/domain-errors"
)

type fakeService struct {
	registerErr error
	confirmErr  error
	registered  []service.RegisterRequest
	confirmed   []string
}

func (f *fakeService) Register(_ context.Context, req service.RegisterRequest) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append(f.registered, req)
	return nil
}

func (f *fakeService) Confirm(_ context.Context, token string) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmed = append(f.confirmed, token)
	return nil
}

type HandlerSuite struct {
	suite.Suite
	service *fakeService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = &fakeService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.New(s.service, logger, metrics.New(prometheus.NewRegistry()))
	s.router = handler.NewRouter(h)
}

func validForm() url.Values {
	return url.Values{
		"form_type": {"signup"},
		"email":     {"alejandr.fernand@ufl.edu"},
		"username":  {"ajeej"},
		"password":  {"password"},
	}
}

func (s *HandlerSuite) postSignup(form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login-signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 test")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestSignupSucceeds() {
	rec := s.postSignup(validForm())

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "text/html")

	s.Require().Len(s.service.registered, 1)
	got := s.service.registered[0]
	s.Equal("alejandr.fernand@ufl.edu", got.Email)
	s.Equal("ajeej", got.Username)
	s.Equal("password", got.Password)
	s.Equal("Mozilla/5.0 test", got.UserAgent)
}

func (s *HandlerSuite) TestSignupMissingFieldIs400() {
	for _, field := range []string{"form_type", "email", "username", "password"} {
		s.Run("missing "+field, func() {
			form := validForm()
			form.Del(field)

			rec := s.postSignup(form)

			s.Equal(http.StatusBadRequest, rec.Code)
			s.Empty(s.service.registered, "service must not be called")
		})
	}
}

func (s *HandlerSuite) TestSignupValidationErrorIs400() {
	s.service.registerErr = dErrors.New(dErrors.CodeBadRequest, "parse username")

	rec := s.postSignup(validForm())
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestSignupInternalErrorIs500() {
	s.service.registerErr = dErrors.New(dErrors.CodeInternal, "failed to register user")

	rec := s.postSignup(validForm())
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *HandlerSuite) TestConfirmSucceeds() {
	rec := s.get("/login-signup/confirm?subscription_token=sometoken123")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "text/html")
	s.Equal([]string{"sometoken123"}, s.service.confirmed)
}

func (s *HandlerSuite) TestConfirmMissingTokenIs401() {
	rec := s.get("/login-signup/confirm")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Empty(s.service.confirmed, "service must not be called")
}

func (s *HandlerSuite) TestConfirmUnknownTokenIs401() {
	s.service.confirmErr = dErrors.New(dErrors.CodeUnauthorized, "unknown confirmation token")

	rec := s.get("/login-signup/confirm?subscription_token=zzz")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestConfirmInternalErrorIs500() {
	s.service.confirmErr = dErrors.New(dErrors.CodeInternal, "failed to resolve confirmation token")

	rec := s.get("/login-signup/confirm?subscription_token=zzz")
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *HandlerSuite) TestHealthCheck() {
	rec := s.get("/health_check")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestStaticPages() {
	for _, target := range []string{"/", "/login-signup", "/learn-more", "/design"} {
		s.Run(target, func() {
			rec := s.get(target)
			s.Equal(http.StatusOK, rec.Code)
			s.Contains(rec.Header().Get("Content-Type"), "text/html")
			s.NotEmpty(rec.Body.Bytes())
		})
	}
}
