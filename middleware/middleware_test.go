package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
)

type middlewareSuite struct {
	suite.Suite
	e *echo.Echo
	m *GoMiddleware
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(middlewareSuite))
}

func (s *middlewareSuite) SetupTest() {
	s.e = echo.New()
	s.m = InitMiddleware()
	s.e.Use(s.m.ResponseLogger(), s.m.AddContext())
}

func (s *middlewareSuite) serve(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *middlewareSuite) TestContextAttached() {
	s.e.GET("/ping", func(c echo.Context) error {
		_, ok := c.Get("ctx").(ctx.Ctx)
		s.True(ok)
		return c.String(http.StatusOK, "pong")
	})

	rec := s.serve(http.MethodGet, "/ping")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("pong", rec.Body.String())
}

func (s *middlewareSuite) TestHandlerErrorIsRendered() {
	s.e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway, "upstream")
	})

	rec := s.serve(http.MethodGet, "/boom")
	s.Equal(http.StatusBadGateway, rec.Code)
}

func (s *middlewareSuite) TestIsValidUUID() {
	s.e.GET("/runs/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Param("id"))
	}, IsValidUUID("id"))

	rec := s.serve(http.MethodGet, "/runs/0d7e2c57-4f8a-4c2b-9a53-2b8f4a1f7f10")
	s.Equal(http.StatusOK, rec.Code)

	rec = s.serve(http.MethodGet, "/runs/missing")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), domain.ErrBadParamInput.Error())
}
