package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/delivery"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/base/metrics"
	"github.com/x-xyz/auctiond/domain"
)

type GoMiddleware struct {
	met metrics.Service
}

func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{met: metrics.New("http")}
}

// AddContext stores a ctx.Ctx bound to the request under "ctx", tagged
// with the request id
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cont := ctx.WithLogFields(ctx.Ctx{
				Context: c.Request().Context(),
				Logger:  log.Log(),
			}, log.Fields{"requestID": c.Response().Header().Get(echo.HeaderXRequestID)})
			c.Set("ctx", cont)
			return next(c)
		}
	}
}

// ResponseLogger logs one line per request, at warn level for server errors.
// It must be registered before AddContext.
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()
			defer m.met.BumpTime("request.time", "method", req.Method, "path", c.Path()).End()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			res := c.Response()
			fields := log.Fields{
				"ms":         time.Since(start).Seconds() * 1000,
				"httpStatus": res.Status,
				"httpMethod": req.Method,
				"uri":        req.URL.Path,
				"route":      c.Path(),
				"remoteIP":   c.RealIP(),
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
			}
			if err != nil {
				fields["nextErr"] = err
			}

			logger := log.Log()
			if cont, ok := c.Get("ctx").(ctx.Ctx); ok {
				logger = cont.Logger
			}
			logger = logger.WithFields(fields)
			if res.Status >= http.StatusInternalServerError {
				m.met.BumpSum("request.err", 1, "path", c.Path())
				logger.Warn("response")
			} else {
				logger.Info("response")
			}
			return nil
		}
	}
}

// IsValidUUID rejects requests whose path param is not a uuid
func IsValidUUID(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := uuid.Parse(c.Param(param)); err != nil {
				return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
			}
			return next(c)
		}
	}
}
