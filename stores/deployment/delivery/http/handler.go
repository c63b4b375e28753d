package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/delivery"
	"github.com/x-xyz/auctiond/base/goroutine"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/domain/deployment"
	"github.com/x-xyz/auctiond/middleware"
)

type handler struct {
	deployment deployment.Usecase
}

type stepFunc func(bCtx.Ctx, string) (*deployment.Run, error)

func New(e *echo.Echo, us deployment.Usecase) {
	h := &handler{us}

	g := e.Group("/deployments")
	g.POST("", h.create)
	g.GET("", h.getDeployments)
	g.GET("/runs", h.getRuns)
	validId := middleware.IsValidUUID("id")
	g.GET("/:id", h.getRun, validId)
	g.POST("/:id/resume", h.step(us.Resume), validId)
	g.POST("/:id/approve", h.step(us.Approve), validId)
	g.DELETE("/:id", h.abandon, validId)
}

// detach keeps the request's log fields on a ctx that outlives the request
func detach(ctx bCtx.Ctx) bCtx.Ctx {
	return bCtx.Ctx{Context: context.Background(), Logger: ctx.Logger}
}

// launch runs fn for id, in the background unless the caller asked to wait
func (h *handler) launch(c echo.Context, id string, fn stepFunc) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	if c.QueryParam("wait") == "true" {
		run, err := fn(ctx, id)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
		return delivery.MakeJsonResp(c, http.StatusOK, run)
	}

	bg := detach(ctx)
	goroutine.RecoverableGo(bg, func() {
		if _, err := fn(bg, id); err != nil {
			bg.WithField("err", err).Warn("deployment step failed")
		}
	}, goroutine.WithName("deployment"))

	run, err := h.deployment.Get(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusAccepted, run)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	p := deployment.Params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	run, err := h.deployment.Create(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return h.launch(c, run.Id, h.deployment.Resume)
}

func (h *handler) step(fn stepFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Get("ctx").(bCtx.Ctx)
		run, err := h.deployment.Get(ctx, c.Param("id"))
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
		if run.Busy {
			return delivery.MakeJsonResp(c, http.StatusConflict, domain.ErrWorkflowBusy)
		}
		return h.launch(c, run.Id, fn)
	}
}

func (h *handler) getRun(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	run, err := h.deployment.Get(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, run)
}

func (h *handler) getRuns(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	runs, err := h.deployment.List(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, runs)
}

func (h *handler) abandon(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	if err := h.deployment.Abandon(ctx, c.Param("id")); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"id": c.Param("id")})
}

func (h *handler) getDeployments(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	type params struct {
		Seller *domain.Address `query:"seller"`
		Offset int32           `query:"offset"`
		Limit  int32           `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []deployment.FindAllOptionsFunc{}
	if p.Limit > 0 {
		opts = append(opts, deployment.WithPagination(p.Offset, p.Limit))
	}
	if p.Seller != nil {
		opts = append(opts, deployment.WithSeller(*p.Seller))
	}

	res, err := h.deployment.Deployments(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
