package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/delivery"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/domain/auction"
)

// Refresher wakes the refresh loop after the current auction changes
type Refresher interface {
	Trigger()
}

type handler struct {
	session   auction.Usecase
	refresher Refresher
}

type snapshotResp struct {
	Auction   domain.Address    `json:"auction"`
	Snapshot  *auction.Snapshot `json:"snapshot"`
	LastError string            `json:"lastError,omitempty"`
}

type txResp struct {
	TxHash domain.TxHash `json:"txHash"`
}

func New(e *echo.Echo, session auction.Usecase, refresher Refresher) {
	h := &handler{session: session, refresher: refresher}

	g := e.Group("/auction")
	g.GET("", h.getSnapshot)
	g.POST("/refresh", h.refresh)
	g.GET("/capabilities", h.getCapabilities)
	g.PUT("/current", h.setCurrent)

	g.POST("/bid", h.bid)
	g.POST("/claim", h.action(auction.Usecase.ClaimTokens))
	g.POST("/start", h.action(auction.Usecase.Start))
	g.POST("/end", h.action(auction.Usecase.EndAuction))
	g.POST("/burn", h.action(auction.Usecase.BurnUnsoldTokens))
	g.POST("/withdraw", h.action(auction.Usecase.WithdrawFunds))
	g.POST("/refund", h.action(auction.Usecase.RequestRefund))
}

func (h *handler) snapshot(c echo.Context, status int) error {
	s, err := h.session.GetSnapshot()
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	res := snapshotResp{Auction: s.Auction, Snapshot: s}
	if lastErr := h.session.LastError(); lastErr != nil {
		res.LastError = lastErr.Error()
	}
	return delivery.MakeJsonResp(c, status, res)
}

func (h *handler) getSnapshot(c echo.Context) error {
	return h.snapshot(c, http.StatusOK)
}

func (h *handler) refresh(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	if err := h.session.Refresh(ctx); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadGateway, err)
	}
	return h.snapshot(c, http.StatusOK)
}

func (h *handler) getCapabilities(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	caps, err := h.session.Capabilities(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, caps)
}

func (h *handler) setCurrent(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	type params struct {
		Address string `json:"address" validate:"required,address"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	if err := h.session.SetAuction(ctx, domain.Address(p.Address)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	h.refresher.Trigger()
	return delivery.MakeJsonResp(c, http.StatusAccepted, map[string]domain.Address{
		"auction": domain.Address(p.Address).ToLower(),
	})
}

func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	type params struct {
		Amount string `json:"amount" validate:"required,amount"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}

	tx, err := h.session.Bid(ctx, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, txResp{tx})
}

func (h *handler) action(fn func(auction.Usecase, bCtx.Ctx) (domain.TxHash, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Get("ctx").(bCtx.Ctx)
		tx, err := fn(h.session, ctx)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
		return delivery.MakeJsonResp(c, http.StatusOK, txResp{tx})
	}
}
