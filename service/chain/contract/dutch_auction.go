package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/service/chain"
)

type dutchAuction struct {
	h        *chain.Handle
	started  chain.Capability
	duration chain.Capability
	refund   chain.Capability
}

func newDutchAuction(h *chain.Handle) *dutchAuction {
	return &dutchAuction{
		h:        h,
		started:  chain.Detect(h, "started"),
		duration: chain.Detect(h, "AUCTION_DURATION", "auctionDuration", "duration"),
		refund:   chain.Detect(h, "refund", "requestRefund"),
	}
}

func (a *dutchAuction) Address() domain.Address {
	return a.h.Address()
}

func (a *dutchAuction) StartPrice(ctx bCtx.Ctx) (*big.Int, error) {
	return callBig(ctx, a.h, "startPrice")
}

func (a *dutchAuction) ReservePrice(ctx bCtx.Ctx) (*big.Int, error) {
	return callBig(ctx, a.h, "reservePrice")
}

func (a *dutchAuction) TotalTokens(ctx bCtx.Ctx) (*big.Int, error) {
	return callBig(ctx, a.h, "totalTokens")
}

func (a *dutchAuction) AuctionEnded(ctx bCtx.Ctx) (bool, error) {
	return callBool(ctx, a.h, "auctionEnded")
}

func (a *dutchAuction) Started(ctx bCtx.Ctx) (bool, error) {
	method, ok := a.started.Method()
	if !ok {
		return false, domain.ErrCapabilityUnavailable
	}
	return callBool(ctx, a.h, method)
}

func (a *dutchAuction) Seller(ctx bCtx.Ctx) (domain.Address, error) {
	return callAddress(ctx, a.h, "seller")
}

func (a *dutchAuction) Token(ctx bCtx.Ctx) (domain.Address, error) {
	return callAddress(ctx, a.h, "token")
}

func (a *dutchAuction) StartTime(ctx bCtx.Ctx) (int64, error) {
	return callSeconds(ctx, a.h, "startTime")
}

func (a *dutchAuction) Duration(ctx bCtx.Ctx) (int64, error) {
	method, ok := a.duration.Method()
	if !ok {
		return 0, domain.ErrCapabilityUnavailable
	}
	return callSeconds(ctx, a.h, method)
}

func (a *dutchAuction) CurrentPrice(ctx bCtx.Ctx) (*big.Int, error) {
	return callBig(ctx, a.h, "getCurrentPrice")
}

func (a *dutchAuction) ClearingPrice(ctx bCtx.Ctx) (*big.Int, error) {
	return callBig(ctx, a.h, "clearingPrice")
}

func (a *dutchAuction) TimeRemaining(ctx bCtx.Ctx) (int64, error) {
	return callSeconds(ctx, a.h, "getTimeRemaining")
}

func (a *dutchAuction) TotalCommitted(ctx bCtx.Ctx) (*big.Int, error) {
	return callBig(ctx, a.h, "totalCommitted")
}

func (a *dutchAuction) BidOf(ctx bCtx.Ctx, bidder domain.Address) (*big.Int, error) {
	return callBig(ctx, a.h, "bids", bidder.ToCommon())
}

func (a *dutchAuction) RefundCapability() chain.Capability {
	return a.refund
}

func (a *dutchAuction) Bid(ctx bCtx.Ctx, value *big.Int) (*types.Transaction, error) {
	return a.h.Transact(ctx, value, "bid")
}

func (a *dutchAuction) ClaimTokens(ctx bCtx.Ctx) (*types.Transaction, error) {
	return a.h.Transact(ctx, nil, "claimTokens")
}

func (a *dutchAuction) Start(ctx bCtx.Ctx) (*types.Transaction, error) {
	return a.h.Transact(ctx, nil, "start")
}

func (a *dutchAuction) EndAuction(ctx bCtx.Ctx) (*types.Transaction, error) {
	return a.h.Transact(ctx, nil, "endAuction")
}

func (a *dutchAuction) BurnUnsoldTokens(ctx bCtx.Ctx) (*types.Transaction, error) {
	return a.h.Transact(ctx, nil, "burnUnsoldTokens")
}

func (a *dutchAuction) WithdrawFunds(ctx bCtx.Ctx) (*types.Transaction, error) {
	return a.h.Transact(ctx, nil, "withdrawFunds")
}

func (a *dutchAuction) Refund(ctx bCtx.Ctx) (*types.Transaction, error) {
	method, ok := a.refund.Method()
	if !ok {
		return nil, domain.ErrCapabilityUnavailable
	}
	return a.h.Transact(ctx, nil, method)
}
