package usecase

import (
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/base/unit"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/service/chain"
	"github.com/x-xyz/auctiond/service/chain/contract"
)

type txFunc func(a contract.Auction) (*types.Transaction, error)

// transact sends one auction write, waits for inclusion and then refreshes.
// Callers must not run two writes at once.
func (s *session) transact(ctx bCtx.Ctx, action string, fn txFunc) (domain.TxHash, error) {
	addr, ok := s.Current()
	if !ok {
		return "", domain.ErrNoAuction
	}
	ctx = bCtx.WithLogFields(ctx, log.Fields{"auction": addr, "action": action})

	a, err := s.registry.Auction(ctx, addr, chain.ModeWrite)
	if err != nil {
		ctx.WithField("err", err).Warn("registry.Auction failed")
		return "", err
	}
	tx, err := fn(a)
	if err != nil {
		s.metrics.BumpSum("action.err", 1, "action", action)
		err = chain.Classify(err)
		ctx.WithField("err", err).Error("send tx failed")
		return "", err
	}
	hash := domain.TxHash(tx.Hash().Hex())
	if _, err := s.registry.WaitMined(ctx, tx); err != nil {
		s.metrics.BumpSum("action.err", 1, "action", action)
		ctx.WithFields(log.Fields{"err": err, "tx": hash}).Error("registry.WaitMined failed")
		return hash, err
	}
	s.metrics.BumpSum("action.ok", 1, "action", action)
	ctx.WithField("tx", hash).Info("action confirmed")

	if err := s.Refresh(ctx); err != nil {
		ctx.WithField("err", err).Warn("refresh after action failed")
	}
	return hash, nil
}

// Bid commits amount, a decimal string in the native currency
func (s *session) Bid(ctx bCtx.Ctx, amount string) (domain.TxHash, error) {
	value, err := unit.ToBaseUnits(amount, unit.EtherDecimals)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "amount": amount}).Warn("unit.ToBaseUnits failed")
		return "", err
	}
	if value.Sign() == 0 {
		return "", xerrors.Errorf("zero bid: %w", domain.ErrInvalidAmount)
	}
	return s.transact(ctx, "bid", func(a contract.Auction) (*types.Transaction, error) {
		return a.Bid(ctx, value)
	})
}

func (s *session) ClaimTokens(ctx bCtx.Ctx) (domain.TxHash, error) {
	return s.transact(ctx, "claimTokens", func(a contract.Auction) (*types.Transaction, error) {
		return a.ClaimTokens(ctx)
	})
}

func (s *session) Start(ctx bCtx.Ctx) (domain.TxHash, error) {
	return s.transact(ctx, "start", func(a contract.Auction) (*types.Transaction, error) {
		return a.Start(ctx)
	})
}

func (s *session) EndAuction(ctx bCtx.Ctx) (domain.TxHash, error) {
	return s.transact(ctx, "endAuction", func(a contract.Auction) (*types.Transaction, error) {
		return a.EndAuction(ctx)
	})
}

func (s *session) BurnUnsoldTokens(ctx bCtx.Ctx) (domain.TxHash, error) {
	return s.transact(ctx, "burnUnsoldTokens", func(a contract.Auction) (*types.Transaction, error) {
		return a.BurnUnsoldTokens(ctx)
	})
}

func (s *session) WithdrawFunds(ctx bCtx.Ctx) (domain.TxHash, error) {
	return s.transact(ctx, "withdrawFunds", func(a contract.Auction) (*types.Transaction, error) {
		return a.WithdrawFunds(ctx)
	})
}

// RequestRefund calls whichever refund entry point the auction declares
func (s *session) RequestRefund(ctx bCtx.Ctx) (domain.TxHash, error) {
	return s.transact(ctx, "refund", func(a contract.Auction) (*types.Transaction, error) {
		return a.Refund(ctx)
	})
}
