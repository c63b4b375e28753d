package auction

import (
	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
)

// Reader assembles snapshots from contract reads
type Reader interface {
	Read(ctx bCtx.Ctx, auction domain.Address) (*Snapshot, error)
	// ReadTicker re-reads only price and time remaining for s
	ReadTicker(ctx bCtx.Ctx, s *Snapshot) (Ticker, error)
}

// Usecase is the auction session: current auction, live snapshot and write triggers
type Usecase interface {
	Current() (domain.Address, bool)
	SetAuction(ctx bCtx.Ctx, addr domain.Address) error
	Restore(ctx bCtx.Ctx) error

	GetSnapshot() (*Snapshot, error)
	LastError() error
	Refresh(ctx bCtx.Ctx) error
	RefreshTicker(ctx bCtx.Ctx) error
	Capabilities(ctx bCtx.Ctx) (Capabilities, error)

	Bid(ctx bCtx.Ctx, amount string) (domain.TxHash, error)
	ClaimTokens(ctx bCtx.Ctx) (domain.TxHash, error)
	Start(ctx bCtx.Ctx) (domain.TxHash, error)
	EndAuction(ctx bCtx.Ctx) (domain.TxHash, error)
	BurnUnsoldTokens(ctx bCtx.Ctx) (domain.TxHash, error)
	WithdrawFunds(ctx bCtx.Ctx) (domain.TxHash, error)
	RequestRefund(ctx bCtx.Ctx) (domain.TxHash, error)
}
