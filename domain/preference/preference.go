package preference

import (
	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
)

// Repo persists the operator's selected auction across restarts
type Repo interface {
	// GetCurrentAuction returns domain.ErrNotFound when nothing is stored
	GetCurrentAuction(ctx bCtx.Ctx) (domain.Address, error)
	SetCurrentAuction(ctx bCtx.Ctx, addr domain.Address) error
}
