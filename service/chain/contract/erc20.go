package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/service/chain"
)

type erc20 struct {
	h *chain.Handle
}

func (t *erc20) Address() domain.Address {
	return t.h.Address()
}

func (t *erc20) Name(ctx bCtx.Ctx) (string, error) {
	return callString(ctx, t.h, "name")
}

func (t *erc20) Symbol(ctx bCtx.Ctx) (string, error) {
	return callString(ctx, t.h, "symbol")
}

func (t *erc20) Decimals(ctx bCtx.Ctx) (int32, error) {
	res, err := t.h.Call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	return int32(res[0].(uint8)), nil
}

func (t *erc20) BalanceOf(ctx bCtx.Ctx, owner domain.Address) (*big.Int, error) {
	return callBig(ctx, t.h, "balanceOf", owner.ToCommon())
}

func (t *erc20) Approve(ctx bCtx.Ctx, spender domain.Address, amount *big.Int) (*types.Transaction, error) {
	return t.h.Transact(ctx, nil, "approve", spender.ToCommon(), amount)
}
