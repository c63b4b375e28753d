package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	baseabi "github.com/x-xyz/auctiond/base/abi"
	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/service/chain"
)

type tokenFactory struct {
	h *chain.Handle
}

func (f *tokenFactory) Address() domain.Address {
	return f.h.Address()
}

func (f *tokenFactory) TokenCount(ctx bCtx.Ctx) (int64, error) {
	v, err := callBig(ctx, f.h, "tokenCount")
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() {
		return 0, domain.ErrBadParamInput
	}
	return v.Int64(), nil
}

func (f *tokenFactory) Tokens(ctx bCtx.Ctx, index int64) (domain.Address, error) {
	return callAddress(ctx, f.h, "tokens", big.NewInt(index))
}

func (f *tokenFactory) DeployToken(ctx bCtx.Ctx, name, ticker string, quantity *big.Int) (*types.Transaction, error) {
	return f.h.Transact(ctx, nil, "deployToken", name, ticker, quantity)
}

func (f *tokenFactory) DeployedToken(receipt *types.Receipt) (domain.Address, error) {
	l, ok := baseabi.FindLog(receipt, f.h.Address().ToCommon(), baseabi.TokenDeployedSig)
	if !ok {
		return "", domain.ErrAddressNotFound
	}
	ev, err := baseabi.ToTokenDeployedLog(l)
	if err != nil {
		return "", domain.ErrAddressNotFound
	}
	return domain.ToAddress(ev.TokenAddress), nil
}

type auctionFactory struct {
	h *chain.Handle
}

func (f *auctionFactory) Address() domain.Address {
	return f.h.Address()
}

func (f *auctionFactory) DeployAuction(ctx bCtx.Ctx, token domain.Address, quantity, startPrice, reservePrice *big.Int) (*types.Transaction, error) {
	return f.h.Transact(ctx, nil, "deployAuction", token.ToCommon(), quantity, startPrice, reservePrice)
}

func (f *auctionFactory) DeployedAuction(receipt *types.Receipt) (domain.Address, error) {
	l, ok := baseabi.FindLog(receipt, f.h.Address().ToCommon(), baseabi.AuctionDeployedSig)
	if !ok {
		return "", domain.ErrAddressNotFound
	}
	ev, err := baseabi.ToAuctionDeployedLog(l)
	if err != nil {
		return "", domain.ErrAddressNotFound
	}
	return domain.ToAddress(ev.AuctionAddress), nil
}
