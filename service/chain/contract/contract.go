package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/service/chain"
)

// Token is the ERC20 sale token
type Token interface {
	Address() domain.Address
	Name(ctx bCtx.Ctx) (string, error)
	Symbol(ctx bCtx.Ctx) (string, error)
	Decimals(ctx bCtx.Ctx) (int32, error)
	BalanceOf(ctx bCtx.Ctx, owner domain.Address) (*big.Int, error)
	Approve(ctx bCtx.Ctx, spender domain.Address, amount *big.Int) (*types.Transaction, error)
}

// Auction is the dutch auction contract. Optional getters return
// domain.ErrCapabilityUnavailable when the bound ABI does not declare them.
type Auction interface {
	Address() domain.Address

	StartPrice(ctx bCtx.Ctx) (*big.Int, error)
	ReservePrice(ctx bCtx.Ctx) (*big.Int, error)
	TotalTokens(ctx bCtx.Ctx) (*big.Int, error)
	AuctionEnded(ctx bCtx.Ctx) (bool, error)
	Started(ctx bCtx.Ctx) (bool, error)
	Seller(ctx bCtx.Ctx) (domain.Address, error)
	Token(ctx bCtx.Ctx) (domain.Address, error)
	StartTime(ctx bCtx.Ctx) (int64, error)
	Duration(ctx bCtx.Ctx) (int64, error)
	CurrentPrice(ctx bCtx.Ctx) (*big.Int, error)
	ClearingPrice(ctx bCtx.Ctx) (*big.Int, error)
	TimeRemaining(ctx bCtx.Ctx) (int64, error)
	TotalCommitted(ctx bCtx.Ctx) (*big.Int, error)
	BidOf(ctx bCtx.Ctx, bidder domain.Address) (*big.Int, error)

	RefundCapability() chain.Capability
	Bid(ctx bCtx.Ctx, value *big.Int) (*types.Transaction, error)
	ClaimTokens(ctx bCtx.Ctx) (*types.Transaction, error)
	Start(ctx bCtx.Ctx) (*types.Transaction, error)
	EndAuction(ctx bCtx.Ctx) (*types.Transaction, error)
	BurnUnsoldTokens(ctx bCtx.Ctx) (*types.Transaction, error)
	WithdrawFunds(ctx bCtx.Ctx) (*types.Transaction, error)
	Refund(ctx bCtx.Ctx) (*types.Transaction, error)
}

type TokenFactory interface {
	Address() domain.Address
	TokenCount(ctx bCtx.Ctx) (int64, error)
	Tokens(ctx bCtx.Ctx, index int64) (domain.Address, error)
	DeployToken(ctx bCtx.Ctx, name, ticker string, quantity *big.Int) (*types.Transaction, error)
	// DeployedToken recovers the new token from the deployment receipt
	DeployedToken(receipt *types.Receipt) (domain.Address, error)
}

type AuctionFactory interface {
	Address() domain.Address
	DeployAuction(ctx bCtx.Ctx, token domain.Address, quantity, startPrice, reservePrice *big.Int) (*types.Transaction, error)
	// DeployedAuction recovers the new auction from the deployment receipt
	DeployedAuction(receipt *types.Receipt) (domain.Address, error)
}

// Registry binds typed contracts. Bindings are meant to be rebuilt per call.
type Registry interface {
	Token(ctx bCtx.Ctx, addr domain.Address, mode chain.Mode) (Token, error)
	Auction(ctx bCtx.Ctx, addr domain.Address, mode chain.Mode) (Auction, error)
	TokenFactory(ctx bCtx.Ctx, addr domain.Address, mode chain.Mode) (TokenFactory, error)
	AuctionFactory(ctx bCtx.Ctx, addr domain.Address, mode chain.Mode) (AuctionFactory, error)
	WaitMined(ctx bCtx.Ctx, tx *types.Transaction) (*types.Receipt, error)
	// WaitReceipt waits on a tx sent earlier, possibly by another process
	WaitReceipt(ctx bCtx.Ctx, hash domain.TxHash) (*types.Receipt, error)
	Caller() (domain.Address, bool)
	ChainOK(ctx bCtx.Ctx) bool
}

type registry struct {
	gateway *chain.Gateway
}

func NewRegistry(gateway *chain.Gateway) Registry {
	return &registry{gateway: gateway}
}

func (r *registry) Token(ctx bCtx.Ctx, addr domain.Address, mode chain.Mode) (Token, error) {
	h, err := r.gateway.Bind(ctx, chain.KindToken, addr, mode)
	if err != nil {
		return nil, err
	}
	return &erc20{h}, nil
}

func (r *registry) Auction(ctx bCtx.Ctx, addr domain.Address, mode chain.Mode) (Auction, error) {
	h, err := r.gateway.Bind(ctx, chain.KindAuction, addr, mode)
	if err != nil {
		return nil, err
	}
	return newDutchAuction(h), nil
}

func (r *registry) TokenFactory(ctx bCtx.Ctx, addr domain.Address, mode chain.Mode) (TokenFactory, error) {
	h, err := r.gateway.Bind(ctx, chain.KindTokenFactory, addr, mode)
	if err != nil {
		return nil, err
	}
	return &tokenFactory{h}, nil
}

func (r *registry) AuctionFactory(ctx bCtx.Ctx, addr domain.Address, mode chain.Mode) (AuctionFactory, error) {
	h, err := r.gateway.Bind(ctx, chain.KindAuctionFactory, addr, mode)
	if err != nil {
		return nil, err
	}
	return &auctionFactory{h}, nil
}

func (r *registry) WaitMined(ctx bCtx.Ctx, tx *types.Transaction) (*types.Receipt, error) {
	return r.gateway.WaitMined(ctx, tx)
}

func (r *registry) WaitReceipt(ctx bCtx.Ctx, hash domain.TxHash) (*types.Receipt, error) {
	return r.gateway.WaitReceipt(ctx, common.HexToHash(string(hash)))
}

func (r *registry) Caller() (domain.Address, bool) {
	return r.gateway.Wallet().Address()
}

func (r *registry) ChainOK(ctx bCtx.Ctx) bool {
	return r.gateway.ChainOK(ctx)
}

func callBig(ctx bCtx.Ctx, h *chain.Handle, method string, args ...interface{}) (*big.Int, error) {
	res, err := h.Call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	return res[0].(*big.Int), nil
}

func callBool(ctx bCtx.Ctx, h *chain.Handle, method string) (bool, error) {
	res, err := h.Call(ctx, method)
	if err != nil {
		return false, err
	}
	return res[0].(bool), nil
}

func callString(ctx bCtx.Ctx, h *chain.Handle, method string) (string, error) {
	res, err := h.Call(ctx, method)
	if err != nil {
		return "", err
	}
	return res[0].(string), nil
}

func callAddress(ctx bCtx.Ctx, h *chain.Handle, method string, args ...interface{}) (domain.Address, error) {
	res, err := h.Call(ctx, method, args...)
	if err != nil {
		return "", err
	}
	return domain.ToAddress(res[0].(common.Address)), nil
}

// callSeconds reads a uint256 holding seconds
func callSeconds(ctx bCtx.Ctx, h *chain.Handle, method string) (int64, error) {
	v, err := callBig(ctx, h, method)
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() {
		return 0, domain.ErrBadParamInput
	}
	return v.Int64(), nil
}
