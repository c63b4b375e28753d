package chain

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	baseabi "github.com/x-xyz/auctiond/base/abi"
	"github.com/x-xyz/auctiond/base/backoff"
	bCtx "github.com/x-xyz/auctiond/base/ctx"
	baseeth "github.com/x-xyz/auctiond/base/ethereum"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/domain"
)

type Kind string

const (
	KindToken          Kind = "token"
	KindAuction        Kind = "auction"
	KindTokenFactory   Kind = "tokenFactory"
	KindAuctionFactory Kind = "auctionFactory"
)

type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

const (
	defaultPollInterval = 2 * time.Second
)

type GatewayCfg struct {
	Backend baseeth.Client
	ChainId domain.ChainId
	Wallet  *Wallet
	// ABIs overrides the embedded ABI per contract kind
	ABIs map[Kind]abi.ABI
	// PollInterval is the receipt polling period of WaitMined
	PollInterval time.Duration
	// PollLimit bounds receipt polls, 0 polls until ctx is done
	PollLimit int
	// TxTimeout bounds a single WaitMined, 0 means no bound
	TxTimeout time.Duration
}

// Gateway binds typed contract handles to the configured chain and wallet
type Gateway struct {
	backend      baseeth.Client
	chainId      domain.ChainId
	wallet       *Wallet
	abis         map[Kind]abi.ABI
	pollInterval time.Duration
	pollLimit    int
	txTimeout    time.Duration
}

func NewGateway(cfg *GatewayCfg) *Gateway {
	abis := map[Kind]abi.ABI{
		KindToken:          baseabi.ERC20ABI,
		KindAuction:        baseabi.DutchAuctionABI,
		KindTokenFactory:   baseabi.TokenFactoryABI,
		KindAuctionFactory: baseabi.AuctionFactoryABI,
	}
	for k, a := range cfg.ABIs {
		abis[k] = a
	}
	wallet := cfg.Wallet
	if wallet == nil {
		wallet = NoWallet()
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Gateway{
		backend:      cfg.Backend,
		chainId:      cfg.ChainId,
		wallet:       wallet,
		abis:         abis,
		pollInterval: pollInterval,
		pollLimit:    cfg.PollLimit,
		txTimeout:    cfg.TxTimeout,
	}
}

func (g *Gateway) Wallet() *Wallet {
	return g.wallet
}

func (g *Gateway) ChainId() domain.ChainId {
	return g.chainId
}

// ChainOK reports whether the backend is on the expected chain
func (g *Gateway) ChainOK(ctx bCtx.Ctx) bool {
	id, err := g.backend.ChainID(ctx)
	if err != nil {
		ctx.WithField("err", err).Warn("backend.ChainID failed")
		return false
	}
	return id.Int64() == int64(g.chainId)
}

// Bind builds a handle for one call or workflow step. Write handles require a
// signing wallet on the expected chain.
func (g *Gateway) Bind(ctx bCtx.Ctx, kind Kind, address domain.Address, mode Mode) (*Handle, error) {
	a, ok := g.abis[kind]
	if !ok {
		ctx.WithField("kind", kind).Error("unknown contract kind")
		return nil, domain.ErrBadParamInput
	}
	if address.IsZero() {
		return nil, domain.ErrInvalidAddress
	}

	h := &Handle{
		kind:    kind,
		address: address.ToCommon(),
		abi:     a,
		backend: g.backend,
	}
	if from, ok := g.wallet.Address(); ok {
		h.from = from.ToCommon()
	}
	if mode == ModeRead {
		return h, nil
	}

	opts, err := g.wallet.signer(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "kind": kind}).Warn("no signer for write binding")
		return nil, err
	}
	id, err := g.backend.ChainID(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("backend.ChainID failed")
		return nil, err
	}
	if id.Int64() != int64(g.chainId) {
		ctx.WithFields(log.Fields{"expected": g.chainId, "actual": id}).Warn("wrong chain")
		return nil, domain.ErrWrongChain
	}
	h.opts = opts
	h.contract = bind.NewBoundContract(h.address, a, g.backend, g.backend, g.backend)
	return h, nil
}

// WaitMined blocks until tx is included. A failed receipt yields ErrCallReverted.
func (g *Gateway) WaitMined(ctx bCtx.Ctx, tx *types.Transaction) (*types.Receipt, error) {
	return g.WaitReceipt(ctx, tx.Hash())
}

// WaitReceipt is WaitMined for a tx known only by its hash
func (g *Gateway) WaitReceipt(ctx bCtx.Ctx, hash common.Hash) (*types.Receipt, error) {
	if g.txTimeout > 0 {
		var cancel func()
		ctx, cancel = bCtx.WithTimeout(ctx, g.txTimeout)
		defer cancel()
	}
	var receipt *types.Receipt
	b := backoff.NewConstant(g.pollInterval)
	err := b.Poll(ctx, g.pollLimit, func() (bool, error) {
		r, err := g.backend.TransactionReceipt(ctx, hash)
		if errors.Is(err, ethereum.NotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		receipt = r
		return true, nil
	})
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "tx": hash.Hex()}).Error("wait receipt failed")
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		ctx.WithFields(log.Fields{"tx": hash.Hex(), "block": receipt.BlockNumber}).Warn("tx reverted")
		return receipt, xerrors.Errorf("tx %s: %w", hash.Hex(), domain.ErrCallReverted)
	}
	return receipt, nil
}

// Handle is one (address, ABI, signer-or-provider) binding
type Handle struct {
	kind     Kind
	address  common.Address
	from     common.Address
	abi      abi.ABI
	backend  baseeth.Client
	opts     *bind.TransactOpts
	contract *bind.BoundContract
}

func (h *Handle) Address() domain.Address {
	return domain.ToAddress(h.address)
}

func (h *Handle) Kind() Kind {
	return h.kind
}

func (h *Handle) ABI() abi.ABI {
	return h.abi
}

// Has reports whether the bound ABI declares method
func (h *Handle) Has(method string) bool {
	return baseabi.HasMethod(h.abi, method)
}

// Call runs a read call. Chain errors are returned unmodified.
func (h *Handle) Call(ctx bCtx.Ctx, method string, args ...interface{}) ([]interface{}, error) {
	if !h.Has(method) {
		return nil, domain.ErrCapabilityUnavailable
	}
	data, err := h.abi.Pack(method, args...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": args,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		From: h.from,
		To:   &h.address,
		Data: data,
	}
	res, err := h.backend.CallContract(ctx, msg, nil)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "method": method, "address": h.address.Hex()}).Debug("backend.CallContract failed")
		return nil, err
	}
	unpacked, err := h.abi.Unpack(method, res)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "method": method}).Warn("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

// Transact signs and sends a state-changing call. value may be nil.
func (h *Handle) Transact(ctx bCtx.Ctx, value *big.Int, method string, args ...interface{}) (*types.Transaction, error) {
	if h.contract == nil {
		return nil, domain.ErrSignerUnavailable
	}
	if !h.Has(method) {
		return nil, domain.ErrCapabilityUnavailable
	}
	opts := *h.opts
	opts.Context = ctx
	opts.Value = value
	tx, err := h.contract.Transact(&opts, method, args...)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "method": method, "address": h.address.Hex()}).Warn("contract.Transact failed")
		return nil, err
	}
	ctx.WithFields(log.Fields{"method": method, "tx": tx.Hash().Hex()}).Info("tx sent")
	return tx, nil
}
