package usecase

import (
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/base/ptr"
	"github.com/x-xyz/auctiond/base/unit"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/domain/deployment"
	"github.com/x-xyz/auctiond/service/chain"
	"github.com/x-xyz/auctiond/service/chain/contract"
)

// CompleteFunc is called once the auction is approved
type CompleteFunc func(ctx bCtx.Ctx, auction domain.Address) error

type WorkflowCfg struct {
	Id             string
	Params         deployment.Params
	Registry       contract.Registry
	TokenFactory   domain.Address
	AuctionFactory domain.Address
	Sink           deployment.StatusSink
	OnComplete     CompleteFunc
}

// Workflow creates one token, auction and allowance. Steps are strictly
// sequential and each write waits for inclusion before the next one is sent.
// Steps must not run concurrently, Phase and State may be read at any time.
type Workflow struct {
	id             string
	params         deployment.Params
	registry       contract.Registry
	tokenFactory   domain.Address
	auctionFactory domain.Address
	sink           deployment.StatusSink
	onComplete     CompleteFunc

	quantity     *big.Int
	startPrice   *big.Int
	reservePrice *big.Int

	// mu guards writes of phase and state, the running step reads them freely
	mu    sync.RWMutex
	phase deployment.Phase
	state deployment.State
}

// NewWorkflow converts the decimal inputs up front. Price ordering is not
// checked here, every step guards it before calling the chain.
func NewWorkflow(cfg WorkflowCfg) (*Workflow, error) {
	p := cfg.Params
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Ticker) == "" {
		return nil, xerrors.Errorf("name and ticker are required: %w", domain.ErrBadParamInput)
	}
	quantity, err := unit.ToBaseUnits(p.Quantity, unit.EtherDecimals)
	if err != nil {
		return nil, xerrors.Errorf("quantity %q: %w", p.Quantity, err)
	}
	if quantity.Sign() == 0 {
		return nil, xerrors.Errorf("zero quantity: %w", domain.ErrInvalidAmount)
	}
	startPrice, err := unit.ToBaseUnits(p.StartPrice, unit.EtherDecimals)
	if err != nil {
		return nil, xerrors.Errorf("start price %q: %w", p.StartPrice, err)
	}
	reservePrice, err := unit.ToBaseUnits(p.ReservePrice, unit.EtherDecimals)
	if err != nil {
		return nil, xerrors.Errorf("reserve price %q: %w", p.ReservePrice, err)
	}
	if cfg.Sink == nil {
		cfg.Sink = NewLogSink()
	}
	return &Workflow{
		id:             cfg.Id,
		params:         p,
		registry:       cfg.Registry,
		tokenFactory:   cfg.TokenFactory,
		auctionFactory: cfg.AuctionFactory,
		sink:           cfg.Sink,
		onComplete:     cfg.OnComplete,
		quantity:       quantity,
		startPrice:     startPrice,
		reservePrice:   reservePrice,
		phase:          deployment.PhaseIdle,
	}, nil
}

func (w *Workflow) Id() string {
	return w.id
}

func (w *Workflow) Params() deployment.Params {
	return w.params
}

func (w *Workflow) Phase() deployment.Phase {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.phase
}

func (w *Workflow) State() deployment.State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	st := w.state
	if st.NeedsTokenDeploy != nil {
		st.NeedsTokenDeploy = ptr.Bool(*st.NeedsTokenDeploy)
	}
	return st
}

// Run resumes from the last completed step and stops at approval unless the
// run was created with AutoApprove.
func (w *Workflow) Run(ctx bCtx.Ctx) error {
	if w.phase == deployment.PhaseComplete {
		return nil
	}
	if w.state.AuctionAddress.IsEmpty() {
		if w.state.TokenAddress.IsEmpty() && w.state.NeedsTokenDeploy == nil {
			if err := w.CheckTokenExistence(ctx); err != nil {
				return err
			}
		}
		var err error
		if w.state.TokenAddress.IsEmpty() {
			err = w.DeployToken(ctx)
		} else {
			err = w.DeployAuction(ctx)
		}
		if err != nil {
			return err
		}
	} else {
		w.transit(ctx, deployment.PhaseAwaitingApproval, "resuming at approval", "")
	}
	if !w.params.AutoApprove {
		return nil
	}
	return w.Approve(ctx)
}

// CheckTokenExistence scans every factory token for an exact name and ticker
// match. The scan is linear with one round trip per candidate.
func (w *Workflow) CheckTokenExistence(ctx bCtx.Ctx) error {
	w.transit(ctx, deployment.PhaseCheckingToken, "searching existing tokens", "")
	addr, err := w.findToken(ctx)
	if xerrors.Is(err, domain.ErrTokenNotFound) {
		w.update(func(st *deployment.State) {
			st.NeedsTokenDeploy = ptr.Bool(true)
		})
		w.transit(ctx, deployment.PhaseIdle, "no matching token, deployment needed", "")
		return nil
	} else if err != nil {
		return w.fail(ctx, "findToken failed", err)
	}
	w.update(func(st *deployment.State) {
		st.NeedsTokenDeploy = ptr.Bool(false)
		st.TokenAddress = addr
	})
	w.transit(ctx, deployment.PhaseTokenFound, "found token "+addr.String(), "")
	return nil
}

func (w *Workflow) findToken(ctx bCtx.Ctx) (domain.Address, error) {
	factory, err := w.registry.TokenFactory(ctx, w.tokenFactory, chain.ModeRead)
	if err != nil {
		return "", err
	}
	count, err := factory.TokenCount(ctx)
	if err != nil {
		return "", err
	}
	for i := int64(0); i < count; i++ {
		addr, err := factory.Tokens(ctx, i)
		if err != nil {
			return "", xerrors.Errorf("tokens(%d): %w", i, err)
		}
		token, err := w.registry.Token(ctx, addr, chain.ModeRead)
		if err != nil {
			return "", err
		}
		name, err := token.Name(ctx)
		if err != nil {
			return "", xerrors.Errorf("name of %s: %w", addr, err)
		}
		symbol, err := token.Symbol(ctx)
		if err != nil {
			return "", xerrors.Errorf("symbol of %s: %w", addr, err)
		}
		if name == w.params.Name && symbol == w.params.Ticker {
			return addr, nil
		}
	}
	return "", domain.ErrTokenNotFound
}

// DeployToken deploys the sale token and continues with DeployAuction. A
// token already recorded is reused.
func (w *Workflow) DeployToken(ctx bCtx.Ctx) error {
	if err := w.checkPrices(); err != nil {
		return w.fail(ctx, "price check failed", err)
	}
	if !w.state.TokenAddress.IsEmpty() {
		return w.DeployAuction(ctx)
	}
	w.transit(ctx, deployment.PhaseDeployingToken, "deploying token", "")

	factory, err := w.registry.TokenFactory(ctx, w.tokenFactory, chain.ModeWrite)
	if err != nil {
		return w.fail(ctx, "registry.TokenFactory failed", err)
	}
	receipt, hash, err := w.confirm(ctx, func() (*types.Transaction, error) {
		return factory.DeployToken(ctx, w.params.Name, w.params.Ticker, w.quantity)
	})
	if err != nil {
		return w.fail(ctx, "token deployment failed", err)
	}
	addr, err := factory.DeployedToken(receipt)
	if err != nil {
		return w.fail(ctx, "factory.DeployedToken failed", err)
	}
	w.update(func(st *deployment.State) {
		st.TokenAddress = addr
		st.NeedsTokenDeploy = ptr.Bool(false)
	})
	w.emit(ctx, "token deployed at "+addr.String(), hash, nil)

	return w.DeployAuction(ctx)
}

// DeployAuction deploys the auction for the recorded token and waits for
// approval. An auction already recorded is reused.
func (w *Workflow) DeployAuction(ctx bCtx.Ctx) error {
	if err := w.checkPrices(); err != nil {
		return w.fail(ctx, "price check failed", err)
	}
	if w.state.TokenAddress.IsEmpty() {
		return w.fail(ctx, "no token to auction", domain.ErrTokenNotFound)
	}
	if !w.state.AuctionAddress.IsEmpty() {
		w.transit(ctx, deployment.PhaseAwaitingApproval, "auction already deployed", "")
		return nil
	}
	w.transit(ctx, deployment.PhaseDeployingAuction, "deploying auction", "")

	factory, err := w.registry.AuctionFactory(ctx, w.auctionFactory, chain.ModeWrite)
	if err != nil {
		return w.fail(ctx, "registry.AuctionFactory failed", err)
	}
	receipt, hash, err := w.confirm(ctx, func() (*types.Transaction, error) {
		return factory.DeployAuction(ctx, w.state.TokenAddress, w.quantity, w.startPrice, w.reservePrice)
	})
	if err != nil {
		return w.fail(ctx, "auction deployment failed", err)
	}
	addr, err := factory.DeployedAuction(receipt)
	if err != nil {
		return w.fail(ctx, "factory.DeployedAuction failed", err)
	}
	w.update(func(st *deployment.State) {
		st.AuctionAddress = addr
		st.NeedsApproval = true
	})
	w.transit(ctx, deployment.PhaseAwaitingApproval, "auction deployed at "+addr.String(), hash)
	return nil
}

// Approve grants the auction an allowance of exactly the sale quantity and
// completes the run.
func (w *Workflow) Approve(ctx bCtx.Ctx) error {
	if w.phase == deployment.PhaseComplete {
		return nil
	}
	if w.state.TokenAddress.IsEmpty() || w.state.AuctionAddress.IsEmpty() {
		return w.fail(ctx, "nothing to approve", domain.ErrNoAuction)
	}
	token, err := w.registry.Token(ctx, w.state.TokenAddress, chain.ModeWrite)
	if err != nil {
		return w.fail(ctx, "registry.Token failed", err)
	}
	_, hash, err := w.confirm(ctx, func() (*types.Transaction, error) {
		return token.Approve(ctx, w.state.AuctionAddress, w.quantity)
	})
	if err != nil {
		return w.fail(ctx, "approval failed", err)
	}
	w.update(func(st *deployment.State) {
		st.NeedsApproval = false
	})
	w.transit(ctx, deployment.PhaseComplete, "auction approved", hash)

	if w.onComplete != nil {
		if err := w.onComplete(ctx, w.state.AuctionAddress); err != nil {
			ctx.WithField("err", err).Warn("onComplete failed")
		}
	}
	return nil
}

func (w *Workflow) checkPrices() error {
	if w.startPrice.Cmp(w.reservePrice) <= 0 {
		return domain.ErrInvalidPriceOrdering
	}
	return nil
}

// confirm sends the step's write unless one is already in flight, then waits
// for its receipt. The hash stays in PendingTx until a receipt arrives, so a
// step resumed after a failed wait polls the earlier write instead of sending
// it again.
func (w *Workflow) confirm(ctx bCtx.Ctx, send func() (*types.Transaction, error)) (*types.Receipt, domain.TxHash, error) {
	var (
		receipt *types.Receipt
		err     error
	)
	hash := w.state.PendingTx
	if hash == "" {
		tx, sendErr := send()
		if sendErr != nil {
			return nil, "", chain.Classify(sendErr)
		}
		hash = domain.TxHash(tx.Hash().Hex())
		w.update(func(st *deployment.State) {
			st.PendingTx = hash
		})
		w.emit(ctx, "waiting for confirmation", hash, nil)
		receipt, err = w.registry.WaitMined(ctx, tx)
	} else {
		w.emit(ctx, "waiting for earlier tx", hash, nil)
		receipt, err = w.registry.WaitReceipt(ctx, hash)
	}
	if err != nil && !xerrors.Is(err, domain.ErrCallReverted) {
		return nil, hash, err
	}
	w.update(func(st *deployment.State) {
		st.PendingTx = ""
	})
	return receipt, hash, err
}

func (w *Workflow) update(fn func(st *deployment.State)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(&w.state)
}

func (w *Workflow) setPhase(phase deployment.Phase) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.phase = phase
}

func (w *Workflow) transit(ctx bCtx.Ctx, phase deployment.Phase, msg string, tx domain.TxHash) {
	w.setPhase(phase)
	w.emit(ctx, msg, tx, nil)
}

// fail returns the run to idle keeping what was achieved
func (w *Workflow) fail(ctx bCtx.Ctx, msg string, err error) error {
	ctx.WithFields(log.Fields{"runId": w.id, "phase": w.phase, "err": err}).Error(msg)
	w.setPhase(deployment.PhaseIdle)
	w.emit(ctx, msg, "", err)
	return err
}

func (w *Workflow) emit(ctx bCtx.Ctx, msg string, tx domain.TxHash, err error) {
	ev := deployment.Event{
		RunId:   w.id,
		Phase:   w.phase,
		Message: msg,
		TxHash:  tx,
		At:      time.Now(),
	}
	if err != nil {
		ev.Err = err.Error()
	}
	w.sink.Emit(ctx, ev)
}
