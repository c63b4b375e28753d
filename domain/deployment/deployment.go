package deployment

import (
	"time"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
)

type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseCheckingToken    Phase = "checkingToken"
	PhaseTokenFound       Phase = "tokenFound"
	PhaseDeployingToken   Phase = "deployingToken"
	PhaseDeployingAuction Phase = "deployingAuction"
	PhaseAwaitingApproval Phase = "awaitingApproval"
	PhaseComplete         Phase = "complete"
)

// Params describes the auction to create. Amounts are decimal strings: the
// quantity in whole tokens, prices in the native currency.
type Params struct {
	Name         string `json:"name" validate:"required"`
	Ticker       string `json:"ticker" validate:"required"`
	Quantity     string `json:"quantity" validate:"required,amount"`
	StartPrice   string `json:"startPrice" validate:"required,amount"`
	ReservePrice string `json:"reservePrice" validate:"required,amount"`
	// AutoApprove continues into the approval step without a separate call
	AutoApprove bool `json:"autoApprove"`
}

// State is what one run has achieved so far. It survives failures so a retry
// does not repeat completed steps.
type State struct {
	TokenAddress   domain.Address `json:"tokenAddress,omitempty"`
	AuctionAddress domain.Address `json:"auctionAddress,omitempty"`
	// NeedsTokenDeploy is nil until the existing-token search has run
	NeedsTokenDeploy *bool `json:"needsTokenDeploy,omitempty"`
	NeedsApproval    bool  `json:"needsApproval"`
	// PendingTx is the write of the current step, set from broadcast until
	// its receipt arrives
	PendingTx domain.TxHash `json:"pendingTx,omitempty"`
}

// Event is one status update of a run
type Event struct {
	RunId   string        `json:"runId"`
	Phase   Phase         `json:"phase"`
	Message string        `json:"message"`
	TxHash  domain.TxHash `json:"txHash,omitempty"`
	Err     string        `json:"err,omitempty"`
	At      time.Time     `json:"at"`
}

// StatusSink receives run events
type StatusSink interface {
	Emit(ctx bCtx.Ctx, ev Event)
}

// Run is a point-in-time view of a deployment run
type Run struct {
	Id        string    `json:"id"`
	Params    Params    `json:"params"`
	Phase     Phase     `json:"phase"`
	State     State     `json:"state"`
	Busy      bool      `json:"busy"`
	LastError string    `json:"lastError,omitempty"`
	Events    []Event   `json:"events"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Record is a completed deployment
type Record struct {
	Auction      domain.Address `json:"auction" bson:"auction"`
	Token        domain.Address `json:"token" bson:"token"`
	ChainId      domain.ChainId `json:"chainId" bson:"chainId"`
	Seller       domain.Address `json:"seller" bson:"seller"`
	Name         string         `json:"name" bson:"name"`
	Ticker       string         `json:"ticker" bson:"ticker"`
	Quantity     string         `json:"quantity" bson:"quantity"`
	StartPrice   string         `json:"startPrice" bson:"startPrice"`
	ReservePrice string         `json:"reservePrice" bson:"reservePrice"`
	RunId        string         `json:"runId" bson:"runId"`
	CreatedAt    time.Time      `json:"createdAt" bson:"createdAt"`
}

type FindAllOptions struct {
	ChainId *domain.ChainId `bson:"chainId,omitempty"`
	Seller  *domain.Address `bson:"seller,omitempty"`
	Offset  *int32          `bson:"-"`
	Limit   *int32          `bson:"-"`
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.ChainId = &chainId
		return nil
	}
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		s := seller.ToLower()
		opts.Seller = &s
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

// Repo stores completed deployments
type Repo interface {
	Insert(ctx bCtx.Ctx, r *Record) error
	FindOne(ctx bCtx.Ctx, chainId domain.ChainId, auction domain.Address) (*Record, error)
	FindAll(ctx bCtx.Ctx, opts ...FindAllOptionsFunc) ([]*Record, error)
}

// Usecase manages deployment runs
type Usecase interface {
	// Create registers a run without executing it
	Create(ctx bCtx.Ctx, params Params) (*Run, error)
	// Start creates a run and drives it up to approval
	Start(ctx bCtx.Ctx, params Params) (*Run, error)
	// Resume continues a run from its last completed step
	Resume(ctx bCtx.Ctx, id string) (*Run, error)
	Approve(ctx bCtx.Ctx, id string) (*Run, error)
	Get(ctx bCtx.Ctx, id string) (*Run, error)
	List(ctx bCtx.Ctx) ([]*Run, error)
	Abandon(ctx bCtx.Ctx, id string) error
	Deployments(ctx bCtx.Ctx, opts ...FindAllOptionsFunc) ([]*Record, error)
}
