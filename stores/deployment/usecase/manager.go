package usecase

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/base/metrics"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/domain/deployment"
	"github.com/x-xyz/auctiond/service/chain/contract"
)

const historyLimit = 64

type ManagerCfg struct {
	Registry       contract.Registry
	TokenFactory   domain.Address
	AuctionFactory domain.Address
	ChainId        domain.ChainId
	// Operator, when set, is the only caller allowed to create runs
	Operator domain.Address
	// Repo records completed deployments, optional
	Repo       deployment.Repo
	Sink       deployment.StatusSink
	Metrics    metrics.Service
	OnComplete CompleteFunc
}

type run struct {
	seq       uint64
	wf        *Workflow
	history   *historySink
	busy      bool
	lastErr   error
	createdAt time.Time
	updatedAt time.Time
}

type manager struct {
	registry       contract.Registry
	tokenFactory   domain.Address
	auctionFactory domain.Address
	chainId        domain.ChainId
	operator       domain.Address
	repo           deployment.Repo
	sink           deployment.StatusSink
	metrics        metrics.Service
	onComplete     CompleteFunc

	mu   sync.Mutex
	seq  uint64
	runs map[string]*run
}

func NewManager(cfg *ManagerCfg) deployment.Usecase {
	m := &manager{
		registry:       cfg.Registry,
		tokenFactory:   cfg.TokenFactory,
		auctionFactory: cfg.AuctionFactory,
		chainId:        cfg.ChainId,
		operator:       cfg.Operator.ToLower(),
		repo:           cfg.Repo,
		sink:           cfg.Sink,
		metrics:        cfg.Metrics,
		onComplete:     cfg.OnComplete,
		runs:           make(map[string]*run),
	}
	if m.sink == nil {
		m.sink = NewLogSink()
	}
	if m.metrics == nil {
		m.metrics = metrics.New("deployment")
	}
	return m
}

func (m *manager) permitted() error {
	if m.operator.IsEmpty() {
		return nil
	}
	caller, ok := m.registry.Caller()
	if !ok {
		return domain.ErrNoWallet
	}
	if !caller.Equals(m.operator) {
		return domain.ErrNotPermitted
	}
	return nil
}

func (m *manager) Create(ctx bCtx.Ctx, params deployment.Params) (*deployment.Run, error) {
	if err := m.permitted(); err != nil {
		ctx.WithField("err", err).Warn("deployment not permitted")
		return nil, err
	}
	id, err := uuid.NewRandom()
	if err != nil {
		ctx.WithField("err", err).Error("failed to uuid.NewRandom")
		return nil, err
	}
	r := &run{history: newHistorySink(historyLimit)}
	wf, err := NewWorkflow(WorkflowCfg{
		Id:             id.String(),
		Params:         params,
		Registry:       m.registry,
		TokenFactory:   m.tokenFactory,
		AuctionFactory: m.auctionFactory,
		Sink:           multiSink{m.sink, r.history},
		OnComplete:     m.completed(id.String()),
	})
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "params": params}).Warn("NewWorkflow failed")
		return nil, err
	}
	r.wf = wf
	r.createdAt = time.Now()
	r.updatedAt = r.createdAt

	m.mu.Lock()
	m.seq++
	r.seq = m.seq
	m.runs[wf.Id()] = r
	m.mu.Unlock()

	m.metrics.BumpSum("run.created", 1)
	return m.Get(ctx, wf.Id())
}

func (m *manager) Start(ctx bCtx.Ctx, params deployment.Params) (*deployment.Run, error) {
	created, err := m.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	return m.Resume(ctx, created.Id)
}

func (m *manager) Resume(ctx bCtx.Ctx, id string) (*deployment.Run, error) {
	return m.exec(ctx, id, "run", func(wf *Workflow) error {
		return wf.Run(ctx)
	})
}

func (m *manager) Approve(ctx bCtx.Ctx, id string) (*deployment.Run, error) {
	return m.exec(ctx, id, "approve", func(wf *Workflow) error {
		return wf.Approve(ctx)
	})
}

// exec runs one step with the run marked busy. The returned run reflects the
// state after the step, also when it failed.
func (m *manager) exec(ctx bCtx.Ctx, id, step string, fn func(*Workflow) error) (*deployment.Run, error) {
	if err := m.permitted(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	r, ok := m.runs[id]
	if !ok {
		m.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	if r.busy {
		m.mu.Unlock()
		return nil, domain.ErrWorkflowBusy
	}
	r.busy = true
	m.mu.Unlock()

	ctx = bCtx.WithLogFields(ctx, log.Fields{"runId": id, "step": step})
	end := m.metrics.BumpTime("step.time", "step", step)
	err := fn(r.wf)
	end.End()
	if err != nil {
		m.metrics.BumpSum("step.err", 1, "step", step)
	}

	m.mu.Lock()
	r.busy = false
	r.lastErr = err
	r.updatedAt = time.Now()
	res := toRun(r)
	m.mu.Unlock()
	return res, err
}

// completed records the deployment and forwards to the configured callback
func (m *manager) completed(id string) CompleteFunc {
	return func(ctx bCtx.Ctx, auction domain.Address) error {
		m.metrics.BumpSum("run.completed", 1)
		if m.repo != nil {
			if err := m.repo.Insert(ctx, m.record(id, auction)); err != nil {
				ctx.WithField("err", err).Error("repo.Insert failed")
			}
		}
		if m.onComplete == nil {
			return nil
		}
		return m.onComplete(ctx, auction)
	}
}

// record is called from inside exec, the run is owned by the caller
func (m *manager) record(id string, auction domain.Address) *deployment.Record {
	m.mu.Lock()
	r := m.runs[id]
	m.mu.Unlock()

	p := r.wf.Params()
	seller, _ := m.registry.Caller()
	return &deployment.Record{
		Auction:      auction.ToLower(),
		Token:        r.wf.State().TokenAddress.ToLower(),
		ChainId:      m.chainId,
		Seller:       seller.ToLower(),
		Name:         p.Name,
		Ticker:       p.Ticker,
		Quantity:     p.Quantity,
		StartPrice:   p.StartPrice,
		ReservePrice: p.ReservePrice,
		RunId:        id,
		CreatedAt:    time.Now(),
	}
}

func (m *manager) Get(ctx bCtx.Ctx, id string) (*deployment.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return toRun(r), nil
}

func (m *manager) List(ctx bCtx.Ctx) ([]*deployment.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	runs := make([]*run, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].seq < runs[j].seq
	})
	res := make([]*deployment.Run, len(runs))
	for i, r := range runs {
		res[i] = toRun(r)
	}
	return res, nil
}

// Abandon discards a run and everything it recorded. Deployed contracts stay
// on chain.
func (m *manager) Abandon(ctx bCtx.Ctx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.busy {
		return domain.ErrWorkflowBusy
	}
	delete(m.runs, id)
	ctx.WithFields(log.Fields{"runId": id, "phase": r.wf.Phase()}).Info("run abandoned")
	return nil
}

func (m *manager) Deployments(ctx bCtx.Ctx, opts ...deployment.FindAllOptionsFunc) ([]*deployment.Record, error) {
	if m.repo == nil {
		return nil, xerrors.Errorf("deployment registry disabled: %w", domain.ErrNotFound)
	}
	opts = append([]deployment.FindAllOptionsFunc{deployment.WithChainId(m.chainId)}, opts...)
	res, err := m.repo.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func toRun(r *run) *deployment.Run {
	res := &deployment.Run{
		Id:        r.wf.Id(),
		Params:    r.wf.Params(),
		Phase:     r.wf.Phase(),
		State:     r.wf.State(),
		Busy:      r.busy,
		Events:    r.history.Events(),
		CreatedAt: r.createdAt,
		UpdatedAt: r.updatedAt,
	}
	if r.lastErr != nil {
		res.LastError = r.lastErr.Error()
	}
	return res
}
