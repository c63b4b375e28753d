package usecase

import (
	"errors"
	"sync"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/base/metrics"
	"github.com/x-xyz/auctiond/base/validator"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/domain/auction"
	"github.com/x-xyz/auctiond/domain/preference"
	"github.com/x-xyz/auctiond/service/chain/contract"
)

type SessionCfg struct {
	Reader     auction.Reader
	Registry   contract.Registry
	Preference preference.Repo
	Metrics    metrics.Service
	// Operator is the address allowed to run deployments
	Operator domain.Address
	// Initial is used when nothing has been persisted
	Initial domain.Address
}

type session struct {
	reader   auction.Reader
	registry contract.Registry
	pref     preference.Repo
	metrics  metrics.Service
	operator domain.Address

	mu       sync.RWMutex
	current  domain.Address
	snapshot *auction.Snapshot
	lastErr  error
	// gen changes with the current auction, results of an older gen are dropped
	gen uint64
	// seq numbers refreshes as they are issued, snapSeq is the one installed
	seq     uint64
	snapSeq uint64
}

func NewSession(cfg *SessionCfg) auction.Usecase {
	s := &session{
		reader:   cfg.Reader,
		registry: cfg.Registry,
		pref:     cfg.Preference,
		metrics:  cfg.Metrics,
		operator: cfg.Operator.ToLower(),
	}
	if s.metrics == nil {
		s.metrics = metrics.New("auction")
	}
	if validator.IsValidAddress(cfg.Initial.String()) {
		s.current = cfg.Initial.ToLower()
	}
	return s
}

func (s *session) Current() (domain.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, !s.current.IsEmpty()
}

// SetAuction switches the session to addr, dropping the old snapshot and any
// refresh still in flight.
func (s *session) SetAuction(ctx bCtx.Ctx, addr domain.Address) error {
	if !validator.IsValidAddress(addr.String()) {
		ctx.WithField("address", addr).Warn("invalid auction address")
		return domain.ErrInvalidAddress
	}
	addr = addr.ToLower()

	s.mu.Lock()
	if s.current != addr {
		s.current = addr
		s.snapshot = nil
		s.lastErr = nil
		s.gen++
	}
	s.mu.Unlock()

	if s.pref != nil {
		if err := s.pref.SetCurrentAuction(ctx, addr); err != nil {
			ctx.WithFields(log.Fields{"err": err, "auction": addr}).Error("pref.SetCurrentAuction failed")
		}
	}
	ctx.WithField("auction", addr).Info("current auction set")
	return nil
}

// Restore loads the persisted auction. A malformed value is rejected and the
// configured one kept.
func (s *session) Restore(ctx bCtx.Ctx) error {
	if s.pref == nil {
		return nil
	}
	addr, err := s.pref.GetCurrentAuction(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	} else if err != nil {
		ctx.WithField("err", err).Error("pref.GetCurrentAuction failed")
		return err
	}
	if !validator.IsValidAddress(addr.String()) {
		ctx.WithField("address", addr).Warn("persisted auction address is malformed")
		return domain.ErrInvalidAddress
	}
	addr = addr.ToLower()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != addr {
		s.current = addr
		s.snapshot = nil
		s.lastErr = nil
		s.gen++
	}
	ctx.WithField("auction", addr).Info("current auction restored")
	return nil
}

func (s *session) GetSnapshot() (*auction.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current.IsEmpty() {
		return nil, domain.ErrNoAuction
	}
	if s.snapshot == nil {
		return nil, domain.ErrNoSnapshot
	}
	return s.snapshot, nil
}

func (s *session) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Refresh replaces the snapshot with a freshly read one. On failure the
// previous snapshot stays in place. When refreshes overlap, the one issued
// last wins regardless of which read lands last.
func (s *session) Refresh(ctx bCtx.Ctx) error {
	s.mu.Lock()
	s.seq++
	addr, gen, seq := s.current, s.gen, s.seq
	s.mu.Unlock()
	if addr.IsEmpty() {
		return domain.ErrNoAuction
	}

	defer s.metrics.BumpTime("refresh.time").End()
	snap, err := s.reader.Read(ctx, addr)
	if err != nil {
		s.metrics.BumpSum("refresh.err", 1)
		ctx.WithFields(log.Fields{"err": err, "auction": addr}).Error("reader.Read failed")
		s.mu.Lock()
		if s.gen == gen && seq > s.snapSeq {
			s.lastErr = err
		}
		s.mu.Unlock()
		return err
	}
	if err := ctx.Err(); err != nil {
		ctx.WithField("auction", addr).Debug("refresh torn down, result discarded")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		ctx.WithField("auction", addr).Info("auction changed during refresh, result discarded")
		return nil
	}
	if seq < s.snapSeq {
		ctx.WithFields(log.Fields{"auction": addr, "seq": seq, "installed": s.snapSeq}).Debug("newer refresh already landed, result discarded")
		return nil
	}
	s.snapshot = snap
	s.snapSeq = seq
	s.lastErr = nil
	s.metrics.BumpSum("refresh.ok", 1)
	return nil
}

// RefreshTicker updates price and time remaining of a live auction only
func (s *session) RefreshTicker(ctx bCtx.Ctx) error {
	s.mu.RLock()
	snap, gen := s.snapshot, s.gen
	s.mu.RUnlock()
	if snap == nil || !snap.Live() {
		return nil
	}

	t, err := s.reader.ReadTicker(ctx, snap)
	if err != nil {
		s.metrics.BumpSum("ticker.err", 1)
		ctx.WithFields(log.Fields{"err": err, "auction": snap.Auction}).Warn("reader.ReadTicker failed")
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	latest := s.snapshot
	if s.gen != gen || latest == nil || !latest.Live() || !latest.FetchedAt.Before(t.FetchedAt) {
		return nil
	}
	s.snapshot = latest.WithTicker(t)
	return nil
}

func (s *session) Capabilities(ctx bCtx.Ctx) (auction.Capabilities, error) {
	caller, _ := s.registry.Caller()
	chainOK := s.registry.ChainOK(ctx)
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	return auction.Gate(snap, caller, chainOK, s.operator), nil
}
