package healthcheck

import (
	"errors"

	"github.com/x-xyz/auctiond/base/ctx"
)

var ErrStoresDisabled = errors.New("no store configured")

const (
	StatusOK       = "ok"
	StatusDisabled = "disabled"
)

// Report holds one entry per dependency, StatusOK or the failure message
type Report struct {
	Chain  string `json:"chain"`
	Stores string `json:"stores"`
}

func (r Report) Healthy() bool {
	return r.Chain == StatusOK && (r.Stores == StatusOK || r.Stores == StatusDisabled)
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	// Check pings every dependency and returns the first failure alongside
	// the full report
	Check(context ctx.Ctx) (Report, error)
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	// PingDB returns ErrStoresDisabled when no store is configured
	PingDB(context ctx.Ctx) error
	PingChain(context ctx.Ctx) error
}

// ChainChecker reports whether the rpc backend serves the configured chain
type ChainChecker interface {
	ChainOK(context ctx.Ctx) bool
}
