package usecase

import (
	"github.com/x-xyz/auctiond/base/ctx"
	hcdomain "github.com/x-xyz/auctiond/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) Check(context ctx.Ctx) (hcdomain.Report, error) {
	report := hcdomain.Report{Chain: hcdomain.StatusOK, Stores: hcdomain.StatusOK}
	var first error

	if err := im.repo.PingChain(context); err != nil {
		report.Chain = err.Error()
		first = err
	}

	switch err := im.repo.PingDB(context); err {
	case nil:
	case hcdomain.ErrStoresDisabled:
		report.Stores = hcdomain.StatusDisabled
	default:
		report.Stores = err.Error()
		if first == nil {
			first = err
		}
	}
	return report, first
}
