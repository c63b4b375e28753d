package repository

import (
	"time"

	"github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
	hcdomain "github.com/x-xyz/auctiond/domain/healthcheck"
	"github.com/x-xyz/auctiond/domain/keys"
	"github.com/x-xyz/auctiond/service/query"
	"github.com/x-xyz/auctiond/service/redis"
)

const pingTimeout = 2 * time.Second

type impl struct {
	mongo      query.Mongo
	redisCache redis.Service
	chain      hcdomain.ChainChecker
}

// New creates a HealthCheckRepo, mongo and redisCache may be nil when not configured
func New(
	mongo query.Mongo,
	redisCache redis.Service,
	chain hcdomain.ChainChecker,
) hcdomain.HealthCheckRepo {
	return &impl{
		mongo:      mongo,
		redisCache: redisCache,
		chain:      chain,
	}
}

func (im *impl) PingDB(context ctx.Ctx) error {
	if im.mongo == nil && im.redisCache == nil {
		return hcdomain.ErrStoresDisabled
	}
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if im.mongo != nil {
		if err := im.mongo.Ping(ctx); err != nil {
			context.WithField("err", err).Error("ping mongo error")
			return err
		}
	}

	if im.redisCache != nil {
		if err := im.redisCache.Set(ctx, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
			context.WithField("err", err).Error("test redis set failed")
			return err
		}
	}
	return nil
}

func (im *impl) PingChain(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if !im.chain.ChainOK(ctx) {
		context.Error("chain check failed")
		return domain.ErrWrongChain
	}
	return nil
}
