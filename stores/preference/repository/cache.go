package repository

import (
	"time"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/domain/keys"
	"github.com/x-xyz/auctiond/domain/preference"
	"github.com/x-xyz/auctiond/service/cache"
	"github.com/x-xyz/auctiond/service/cache/provider"
)

const keyCurrentAuction = "currentAuction"

type currentAuction struct {
	Auction   domain.Address `json:"auction"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type cacheRepo struct {
	chainId domain.ChainId
	cache   cache.Service
}

// NewCacheRepo stores preferences without expiry in p, keyed per chain so
// one store can serve several networks
func NewCacheRepo(chainId domain.ChainId, p provider.Provider) preference.Repo {
	return &cacheRepo{
		chainId: chainId,
		cache: cache.New(cache.ServiceConfig{
			Pfx:   keys.PreferenceKey(int64(chainId)),
			Cache: p,
		}),
	}
}

// GetCurrentAuction returns the stored value unvalidated
func (r *cacheRepo) GetCurrentAuction(ctx bCtx.Ctx) (domain.Address, error) {
	var v currentAuction
	if err := r.cache.Get(ctx, keyCurrentAuction, &v); err == cache.ErrNotFound {
		return "", domain.ErrNotFound
	} else if err != nil {
		ctx.WithField("err", err).Error("cache.Get failed")
		return "", err
	}
	return v.Auction, nil
}

func (r *cacheRepo) SetCurrentAuction(ctx bCtx.Ctx, addr domain.Address) error {
	v := currentAuction{Auction: addr, UpdatedAt: time.Now().UTC()}
	if err := r.cache.Set(ctx, keyCurrentAuction, v); err != nil {
		ctx.WithFields(log.Fields{"err": err, "auction": addr}).Error("cache.Set failed")
		return err
	}
	return nil
}
