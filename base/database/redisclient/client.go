package redisclient

import (
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/auctiond/base/backoff"
	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond
	idleTimeout  = 240 * time.Second

	retryStart = time.Second
	retryLimit = 8 * time.Second
)

type Cfg struct {
	URI      string
	Password string
	// PoolMultiplier sizes the pool per cpu, 0 keeps the default size
	PoolMultiplier float64
	// Retries is the number of extra connection attempts on startup
	Retries int
}

// MustConnect panics when Connect fails
func MustConnect(ctx bCtx.Ctx, cfg *Cfg) *redis.Pool {
	p, err := Connect(ctx, cfg)
	if err != nil {
		ctx.WithFields(log.Fields{"redisURI": cfg.URI, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

// Connect builds a pool and pings through it until it answers
func Connect(ctx bCtx.Ctx, cfg *Cfg) (*redis.Pool, error) {
	p := newPool(cfg)

	var pingErr error
	b := backoff.NewExponential(retryStart, retryLimit)
	err := b.Poll(ctx, cfg.Retries+1, func() (bool, error) {
		c := p.Get()
		defer c.Close()
		if _, pingErr = c.Do("PING"); pingErr != nil {
			ctx.WithFields(log.Fields{
				"redisURI": cfg.URI,
				"err":      pingErr,
				"attempt":  b.Count() + 1,
			}).Warn("fail to ping Redis")
			return false, nil
		}
		return true, nil
	})
	if err == backoff.ErrPollLimit {
		err = pingErr
	}
	if err != nil {
		ctx.WithFields(log.Fields{"redisURI": cfg.URI, "err": err}).Error("fail to connect Redis")
		p.Close()
		return nil, err
	}

	ctx.WithField("redisURI", cfg.URI).Info("redis connected")
	return p, nil
}

func newPool(cfg *Cfg) *redis.Pool {
	maxIdle := 200
	maxActive := 1024
	if cfg.PoolMultiplier > 0 {
		cpu := float64(runtime.NumCPU())
		// allowing 25% idle connection
		maxIdle = int(cpu * cfg.PoolMultiplier / 4)
		maxActive = int(cpu * cfg.PoolMultiplier)
		if maxIdle < 1 {
			maxIdle = 1
		}
		if maxActive < 1 {
			maxActive = 1
		}
	}

	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}
	uri := cfg.URI
	return &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: idleTimeout,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", uri, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			// No need to test if it's been recycled less than 1 sec.
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}
