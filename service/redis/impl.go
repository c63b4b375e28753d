package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/base/metrics"
	"github.com/x-xyz/auctiond/domain/keys"
)

// PTTL replies
const (
	pttlNoKey    = -2
	pttlNoExpire = -1
)

var delBatchSize = 100

type Cfg struct {
	// Name tags every metric, usually the app name
	Name string
	Pool *redis.Pool
	Met  metrics.Service
}

type impl struct {
	name string
	pool *redis.Pool
	met  metrics.Service
}

func New(cfg *Cfg) Service {
	met := cfg.Met
	if met == nil {
		met = metrics.New("redis")
	}
	return &impl{
		name: cfg.Name,
		pool: cfg.Pool,
		met:  met,
	}
}

func (im *impl) Name() string {
	return im.name
}

func (im *impl) tags(op, key string) []string {
	return []string{"func", op, "cluster", im.name, "prefix", keys.GetPrefix(key)}
}

// withConn borrows a connection for the duration of fn
func (im *impl) withConn(fn func(conn redis.Conn) error) error {
	if im.pool == nil {
		return ErrNoPool
	}
	conn := im.pool.Get()
	defer func() {
		if err := conn.Close(); err != nil {
			im.met.BumpSum("conn.close.err", 1, "cluster", im.name)
		}
	}()
	if err := conn.Err(); err != nil {
		im.met.BumpSum("getconn.err", 1, "cluster", im.name)
		return err
	}
	return fn(conn)
}

func (im *impl) do(cmd string, args ...interface{}) (reply interface{}, err error) {
	err = im.withConn(func(conn redis.Conn) error {
		reply, err = conn.Do(cmd, args...)
		return err
	})
	return reply, err
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, error) {
	tags := im.tags("get", key)
	defer im.met.BumpTime("time", tags...).End()

	val, err := redis.Bytes(im.do("GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("redis GET failed")
		return nil, err
	}
	im.met.BumpHistogram("bytes", float64(len(val)), tags...)
	return val, nil
}

func (im *impl) GetWithTTL(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	tags := im.tags("getttl", key)
	defer im.met.BumpTime("time", tags...).End()

	var replies []interface{}
	err := im.withConn(func(conn redis.Conn) error {
		if err := conn.Send("GET", key); err != nil {
			return err
		}
		if err := conn.Send("PTTL", key); err != nil {
			return err
		}
		var err error
		replies, err = redis.Values(conn.Do(""))
		return err
	})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("redis GET/PTTL failed")
		return nil, 0, err
	}
	if len(replies) != 2 {
		return nil, 0, xerrors.Errorf("redis: unexpected pipeline replies %d", len(replies))
	}

	val, err := redis.Bytes(replies[0], nil)
	if err == redis.ErrNil {
		return nil, 0, ErrNotFound
	} else if err != nil {
		return nil, 0, err
	}
	pttl, err := redis.Int64(replies[1], nil)
	if err != nil {
		return nil, 0, err
	}
	im.met.BumpHistogram("bytes", float64(len(val)), tags...)

	switch pttl {
	case pttlNoKey:
		// expired between the two commands
		return nil, 0, ErrNotFound
	case pttlNoExpire:
		return val, Forever, nil
	}
	return val, time.Duration(pttl) * time.Millisecond, nil
}

func (im *impl) Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error {
	tags := im.tags("set", key)
	defer im.met.BumpTime("time", tags...).End()
	im.met.BumpHistogram("bytes", float64(len(val)), tags...)

	args := []interface{}{key, val}
	if expire == Forever {
		im.met.BumpSum("ttl.forever", 1, tags...)
	} else {
		im.met.BumpAvg("ttl", expire.Seconds(), tags...)
		args = append(args, "PX", int64(expire/time.Millisecond))
	}
	if _, err := im.do("SET", args...); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("redis SET failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, ks ...string) (int, error) {
	if len(ks) == 0 {
		return 0, xerrors.New("redis: no keys to delete")
	}
	tags := im.tags("del", ks[0])
	defer im.met.BumpTime("time", tags...).End()

	affected := 0
	for start := 0; start < len(ks); start += delBatchSize {
		end := start + delBatchSize
		if end > len(ks) {
			end = len(ks)
		}
		n, err := redis.Int(im.do("DEL", redis.Args{}.AddFlat(ks[start:end])...))
		if err != nil {
			c.WithField("err", err).Error("redis DEL failed")
			return affected, err
		}
		affected += n
	}
	return affected, nil
}

func (im *impl) Ping(c ctx.Ctx) error {
	if _, err := redis.String(im.do("PING")); err != nil {
		c.WithField("err", err).Error("redis PING failed")
		return err
	}
	return nil
}
