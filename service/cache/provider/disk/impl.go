package disk

import (
	"encoding/binary"
	"time"

	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/leveldb"

	"github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/service/cache/provider"
)

// every value is stored behind its expiry in unix nanoseconds, zero for none
const headerLen = 8

var timeNow = time.Now

type impl struct {
	name string
	db   ethdb.KeyValueStore
}

// Open opens or creates the leveldb store kept in dir
func Open(dir string) (ethdb.KeyValueStore, error) {
	return leveldb.New(dir, 0, 0, "", false)
}

// NewDisk creates a provider persisted in db. Expired entries are dropped
// when read.
func NewDisk(name string, db ethdb.KeyValueStore) provider.Provider {
	return &impl{name: name, db: db}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	k := []byte(key)
	ok, err := im.db.Has(k)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("db.Has failed")
		return nil, 0, err
	} else if !ok {
		return nil, 0, provider.ErrNotFound
	}
	raw, err := im.db.Get(k)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("db.Get failed")
		return nil, 0, err
	}
	if len(raw) < headerLen {
		c.WithFields(log.Fields{"key": key, "cache": im.name}).Warn("malformed entry dropped")
		_ = im.db.Delete(k)
		return nil, 0, provider.ErrNotFound
	}
	exp := int64(binary.BigEndian.Uint64(raw[:headerLen]))
	if exp == 0 {
		return raw[headerLen:], 0, nil
	}
	ttl := time.Unix(0, exp).Sub(timeNow())
	if ttl <= 0 {
		_ = im.db.Delete(k)
		return nil, 0, provider.ErrNotFound
	}
	return raw[headerLen:], ttl.Round(time.Second), nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	raw := make([]byte, headerLen+len(value))
	if ttl > 0 {
		binary.BigEndian.PutUint64(raw[:headerLen], uint64(timeNow().Add(ttl).UnixNano()))
	}
	copy(raw[headerLen:], value)
	if err := im.db.Put([]byte(key), raw); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("db.Put failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	if err := im.db.Delete([]byte(key)); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("db.Delete failed")
		return err
	}
	return nil
}
