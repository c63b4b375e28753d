package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain/keys"
	"github.com/x-xyz/auctiond/service/cache/provider"
	"github.com/x-xyz/auctiond/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type value struct {
	Value string `json:"value"`
}

type testsuite struct {
	suite.Suite
	im    *impl
	cache provider.Provider
}

func (ts *testsuite) SetupTest() {
	ts.cache = primitive.NewPrimitive("test", 1)
	ts.im = New(ServiceConfig{
		Ttl:   time.Second,
		Pfx:   "testing",
		Cache: ts.cache,
	}).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestGet() {
	var (
		k = "key"
		v = value{"value"}
		c = &value{}
	)

	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, k, c))

	sv, err := json.Marshal(v)
	ts.NoError(err)
	ts.NoError(ts.cache.Set(mockCtx, keys.RedisKey("testing", k), sv, time.Second))
	ts.NoError(ts.im.Get(mockCtx, k, c))
	ts.Equal(v, *c)

	time.Sleep(1100 * time.Millisecond)
	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, k, c))
}

func (ts *testsuite) TestSetDel() {
	v := value{"value"}
	ts.NoError(ts.im.Set(mockCtx, "key", v))

	raw, _, err := ts.cache.Get(mockCtx, "testing:key")
	ts.NoError(err)
	ts.JSONEq(`{"value":"value"}`, string(raw))

	ts.NoError(ts.im.Del(mockCtx, "key"))
	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, "key", &value{}))
}

func (ts *testsuite) TestCorruptValue() {
	ts.NoError(ts.cache.Set(mockCtx, "testing:key", []byte("{"), 0))
	ts.Error(ts.im.Get(mockCtx, "key", &value{}))
}
