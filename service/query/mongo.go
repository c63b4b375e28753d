package query

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/domain"
)

var (
	ErrNotFound     = xerrors.New("query: document not found")
	ErrDuplicateKey = xerrors.New("query: duplicate key")
	// ErrCollScan is returned in index checking mode for unindexed queries
	ErrCollScan = xerrors.New("query: COLLSCAN is not allowed")
)

// Mongo is a thin table oriented layer over the mongo driver
type Mongo interface {
	// Insert returns ErrDuplicateKey when a unique index is violated
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne returns ErrNotFound when nothing matches
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Upsert replaces the matched document or inserts it
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search sorts by sort ("createdAt" ascending, "-createdAt" descending),
	// an empty sort leaves the order to mongo
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Remove returns ErrNotFound when nothing was deleted
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// EnsureIndex creates an index over fields, prefix a field with "-" for descending order
	EnsureIndex(context ctx.Ctx, table domain.Table, unique bool, fields ...string) error

	// Ping checks the connection to the primary
	Ping(context ctx.Ctx) error
}
