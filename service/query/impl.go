package query

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/database/mongoclient"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/base/metrics"
	"github.com/x-xyz/auctiond/domain"
)

const (
	queryMaxTime  = 20 * time.Second
	slowThreshold = 500 * time.Millisecond
)

var (
	timeNow = time.Now
	met     = metrics.New("mongo")
)

type impl struct {
	client     *mongoclient.Client
	checkIndex bool
}

// New wraps client, with checkIndex every read is explained first and
// rejected with ErrCollScan when it would scan the collection
func New(client *mongoclient.Client, checkIndex bool) Mongo {
	return &impl{
		client:     client,
		checkIndex: checkIndex,
	}
}

func (im *impl) collection(table domain.Table) *mongo.Collection {
	return im.client.Database(im.client.DbName).Collection(string(table))
}

// begin tags the logger with the operation and returns the hook recording
// its latency, slow operations are logged with their filter
func begin(c ctx.Ctx, table domain.Table, op string, filter interface{}) (ctx.Ctx, func()) {
	c = ctx.WithLogFields(c, log.Fields{"table": table, "op": op})
	timer := met.BumpTime("time", "func", op, "table", string(table))
	start := timeNow()
	return c, func() {
		timer.End()
		if elapsed := timeNow().Sub(start); elapsed >= slowThreshold {
			met.BumpSum("slowlog", 1, "table", string(table), "action", op)
			c.WithFields(log.Fields{"durationMs": elapsed.Milliseconds(), "filter": filter}).Warn("mongo slowlog")
		}
	}
}

func fail(c ctx.Ctx, msg string, err error) error {
	if _, ok := err.(topology.ConnectionError); ok {
		met.BumpSum("conn.err", 1)
	}
	c.WithField("err", err).Error(msg)
	return err
}

func (im *impl) Insert(c ctx.Ctx, table domain.Table, doc interface{}) error {
	c, done := begin(c, table, "insert", nil)
	defer done()

	if _, err := im.collection(table).InsertOne(c, doc); mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	} else if err != nil {
		return fail(c, "InsertOne failed", err)
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, table domain.Table, filter, result interface{}) error {
	c, done := begin(c, table, "findone", filter)
	defer done()

	if err := im.checkQueryIndex(c, table, "find", bson.E{Key: "filter", Value: filter}); err != nil {
		return err
	}
	err := im.collection(table).FindOne(c, filter, options.FindOne().SetMaxTime(queryMaxTime)).Decode(result)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	} else if err != nil {
		return fail(c, "FindOne failed", err)
	}
	return nil
}

func (im *impl) Count(c ctx.Ctx, table domain.Table, filter interface{}) (int, error) {
	c, done := begin(c, table, "count", filter)
	defer done()

	if err := im.checkQueryIndex(c, table, "count", bson.E{Key: "query", Value: filter}); err != nil {
		return 0, err
	}
	n, err := im.collection(table).CountDocuments(c, filter, options.Count().SetMaxTime(queryMaxTime))
	if err != nil {
		return 0, fail(c, "CountDocuments failed", err)
	}
	return int(n), nil
}

func (im *impl) Upsert(c ctx.Ctx, table domain.Table, filter, doc interface{}) error {
	c, done := begin(c, table, "upsert", filter)
	defer done()

	if _, err := im.collection(table).ReplaceOne(c, filter, doc, options.Replace().SetUpsert(true)); err != nil {
		return fail(c, "ReplaceOne failed", err)
	}
	return nil
}

// sortOption turns "field" and "-field" into a mongo sort document
func sortOption(fields ...string) bson.D {
	res := bson.D{}
	for _, f := range fields {
		switch {
		case f == "":
		case f[0] == '-':
			res = append(res, bson.E{Key: f[1:], Value: -1})
		default:
			res = append(res, bson.E{Key: f, Value: 1})
		}
	}
	return res
}

func (im *impl) Search(c ctx.Ctx, table domain.Table, offset, limit int, sort string, filter, results interface{}) error {
	c, done := begin(c, table, "search", filter)
	defer done()

	if err := im.checkQueryIndex(c, table, "find", bson.E{Key: "filter", Value: filter}); err != nil {
		return err
	}
	opts := options.Find().SetMaxTime(queryMaxTime).SetSkip(int64(offset)).SetLimit(int64(limit))
	if s := sortOption(sort); len(s) > 0 {
		opts.SetSort(s)
	}
	cursor, err := im.collection(table).Find(c, filter, opts)
	if err != nil {
		return fail(c, "Find failed", err)
	}
	defer cursor.Close(c)

	if err := cursor.All(c, results); err != nil {
		return fail(c, "cursor.All failed", err)
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, table domain.Table, filter interface{}) error {
	c, done := begin(c, table, "remove", filter)
	defer done()

	res, err := im.collection(table).DeleteOne(c, filter)
	if err != nil {
		return fail(c, "DeleteOne failed", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) EnsureIndex(c ctx.Ctx, table domain.Table, unique bool, fields ...string) error {
	model := mongo.IndexModel{
		Keys:    sortOption(fields...),
		Options: options.Index().SetUnique(unique),
	}
	name, err := im.collection(table).Indexes().CreateOne(c, model)
	if err != nil {
		return fail(c, "Indexes().CreateOne failed", err)
	}
	c.WithFields(log.Fields{"table": table, "index": name}).Info("index ensured")
	return nil
}

func (im *impl) Ping(c ctx.Ctx) error {
	if err := im.client.Ping(c, readpref.Primary()); err != nil {
		return fail(c, "Ping failed", err)
	}
	return nil
}

func (im *impl) checkQueryIndex(c ctx.Ctx, table domain.Table, action string, filter bson.E) error {
	if !im.checkIndex {
		return nil
	}
	res := im.client.Database(im.client.DbName).RunCommand(c, bson.D{
		{Key: "explain", Value: bson.D{{Key: action, Value: string(table)}, filter}},
		{Key: "verbosity", Value: "queryPlanner"},
	})

	var plan bson.M
	if err := res.Decode(&plan); err != nil {
		met.BumpSum("checkQueryIndex.err", 1)
		c.WithField("err", err).Warn("explain decode failed")
		return nil
	}
	// the plan layout differs between server versions
	if strings.Contains(fmt.Sprintf("%v", plan), "COLLSCAN") {
		c.WithField("filter", filter).Warn("COLLSCAN rejected")
		return ErrCollScan
	}
	return nil
}
