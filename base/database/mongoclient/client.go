package mongoclient

import (
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/log"
)

const (
	mgSocketTimeout  = 60 * time.Second
	mgConnectTimeout = 10 * time.Second
)

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

type Cfg struct {
	URI string
	// AuthDBName is used when the uri carries credentials but no authSource
	AuthDBName string
	DBName     string
	SSL        bool
	// Majority waits for a majority of the replica set on writes
	Majority bool
	// PoolSizeMultiplier sizes the pool per cpu, 0 keeps the driver default
	PoolSizeMultiplier float64
}

// MustConnect returns a connected client or panics
func MustConnect(ctx bCtx.Ctx, cfg *Cfg) *Client {
	cli, err := Connect(ctx, cfg)
	if err != nil {
		ctx.WithFields(log.Fields{"dbName": cfg.DBName, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// Connect dials mongo and pings the primary
func Connect(ctx bCtx.Ctx, cfg *Cfg) (*Client, error) {
	connSetting, err := connstring.Parse(cfg.URI)
	if err != nil {
		ctx.WithFields(log.Fields{"dbName": cfg.DBName, "err": err}).Error("fail to parse connstring")
		return nil, err
	}
	ctx = bCtx.WithLogFields(ctx, log.Fields{"mongoHosts": connSetting.Hosts, "dbName": cfg.DBName})

	client, err := mongo.NewClient(clientOptions(cfg, connSetting))
	if err != nil {
		ctx.WithField("err", err).Error("fail to create mongo client")
		return nil, err
	}

	cctx, cancel := bCtx.WithTimeout(ctx, mgConnectTimeout)
	defer cancel()
	if err := client.Connect(cctx); err != nil {
		ctx.WithField("err", err).Error("fail to connect mongo db")
		return nil, err
	}
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		ctx.WithField("err", err).Error("fail to ping mongo db")
		_ = client.Disconnect(ctx)
		return nil, err
	}

	ctx.Info("mongo connected")
	return &Client{
		Client: client,
		DbName: cfg.DBName,
	}, nil
}

func clientOptions(cfg *Cfg, connSetting connstring.ConnString) *options.ClientOptions {
	clientOpts := options.Client()
	clientOpts.ApplyURI(cfg.URI)
	clientOpts.SetSocketTimeout(mgSocketTimeout)

	if connSetting.Username != "" && connSetting.AuthSource == "" && cfg.AuthDBName != "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              cfg.AuthDBName,
		})
	}

	if cfg.PoolSizeMultiplier > 0 && len(connSetting.Hosts) > 0 {
		// every host keeps its own pool, so the total is split between hosts
		poolSize := int(float64(runtime.NumCPU()) * cfg.PoolSizeMultiplier)
		poolSize = (poolSize + len(connSetting.Hosts) - 1) / len(connSetting.Hosts)
		if poolSize < 1 {
			poolSize = 1
		}
		clientOpts.SetMinPoolSize(uint64(poolSize / 4))
		clientOpts.SetMaxPoolSize(uint64(poolSize))
	}

	if cfg.SSL {
		clientOpts.SetTLSConfig(&tls.Config{})
	}
	if cfg.Majority {
		clientOpts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}
	clientOpts.SetRetryWrites(true)
	return clientOpts
}
