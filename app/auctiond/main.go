package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	baseabi "github.com/x-xyz/auctiond/base/abi"
	bCtx "github.com/x-xyz/auctiond/base/ctx"
	"github.com/x-xyz/auctiond/base/database/mongoclient"
	"github.com/x-xyz/auctiond/base/database/redisclient"
	"github.com/x-xyz/auctiond/base/ethereum"
	"github.com/x-xyz/auctiond/base/log"
	"github.com/x-xyz/auctiond/base/metrics"
	"github.com/x-xyz/auctiond/base/tracker"
	bValidator "github.com/x-xyz/auctiond/base/validator"
	"github.com/x-xyz/auctiond/domain"
	"github.com/x-xyz/auctiond/domain/deployment"
	"github.com/x-xyz/auctiond/domain/preference"
	mmiddleware "github.com/x-xyz/auctiond/middleware"
	"github.com/x-xyz/auctiond/service/cache/provider"
	"github.com/x-xyz/auctiond/service/cache/provider/compound"
	"github.com/x-xyz/auctiond/service/cache/provider/disk"
	"github.com/x-xyz/auctiond/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/auctiond/service/cache/provider/redis"
	"github.com/x-xyz/auctiond/service/chain"
	"github.com/x-xyz/auctiond/service/chain/contract"
	"github.com/x-xyz/auctiond/service/query"
	"github.com/x-xyz/auctiond/service/redis"
	auction_delivery "github.com/x-xyz/auctiond/stores/auction/delivery/http"
	auction_usecase "github.com/x-xyz/auctiond/stores/auction/usecase"
	deployment_delivery "github.com/x-xyz/auctiond/stores/deployment/delivery/http"
	deployment_repository "github.com/x-xyz/auctiond/stores/deployment/repository"
	deployment_usecase "github.com/x-xyz/auctiond/stores/deployment/usecase"
	hc_delivery "github.com/x-xyz/auctiond/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/auctiond/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/auctiond/stores/healthcheck/usecase"
	preference_repository "github.com/x-xyz/auctiond/stores/preference/repository"
)

func init() {
	configFile := pflag.String("config", "infra/configs/auctiond/config.yaml", "config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvPrefix("AUCTIOND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if lvl := viper.GetString("log.level"); lvl != "" {
		if err := log.SetLevel(lvl); err != nil {
			log.Log().WithFields(log.Fields{"err": err, "level": lvl}).Warn("invalid log level")
		}
	}
	if viper.GetBool(`debug`) {
		_ = log.SetLevel("debug")
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	defer log.Sync()

	chainId := domain.ChainId(viper.GetInt64("network.chainId"))
	rpcUrl := viper.GetString("network.rpcUrl")
	tokenFactory := domain.Address(viper.GetString("contracts.tokenFactory"))
	auctionFactory := domain.Address(viper.GetString("contracts.auctionFactory"))
	operator := domain.Address(viper.GetString("operator.address"))

	ctx.WithFields(log.Fields{
		"chainId":        chainId,
		"rpcUrl":         rpcUrl,
		"tokenFactory":   tokenFactory,
		"auctionFactory": auctionFactory,
		"operator":       operator,
	}).Info("config")

	// chain gateway
	ctx.Info("connecting eth client")
	ethClient, err := ethclient.DialContext(ctx, rpcUrl)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "url": rpcUrl}).Panic("failed to connect rpc")
	}
	wallet, err := chain.NewWallet(ctx, &chain.WalletCfg{
		Address:    viper.GetString("wallet.address"),
		Keystore:   viper.GetString("wallet.keystore"),
		Passphrase: viper.GetString("wallet.passphrase"),
		PrivateKey: viper.GetString("wallet.privateKey"),
		ChainId:    chainId,
	})
	if err != nil {
		ctx.WithField("err", err).Panic("chain.NewWallet failed")
	}
	abis := map[chain.Kind]abi.ABI{}
	if path := viper.GetString("contracts.auctionAbiPath"); path != "" {
		a, err := baseabi.LoadFile(path)
		if err != nil {
			ctx.WithFields(log.Fields{"err": err, "path": path}).Panic("abi.LoadFile failed")
		}
		abis[chain.KindAuction] = a
	}
	gateway := chain.NewGateway(&chain.GatewayCfg{
		Backend:      ethereum.NewThrottledClient(ethClient, viper.GetInt("network.maxInflight")),
		ChainId:      chainId,
		Wallet:       wallet,
		ABIs:         abis,
		PollInterval: viper.GetDuration("tx.pollInterval"),
		PollLimit:    viper.GetInt("tx.pollLimit"),
		TxTimeout:    viper.GetDuration("tx.timeout"),
	})
	registry := contract.NewRegistry(gateway)

	// stores
	var redisCache redis.Service
	if uri := viper.GetString("redis.uri"); uri != "" {
		ctx.Info("init redis")
		pool := redisclient.MustConnect(ctx, &redisclient.Cfg{
			URI:            uri,
			Password:       viper.GetString("redis.password"),
			PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
			Retries:        3,
		})
		redisCache = redis.New(&redis.Cfg{Name: "auctiond", Pool: pool, Met: metrics.New("redis")})
	}
	pref, closePref := initPreference(ctx, chainId, redisCache)
	defer closePref()

	var q query.Mongo
	var deploymentRepo deployment.Repo
	if uri := viper.GetString("mongo.uri"); uri != "" {
		ctx.Info("init mongo")
		q = initMongo(ctx, uri)
		if err := deployment_repository.EnsureIndexes(ctx, q); err != nil {
			ctx.WithField("err", err).Warn("deployment_repository.EnsureIndexes failed")
		}
		deploymentRepo = deployment_repository.NewMongoRepo(q)
	} else {
		ctx.Warn("mongo.uri not set, deployment registry disabled")
	}

	// session and refresh loop
	session := auction_usecase.NewSession(&auction_usecase.SessionCfg{
		Reader:     auction_usecase.NewReader(&auction_usecase.ReaderCfg{Registry: registry}),
		Registry:   registry,
		Preference: pref,
		Metrics:    metrics.New("auction"),
		Operator:   operator,
		Initial:    domain.Address(viper.GetString("contracts.auction")),
	})
	if err := session.Restore(ctx); err != nil {
		ctx.WithField("err", err).Warn("session.Restore failed")
	}

	errCh := make(chan error, 10)
	refresher := tracker.NewAuctionRefresher(&tracker.AuctionRefresherCfg{
		Session:      session,
		Interval:     viper.GetDuration("refresh.interval"),
		TickInterval: viper.GetDuration("refresh.tickInterval"),
		Timeout:      viper.GetDuration("refresh.timeout"),
		Metrics:      metrics.New("refresher"),
		ErrorCh:      errCh,
	})

	manager := deployment_usecase.NewManager(&deployment_usecase.ManagerCfg{
		Registry:       registry,
		TokenFactory:   tokenFactory,
		AuctionFactory: auctionFactory,
		ChainId:        chainId,
		Operator:       operator,
		Repo:           deploymentRepo,
		Metrics:        metrics.New("deployment"),
		OnComplete: func(c bCtx.Ctx, auction domain.Address) error {
			if err := session.SetAuction(c, auction); err != nil {
				return err
			}
			refresher.Trigger()
			return nil
		},
	})

	// http
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	hc_delivery.New(e, hc_usecase.New(hc_repo.New(q, redisCache, registry)))
	auction_delivery.New(e, session, refresher)
	deployment_delivery.New(e, manager)

	refresher.Start(ctx)

	address := viper.GetString("server.address")
	ctx.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		log.Log().WithField("signal", sig).Info("received signal")
	case err := <-errCh:
		log.Log().WithField("err", err).Error("refresher error")
	}

	cancel()
	refresher.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

// initPreference keeps the current auction in process memory, backed by redis
// when configured and by an on-disk store under cache.dir otherwise
func initPreference(ctx bCtx.Ctx, chainId domain.ChainId, redisCache redis.Service) (preference.Repo, func()) {
	sizeMB := viper.GetInt("cache.sizeMB")
	if sizeMB <= 0 {
		sizeMB = 1
	}
	layers := []provider.Provider{
		primitive.NewPrimitive("preference", sizeMB),
	}
	closeFn := func() {}
	if redisCache != nil {
		layers = append(layers, redisProvider.NewRedis(redisCache))
	} else if dir := viper.GetString("cache.dir"); dir != "" {
		ctx.WithField("dir", dir).Info("init disk cache")
		db, err := disk.Open(dir)
		if err != nil {
			ctx.WithFields(log.Fields{"err": err, "dir": dir}).Panic("disk.Open failed")
		}
		layers = append(layers, disk.NewDisk("preference", db))
		closeFn = func() {
			if err := db.Close(); err != nil {
				ctx.WithField("err", err).Error("disk cache close failed")
			}
		}
	} else {
		ctx.Warn("neither redis.uri nor cache.dir set, current auction kept in memory only")
	}
	return preference_repository.NewCacheRepo(chainId, compound.NewCompound(layers)), closeFn
}

func initMongo(ctx bCtx.Ctx, uri string) query.Mongo {
	mongoClient := mongoclient.MustConnect(ctx, &mongoclient.Cfg{
		URI:                uri,
		AuthDBName:         viper.GetString("mongo.authDBName"),
		DBName:             viper.GetString("mongo.dbName"),
		SSL:                viper.GetBool("mongo.enableSSL"),
		Majority:           true,
		PoolSizeMultiplier: 2,
	})
	return query.New(mongoClient, viper.GetBool("mongo.checkIndex"))
}
