package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/metrics"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/bitcoin"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/repository/clickhouse"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/service/ingester"
)

type config struct {
	ClickhouseDSN string `long:"clickhouse-dsn" env:"TXINSIGHT_INGESTER_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	Network       string `long:"network" env:"TXINSIGHT_INGESTER_NETWORK" description:"network name" required:"true"`
	StartHeight   uint64 `long:"start-height" env:"TXINSIGHT_INGESTER_START_HEIGHT" description:"height to start ingestion from on an empty database" default:"0"`
	RPCURL        string `long:"rpc-url" env:"TXINSIGHT_INGESTER_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string `long:"rpc-user" env:"TXINSIGHT_INGESTER_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string `long:"rpc-password" env:"TXINSIGHT_INGESTER_RPC_PASSWORD" description:"Bitcoin RPC password"`
	MetricsAddr   string `long:"metrics-addr" env:"TXINSIGHT_INGESTER_METRICS_ADDR" description:"Prometheus metrics listen address" default:":9100"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("txinsight ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network, err := parseNetwork(cfg.Network)
	if err != nil {
		return err
	}

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Error("close repository", zap.Error(closeErr))
		}
	}()

	rpc, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init btc rpc client: %w", err)
	}
	defer func() {
		rpc.Shutdown()
		rpc.WaitForShutdown()
	}()

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, logger)
	}

	source, err := bitcoin.NewSource(
		bitcoin.NewRPCClient(rpc, metrics.NewRPCClient(model.BTC, network)),
		bitcoin.NewTxConverter(network),
		network,
	)
	if err != nil {
		return fmt.Errorf("init block source: %w", err)
	}

	svc, err := ingester.New(
		repo,
		source,
		metrics.NewIngester(model.BTC, network),
		model.BTC,
		network,
		cfg.StartHeight,
		logger,
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func parseNetwork(name string) (model.Network, error) {
	switch model.Network(name) {
	case model.Mainnet, model.Testnet, model.Regtest:
		return model.Network(name), nil
	default:
		return "", fmt.Errorf("unknown network %q", name)
	}
}

func serveMetrics(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()

	logger.Info("starting metrics server", zap.String("addr", addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server failed", zap.Error(err))
	}
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	cfg := &rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}

	return rpcclient.New(cfg, nil)
}
