// Package main is the entry point for the hello demo server: a loopback TCP
// server that dispatches each accepted connection to a fixed-size thread pool
// and shuts the pool down gracefully after a bounded number of requests.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xoldyckk/hello"
)

func main() {
	var (
		configFile  = flag.String("config", "", "config file path (YAML)")
		addr        = flag.String("addr", "", "listen address (default 127.0.0.1:7878)")
		workers     = flag.Int("workers", 0, "thread pool size")
		maxRequests = flag.Int("requests", 0, "number of connections to serve before shutting down")
		assets      = flag.String("assets", "", "directory containing hello.html and 404.html")
		sleepFor    = flag.Duration("sleep", 0, "how long GET /sleep stalls its worker")
		metricsAddr = flag.String("metrics-addr", "", "expose Prometheus metrics on this address (disabled when empty)")
		debug       = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	cfg := defaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = loadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hello: %v\n", err)
			os.Exit(1)
		}
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *maxRequests > 0 {
		cfg.MaxRequests = *maxRequests
	}
	if *assets != "" {
		cfg.AssetsDir = *assets
	}
	if *sleepFor > 0 {
		cfg.SleepFor = *sleepFor
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg serverConfig, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}
	defer ln.Close()

	var metrics *hello.Metrics
	if cfg.MetricsAddr != "" {
		metrics = hello.NewMetrics("hello", "pool")
		go serveMetrics(cfg.MetricsAddr, logger)
	}

	pool := hello.NewThreadPool(cfg.Workers, hello.WithLogger(logger), hello.WithMetrics(metrics))

	s := &server{cfg: cfg, logger: logger}
	logger.Info("listening",
		slog.String("addr", cfg.Addr),
		slog.Int("workers", cfg.Workers),
		slog.Int("max_requests", cfg.MaxRequests))

	s.serve(ln, pool)

	logger.Info("shutting down")
	pool.Close()

	return nil
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("metrics server failed", slog.Any("error", err))
	}
}
