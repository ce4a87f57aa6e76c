package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"go.uber.org/zap"

	"memocache/internal/cache"
	"memocache/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("MEMOCACHE_CONFIG")
	if cfgPath == "" {
		cfgPath = "memocache.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("demo failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	policy := cfg.Cache.Policy()
	logger.Info("memocache demo starting",
		zap.Int("max_entries", policy.MaxEntries),
		zap.Duration("max_age", policy.MaxAge),
		zap.Duration("pool_time", policy.PoolTime),
	)

	// -------------------------------------------------------------------
	// 1) Memoization with the configured policy
	// -------------------------------------------------------------------
	memo, err := cache.New[int, uint64](policy, cache.WithLogger(logger))
	if err != nil {
		return err
	}
	var fib func(n int) uint64
	fib = func(n int) uint64 {
		if n < 2 {
			return uint64(n)
		}
		if v, ok := memo.Get(n); ok {
			return v
		}
		v := fib(n-1) + fib(n-2)
		memo.Set(n, v)
		return v
	}
	logger.Info("fib(80)", zap.Uint64("value", fib(80)), zap.Any("stats", memo.Stats()))

	// -------------------------------------------------------------------
	// 2) Least-used eviction (capacity=2)
	// -------------------------------------------------------------------
	small, err := cache.New[string, string](cache.Config{MaxEntries: 2}, cache.WithLogger(logger))
	if err != nil {
		return err
	}
	small.Set("a", "A")
	small.Set("b", "B")
	small.Get("a") // a now has more reads than b
	small.Set("c", "C")
	logger.Info("after capacity eviction", zap.Strings("keys", slices.Collect(small.Keys())))

	// -------------------------------------------------------------------
	// 3) Two-stage sweep: an unread entry goes on the second sweep
	// -------------------------------------------------------------------
	const pool = 100 * time.Millisecond
	aging, err := cache.New[string, string](cache.Config{MaxAge: pool}, cache.WithLogger(logger))
	if err != nil {
		return err
	}
	aging.Set("cold", "never read")
	aging.Set("hot", "read often")

	ticker := time.NewTicker(pool / 4)
	defer ticker.Stop()
	deadline := time.NewTimer(5 * pool)
	defer deadline.Stop()

	for aging.Contains("cold") {
		select {
		case <-ctx.Done():
			logger.Info("received shutdown signal")
			return nil
		case <-deadline.C:
			return fmt.Errorf("cold entry still cached after %s", 5*pool)
		case <-ticker.C:
			aging.Get("hot")
		}
	}
	logger.Info("cold entry swept",
		zap.Stringer("cache", aging),
		zap.Any("stats", aging.Stats()),
	)
	return nil
}
