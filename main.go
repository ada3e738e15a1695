package main

import (
	"auction-engine/internal/audit"
	bidding "auction-engine/internal/bidService"
	"auction-engine/internal/cache"
	"auction-engine/internal/config"
	lifecycle "auction-engine/internal/lifecycleService"
	"auction-engine/internal/lock"
	"auction-engine/internal/notify"
	proxybid "auction-engine/internal/proxyService"
	"auction-engine/internal/ratelimit"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"auction-engine/internal/worker"
	"auction-engine/utils"
)

func main() {
	cfg := config.Load()

	repo := buildRepository(cfg)
	store := cache.NewMemoryCache()

	locks := lock.NewCoordinator(store, cfg.LockTTL)
	limiter := ratelimit.NewLimiter(store)
	auditor := audit.NewService(repo)

	publisher := notify.NewAsyncPublisher(notify.LogPublisher{}, cfg.NotifyWorkers, cfg.NotifyQueueSize)
	defer publisher.Close()

	proxies := proxybid.NewEngine(repo, store, locks, auditor, publisher)

	bidPool := worker.NewPool("bids", cfg.BidWorkers, cfg.BidQueueSize, worker.RunOnCaller)
	defer bidPool.Stop()

	biddingSvc := bidding.NewBiddingService(repo, store, locks, limiter, auditor, proxies, publisher, bidPool)

	scheduler := lifecycle.NewScheduler(repo, proxies, locks, publisher, store, cfg.SchedulerPeriod)
	scheduler.Start()
	defer scheduler.Stop()

	router := server.SetupRouter(biddingSvc, proxies, cfg.TwoPhase)

	utils.Info("starting auction server", map[string]any{
		"addr":      cfg.Addr,
		"two_phase": cfg.TwoPhase,
	})
	if err := router.Run(cfg.Addr); err != nil {
		utils.Fatal("server stopped", map[string]any{"error": err.Error()})
	}
}

// buildRepository selects MySQL when a DSN is configured and falls back to the
// in-memory store otherwise.
func buildRepository(cfg *config.Config) repository.AuctionDB {
	if cfg.DatabaseDSN == "" {
		utils.Info("no DATABASE_DSN configured, using in-memory repository", nil)
		return repository.NewMemoryRepo()
	}

	repo, err := repository.NewGormRepo(cfg.DatabaseDSN)
	if err != nil {
		utils.Fatal("failed to connect to database", map[string]any{"error": err.Error()})
	}
	return repo
}
