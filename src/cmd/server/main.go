package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/api-sage/core-banking/src/internal/adapter/events"
	"github.com/api-sage/core-banking/src/internal/adapter/http/controller"
	"github.com/api-sage/core-banking/src/internal/adapter/http/middleware"
	"github.com/api-sage/core-banking/src/internal/adapter/http/router"
	"github.com/api-sage/core-banking/src/internal/adapter/lock"
	"github.com/api-sage/core-banking/src/internal/adapter/repository/memory"
	"github.com/api-sage/core-banking/src/internal/adapter/repository/postgres"
	"github.com/api-sage/core-banking/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/src/internal/config"
	"github.com/api-sage/core-banking/src/internal/logger"
	"github.com/api-sage/core-banking/src/internal/usecase/service_interfaces"
	"github.com/api-sage/core-banking/src/internal/usecase/services"
	"github.com/api-sage/core-banking/src/internal/usecase/trackingid"
)

type repositories struct {
	accounts     repo_interfaces.AccountRepository
	customers    repo_interfaces.CustomerRepository
	loans        repo_interfaces.LoanRepository
	transactions repo_interfaces.TransactionRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg); err != nil {
		logger.Error("server stopped with error", err, nil)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepos()

	locker, closeLocker, err := newLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	publisher, closePublisher := newPublisher(cfg)
	defer closePublisher()

	ledger := services.NewTransactionService(repos.transactions, repos.accounts, trackingid.New(), publisher)
	accountService := services.NewAccountService(repos.accounts, repos.customers, ledger, locker)
	loanService := services.NewLoanService(repos.loans, accountService, locker)
	customerService := services.NewCustomerService(repos.customers, repos.accounts)

	handler := router.New(
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey, cfg.ChannelKeyHash),
		controller.NewAccountController(accountService),
		controller.NewLoanController(loanService),
		controller.NewTransactionController(ledger),
		controller.NewCustomerController(customerService),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("http server listening", logger.Fields{
			"addr":    cfg.HTTPAddr,
			"env":     cfg.Env,
			"storage": cfg.StorageDriver,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("http server shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func openRepositories(ctx context.Context, cfg config.Config) (repositories, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("using in-memory storage; data is lost on restart", nil)
		transactions := memory.NewTransactionRepository()
		return repositories{
			accounts:     memory.NewAccountRepository(transactions),
			customers:    memory.NewCustomerRepository(),
			loans:        memory.NewLoanRepository(),
			transactions: transactions,
		}, func() {}, nil
	}

	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(startupCtx, cfg.DatabaseDSN); err != nil {
		return repositories{}, nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := postgres.Open(startupCtx, cfg.DatabaseDSN)
	if err != nil {
		return repositories{}, nil, err
	}

	return repositories{
			accounts:     postgres.NewAccountRepository(db),
			customers:    postgres.NewCustomerRepository(db),
			loans:        postgres.NewLoanRepository(db),
			transactions: postgres.NewTransactionRepository(db),
		}, func() {
			if err := db.Close(); err != nil {
				logger.Error("close postgres", err, nil)
			}
		}, nil
}

func newLocker(ctx context.Context, cfg config.Config) (service_interfaces.Locker, func(), error) {
	if !cfg.RedisEnabled() {
		return lock.NewLocal(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("using redis account locks", logger.Fields{"addr": cfg.RedisAddr})
	return lock.NewRedis(client, cfg.LockTTL, cfg.LockWait), func() {
		if err := client.Close(); err != nil {
			logger.Error("close redis", err, nil)
		}
	}, nil
}

func newPublisher(cfg config.Config) (service_interfaces.EventPublisher, func()) {
	if !cfg.KafkaEnabled() {
		return events.NopPublisher{}, func() {}
	}

	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	logger.Info("publishing ledger events", logger.Fields{"topic": cfg.KafkaTopic})
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("close kafka writer", err, nil)
		}
	}
}
