package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	confcache "employees/internal/conference/cache"
	confhandler "employees/internal/conference/handler"
	confstore "employees/internal/conference/store"
	emphandler "employees/internal/employee/handler"
	empmetrics "employees/internal/employee/metrics"
	empservice "employees/internal/employee/service"
	empstore "employees/internal/employee/store"
	"employees/internal/notification"
	"employees/internal/platform/config"
	"employees/internal/platform/httpserver"
	"employees/internal/platform/kafka"
	"employees/internal/platform/logger"
	platformmetrics "employees/internal/platform/metrics"
	"employees/internal/platform/postgres"
	platformredis "employees/internal/platform/redis"
	httptransport "employees/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	db, err := postgres.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}

	producer, err := kafka.NewProducer(kafka.Config{
		BootstrapServers: cfg.Kafka.BootstrapServers,
		DeliveryTimeout:  cfg.Kafka.DeliveryTimeout,
	}, log)
	if err != nil {
		return err
	}
	defer producer.Close()
	if err := producer.EnsureTopics(ctx, cfg.Kafka.EmployeeCreatedTopic, cfg.Kafka.MoveToConferenceTopic); err != nil {
		return err
	}

	employees := empstore.NewPostgres(db)
	conferences := confstore.NewPostgres(db)

	var conferenceLookup empservice.ConferenceStore = conferences
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		conferenceLookup = confcache.New(conferences, redisClient.Client, cfg.Redis.CacheTTL, log)
	}

	pool, err := cfg.ManagerPool()
	if err != nil {
		return err
	}
	composer, err := notification.NewComposer(pool)
	if err != nil {
		return err
	}

	svc, err := empservice.New(
		employees,
		conferenceLookup,
		newEmployeePostgresTx(db),
		producer,
		composer,
		empservice.Topics{
			EmployeeCreated:  cfg.Kafka.EmployeeCreatedTopic,
			MoveToConference: cfg.Kafka.MoveToConferenceTopic,
		},
		empservice.WithLogger(log),
		empservice.WithMetrics(empmetrics.New()),
	)
	if err != nil {
		return err
	}

	health := func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		if redisClient != nil {
			return redisClient.Health(ctx)
		}
		return nil
	}

	router := httptransport.NewRouter(log, platformmetrics.New(), health,
		emphandler.New(svc, log),
		confhandler.New(conferences, log),
	)
	srv := httpserver.New(cfg.HTTP.Addr, router)

	log.Info("starting employees service", "addr", cfg.HTTP.Addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
