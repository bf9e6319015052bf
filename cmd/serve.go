package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/rueidis"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "task-market.com/task-market/internal/configs"
	httpapi "task-market.com/task-market/internal/http"
	"task-market.com/task-market/internal/locks"
	"task-market.com/task-market/internal/metrics"
	"task-market.com/task-market/internal/notifications"
	repository "task-market.com/task-market/internal/repositories"
	"task-market.com/task-market/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task marketplace HTTP API and the notification workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger := config.NewLogger(cfg.Env, cfg.LogLevel)

		database := config.NewDatabaseClient(cfg.DatabaseDSN, logger)
		store := repository.NewStore(database)

		var redisClient rueidis.Client
		if cfg.UsesRedis() {
			redisClient = config.NewRedisClient(cfg, logger)
			defer redisClient.Close()
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(registry)

		locker := newTaskLocker(cfg, redisClient)
		dispatcher := notifications.NewDispatcher(
			newPublisher(cfg, redisClient, logger),
			cfg.NotifyWorkers,
			cfg.NotifyQueueSize,
			logger,
			m,
		)

		policy := services.OfferPolicy{
			MinMessageLength: cfg.OfferMinMessageLength,
			MinHourlyRate:    cfg.OfferMinHourlyRate,
		}

		handler := httpapi.NewHandler(
			services.NewTaskService(store, locker, logger, m),
			services.NewOfferService(store, locker, policy, logger, m),
			services.NewAcceptanceService(store, locker, logger, m),
			services.NewSkillService(store, logger),
			dispatcher,
			logger,
		)

		e := echo.New()
		e.HideBanner = true
		httpapi.Register(e, handler, httpapi.RouteOptions{
			RateLimitPerMinute:  cfg.RateLimit,
			RateLimitBurst:      cfg.RateLimitBurst,
			JWTSecret:           []byte(cfg.JWTSecret),
			AllowHeaderIdentity: cfg.AllowHeaderIdentity,
			Metrics:             m,
			Gatherer:            registry,
			Logger:              logger,
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.WithFields(logrus.Fields{
				"addr":   cfg.AppURL,
				"lock":   cfg.LockBackend,
				"notify": cfg.NotifyBackend,
			}).Info("HTTP server listening")
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("server stopped")
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("http shutdown incomplete")
		}
		dispatcher.Shutdown(shutdownCtx)

		logger.Info("HTTP server and notification workers shut down gracefully")
		return nil
	},
}

func newTaskLocker(cfg config.Config, client rueidis.Client) locks.TaskLocker {
	if cfg.LockBackend == config.BackendRedis {
		return locks.NewRedisTaskLocker(
			client,
			cfg.LockKeyPrefix,
			time.Duration(cfg.LockTTLSeconds)*time.Second,
			time.Duration(cfg.LockWaitMilliseconds)*time.Millisecond,
		)
	}
	return locks.NewLocalTaskLocker()
}

func newPublisher(cfg config.Config, client rueidis.Client, logger logrus.FieldLogger) notifications.Publisher {
	if cfg.NotifyBackend == config.BackendRedis {
		return notifications.NewRedisPublisher(client, cfg.NotifyChannel)
	}
	return notifications.NewLogPublisher(logger)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
