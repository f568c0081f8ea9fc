package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	"github.com/rohitdhavare/my-expenses-tracker/internal/alerting"
	"github.com/rohitdhavare/my-expenses-tracker/internal/amqp"
	"github.com/rohitdhavare/my-expenses-tracker/internal/clock"
	"github.com/rohitdhavare/my-expenses-tracker/internal/config"
	"github.com/rohitdhavare/my-expenses-tracker/internal/database"
	"github.com/rohitdhavare/my-expenses-tracker/internal/handlers"
	"github.com/rohitdhavare/my-expenses-tracker/internal/logger"
	"github.com/rohitdhavare/my-expenses-tracker/internal/middleware"
	"github.com/rohitdhavare/my-expenses-tracker/internal/services"
	"github.com/rohitdhavare/my-expenses-tracker/internal/validator"

	_ "github.com/rohitdhavare/my-expenses-tracker/internal/docs" // Import swagger docs
)

// @title           Expense Tracker API
// @version         1.0
// @description     Track expenses against category budgets and get alerted before limits are hit and bills fall due.

// @host      localhost:8080
// @BasePath  /api/v1

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("Failed to close database", "error", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Optional notification fan-out
	var publisher alerting.Publisher
	if cfg.AMQP.URL != "" {
		p, err := amqp.NewPublisher(cfg.AMQP)
		if err != nil {
			log.Warnw("Notification publishing disabled", "error", err)
		} else {
			defer func() { _ = p.Close() }()
			publisher = p
			log.Infow("Publishing notifications", "exchange", cfg.AMQP.Exchange)
		}
	}

	// Initialize services
	db := dbManager.DB()
	clk := clock.System{Location: cfg.Location()}
	messages := alerting.Messages{CurrencySymbol: cfg.Alerts.CurrencySymbol}

	userService := services.NewUserService(db)
	notificationService := services.NewNotificationService(db)
	dedup := alerting.NewDeduplicator(notificationService, clk, cfg.Alerts.DedupWindow)
	sink := alerting.NewSink(userService, notificationService, dedup, clk, publisher)

	aggregator := alerting.NewSpendAggregator(services.NewExpenseFinder(db))
	evaluator := alerting.NewEvaluator(cfg.Alerts.ApproachingRatio, messages)
	budgetService := services.NewBudgetService(db, aggregator, evaluator)
	checker := alerting.NewBudgetChecker(userService, budgetService, aggregator, evaluator, sink)

	expenseService := services.NewExpenseService(db, clk, checker)
	billService := services.NewRecurringBillService(db, clk, sink, messages)
	scheduler := alerting.NewBillReminderScheduler(billService, dedup, sink, clk, messages)

	// Initialize handlers
	routes := &handlers.Router{
		Users:          handlers.NewUserHandler(userService),
		Expenses:       handlers.NewExpenseHandler(expenseService),
		Budgets:        handlers.NewBudgetHandler(budgetService, checker, clk),
		RecurringBills: handlers.NewRecurringBillHandler(billService),
		Notifications:  handlers.NewNotificationHandler(notificationService),
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.Register(router.Group("/api/v1"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Starting expense tracker server on port %s", cfg.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Scheduler.Enabled {
		g.Go(func() error {
			return scheduler.Run(ctx, cfg.Scheduler.Spec, cfg.Location())
		})
	} else {
		log.Info("Bill reminder scheduler disabled")
	}

	return g.Wait()
}
