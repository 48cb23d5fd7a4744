package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"

	"restaurant-system/config"
	"restaurant-system/handlers"
	_ "restaurant-system/migrations"
	"restaurant-system/monitoring"
	"restaurant-system/services"
	"restaurant-system/stores"
	"restaurant-system/utils"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Initialize PubNub (push notifications are optional; polling still works)
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey
		pn = pubnub.NewPubNub(pnConfig)
	} else {
		log.Println("PubNub keys not set, push notifications disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	go handleShutdown(cancel)

	var monitor *monitoring.Monitor
	if cfg.EnableMetrics {
		monitor = monitoring.NewMonitor(ctx, app)
	}

	// Initialize stores and services
	queueStore := stores.NewQueueStore(app)
	reservationStore := stores.NewReservationStore(app)
	waitingStore := stores.NewWaitingStore(app)
	tableStore := stores.NewTableStore(app)

	queueService := services.NewQueueService(queueStore, reservationStore, redisClient, pn, monitor, cfg)
	reservationService := services.NewReservationService(reservationStore, waitingStore, tableStore, queueService, monitor)

	// Initialize handlers
	queueHandler := handlers.NewQueueHandler(queueService)
	reservationHandler := handlers.NewReservationHandler(reservationService)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Queue endpoints (static before dynamic)
		e.Router.GET("/api/queue", queueHandler.List)
		e.Router.POST("/api/queue/join", queueHandler.Join)
		e.Router.GET("/api/queue/check-availability", queueHandler.CheckAvailability)
		e.Router.GET("/api/queue/poll", queueHandler.Poll)
		e.Router.GET("/api/queue/debug", queueHandler.Debug)
		e.Router.DELETE("/api/queue/{entryId}", queueHandler.Cancel)
		e.Router.PATCH("/api/queue/{entryId}", queueHandler.Update)

		// Reservation endpoints
		e.Router.GET("/api/tables", reservationHandler.Tables)
		e.Router.GET("/api/reservations", reservationHandler.List)
		e.Router.POST("/api/reservations", reservationHandler.Create)
		e.Router.GET("/api/reservations/availability", reservationHandler.Availability)
		e.Router.DELETE("/api/reservations/{reservationId}", reservationHandler.Cancel)
		e.Router.GET("/api/reservation-waiting-queue", reservationHandler.ListWaiting)
		e.Router.POST("/api/reservation-waiting-queue", reservationHandler.JoinWaiting)
		e.Router.DELETE("/api/reservation-waiting-queue/{queueId}", reservationHandler.LeaveWaiting)

		// Metrics
		if cfg.EnableMetrics {
			e.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
