package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignatzorin/freelance-escrow/internal/config"
	"github.com/ignatzorin/freelance-escrow/internal/goroutine"
	httpHandlers "github.com/ignatzorin/freelance-escrow/internal/http/handlers"
	httpRouter "github.com/ignatzorin/freelance-escrow/internal/http/router"
	"github.com/ignatzorin/freelance-escrow/internal/logger"
	"github.com/ignatzorin/freelance-escrow/internal/repository"
	"github.com/ignatzorin/freelance-escrow/internal/service"
	"github.com/ignatzorin/freelance-escrow/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Леджер — единственный источник состояния движка.
	ledger := repository.NewLedger(cfg.OwnerAddress, cfg.PlatformFeeBps)

	// Вебсокеты: публичная лента доменных событий.
	hub := ws.NewHub(ctx)
	goroutine.SafeGo(hub.Run)
	events := ws.NewEventBroadcaster(hub)

	// Приёмник исходящих платежей. In-memory кошелёк; на проде сюда
	// подключается интеграция с реальным платёжным контуром.
	sink := service.NewWalletSink()

	// Сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	identityService := service.NewIdentityService(ledger, events)
	jobService := service.NewJobService(ledger, events)
	proposalService := service.NewProposalService(ledger, events)
	escrowService := service.NewEscrowService(ledger, events, sink)
	disputeService := service.NewDisputeService(ledger, events, sink)
	adminService := service.NewAdminService(ledger, sink)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(tokenManager)
	identityHandler := httpHandlers.NewIdentityHandler(identityService)
	jobHandler := httpHandlers.NewJobHandler(jobService, proposalService, escrowService)
	proposalHandler := httpHandlers.NewProposalHandler(proposalService)
	milestoneHandler := httpHandlers.NewMilestoneHandler(escrowService)
	disputeHandler := httpHandlers.NewDisputeHandler(disputeService)
	adminHandler := httpHandlers.NewAdminHandler(adminService, escrowService)
	paymentHandler := httpHandlers.NewPaymentHandler(adminService, escrowService)
	wsHandler := httpHandlers.NewWSHandler(hub)
	healthHandler := httpHandlers.NewHealthHandler(ledger)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, identityHandler, jobHandler, proposalHandler, milestoneHandler, disputeHandler, adminHandler, paymentHandler, wsHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}
