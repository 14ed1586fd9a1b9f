package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/atrium/api/internal/config"
	"github.com/forgo/atrium/api/internal/database"
	"github.com/forgo/atrium/api/internal/handler"
	"github.com/forgo/atrium/api/internal/jobs"
	"github.com/forgo/atrium/api/internal/middleware"
	"github.com/forgo/atrium/api/internal/repository"
	"github.com/forgo/atrium/api/internal/service"
	"github.com/forgo/atrium/api/pkg/jwt"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})
	if err := db.Connect(context.Background()); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		return fmt.Errorf("initialize JWT service: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService:      jwtService,
		TokenRepo:       tokenRepo,
		RefreshDuration: cfg.Auth.RefreshDuration,
	})
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})
	roomService := service.NewRoomService(service.RoomServiceConfig{
		RoomRepo: roomRepo,
	})
	reservationService := service.NewReservationService(service.ReservationServiceConfig{
		ReservationRepo: reservationRepo,
		RoomRepo:        roomRepo,
	})
	scheduleService := service.NewScheduleService(service.ScheduleServiceConfig{
		RoomRepo:        roomRepo,
		ReservationRepo: reservationRepo,
	})

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.Limits.Rate,
		Window: time.Minute,
		Burst:  cfg.Limits.Burst,
	})
	defer rateLimiter.Stop()

	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     24 * time.Hour,
		Cleanup: time.Hour,
	})
	defer idempotencyStore.Stop()

	tokenSweeper := jobs.NewTokenSweeper(tokenService, cfg.Auth.SweepInterval)
	tokenSweeper.Start()
	defer tokenSweeper.Stop()

	mux := newRouter(routerDeps{
		db:                 db,
		tokenService:       tokenService,
		authService:        authService,
		roomService:        roomService,
		reservationService: reservationService,
		scheduleService:    scheduleService,
	})

	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(idempotencyStore),
		middleware.Compress,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	slog.Info("server exited")
	return nil
}

type routerDeps struct {
	db                 database.Database
	tokenService       *service.TokenService
	authService        *service.AuthService
	roomService        *service.RoomService
	reservationService *service.ReservationService
	scheduleService    *service.ScheduleService
}

func newRouter(deps routerDeps) *http.ServeMux {
	healthHandler := handler.NewHealthHandler(deps.db)
	authHandler := handler.NewAuthHandler(deps.authService)
	roomHandler := handler.NewRoomHandler(deps.roomService, deps.reservationService)
	reservationHandler := handler.NewReservationHandler(deps.reservationService)
	scheduleHandler := handler.NewScheduleHandler(deps.scheduleService)

	authed := middleware.Auth(deps.tokenService)
	admin := middleware.AdminAuth(deps.tokenService)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /v1/auth/refresh", authHandler.Refresh)

	// Auth endpoints (protected)
	mux.Handle("POST /v1/auth/logout", authed(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /v1/auth/me", authed(http.HandlerFunc(authHandler.Me)))

	// Room endpoints (reads for any authenticated user, writes admin only)
	mux.Handle("GET /v1/rooms", authed(http.HandlerFunc(roomHandler.List)))
	mux.Handle("GET /v1/rooms/{id}", authed(http.HandlerFunc(roomHandler.Get)))
	mux.Handle("GET /v1/rooms/{id}/reservations", authed(http.HandlerFunc(roomHandler.Reservations)))
	mux.Handle("POST /v1/rooms", admin(http.HandlerFunc(roomHandler.Create)))
	mux.Handle("PATCH /v1/rooms/{id}", admin(http.HandlerFunc(roomHandler.Update)))
	mux.Handle("DELETE /v1/rooms/{id}", admin(http.HandlerFunc(roomHandler.Delete)))

	// Reservation endpoints
	mux.Handle("POST /v1/reservations", authed(http.HandlerFunc(reservationHandler.Create)))
	mux.Handle("GET /v1/reservations/{id}", authed(http.HandlerFunc(reservationHandler.Get)))
	mux.Handle("DELETE /v1/reservations/{id}", authed(http.HandlerFunc(reservationHandler.Delete)))
	mux.Handle("GET /v1/profile/reservations", authed(http.HandlerFunc(reservationHandler.Mine)))
	mux.Handle("PATCH /v1/profile/password", authed(http.HandlerFunc(authHandler.ChangePassword)))

	// Schedule endpoint (day grid across all rooms)
	mux.Handle("GET /v1/schedule", authed(http.HandlerFunc(scheduleHandler.Day)))

	return mux
}
