package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"car-inventory-service/internal/auth"
	"car-inventory-service/internal/config"
	"car-inventory-service/internal/handler"
	"car-inventory-service/internal/middleware"
	mongoclient "car-inventory-service/internal/mongo"
	"car-inventory-service/internal/repository"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	client, err := mongoclient.Connect(context.Background(), cfg.Mongo.URI)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("mongo disconnect failed", zap.Error(err))
		}
	}()
	db := client.Database(cfg.Mongo.Database)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)
	cars := repository.NewCarRepository(db)
	users := repository.NewUserRepository(db)

	router := buildRouter(cfg, logger, verifier, cars, users)

	srv := &http.Server{
		Addr:           cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

func buildRouter(cfg *config.Config, logger *zap.Logger, verifier *auth.Verifier,
	cars repository.CarStore, users repository.UserStore) *gin.Engine {

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.CORS(),
		middleware.BodyLimit(cfg.Upload.MaxBodySize))
	r.MaxMultipartMemory = cfg.Upload.MaxBodySize

	userHandler := &handler.UserHandler{
		Store:    users,
		Verifier: verifier,
		TokenTTL: cfg.Auth.TokenTTL,
		Log:      logger,
	}
	carHandler := &handler.CarHandler{Store: cars, Log: logger}

	api := r.Group("/api")

	// Open routes: signup and login only.
	userHandler.RegisterRoutes(api)

	// Everything under /api/cars requires a bearer token; ownership scoping
	// is impossible without an identity.
	protected := api.Group("/")
	protected.Use(middleware.RequireAuth(verifier, logger))
	carHandler.RegisterRoutes(protected)

	return r
}
