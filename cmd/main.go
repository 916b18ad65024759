package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/adapter/judge0"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/adapter/postgres/submissionrepository"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/adapter/problemapi"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/adapter/redis/problemcache"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/config"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/workbench"
	logger2 "github.com/Diploma-Survivors/vibe-match-workbench/internal/global/logger"
	http2 "github.com/Diploma-Survivors/vibe-match-workbench/internal/http"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/watchdog"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/ws"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting workbench service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})

	// SECONDARY PORTS
	problemClient := problemapi.NewClient(sysCfg.ProblemAPICfg, logger)
	problemSource := problemcache.New(redisClient, problemClient, sysCfg.ProblemAPICfg.CacheTTL, logger)
	judgeClient := judge0.NewClient(sysCfg.JudgeConfig, logger)
	submissionRepo := submissionrepository.NewSubmissionRepository(db, logger)

	// services
	workbenchSvc := workbench.NewWorkbenchService(problemSource, judgeClient, submissionRepo, logger)
	serviceProvider := http2.NewServiceProvider(workbenchSvc, problemSource, submissionRepo)

	// server
	gateway := ws.NewGateway(workbenchSvc, logger)
	httpServer := http2.NewServer(sysCfg.ServerConfig.Port, sysCfg.ServerConfig.ServiceName, *serviceProvider, gateway, logger)
	err = httpServer.Init()
	if err != nil {
		panic(err)
	}

	ctxBg, stopBackground := context.WithCancel(context.Background())
	httpServer.Start(ctxBg)

	watchdogSvc := watchdog.NewWatchdog(sysCfg.WorkbenchCfg, workbenchSvc, logger)
	watchdogSvc.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	stopBackground()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	if err := db.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close redis client", "error", err)
	}

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
