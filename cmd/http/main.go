package main

import (
	"context"
	"flag"
	"fmt"
	"medtour-service/cmd/migration"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/drivers/database"
	"medtour-service/internal/app/drivers/logger"
	"medtour-service/internal/app/drivers/messaging"
	"medtour-service/internal/app/drivers/storage"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version and Tag are set at build time with -ldflags.
var (
	Version = "develop"
	Tag     = "0.0.1-rc"
)

func main() {
	runMigrations := flag.Bool("migrate", false, "apply pending migrations before serving")
	migrationDir := flag.String("migration-dir", "internal/migration", "directory holding the SQL migrations")
	issueTokenFor := flag.String("issue-token", "", "print a signed identity token for this email and exit")
	issueTokenRole := flag.String("issue-token-role", "patient", "role claim for -issue-token")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	if *issueTokenFor != "" {
		token, err := utils.GenerateActorJWT(*issueTokenFor, *issueTokenFor, *issueTokenRole, internalConfig.JWT.Secret, internalConfig.JWT.ExpTimeInHour)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot issue token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	log := logger.NewZapLogger(driverConfig, internalConfig)
	log.Info("Starting medtour-service",
		zap.String("build_version", Version),
		zap.String("build_tag", Tag),
		zap.String("case_store", internalConfig.App.CaseStoreDriver),
		zap.String("payment_gateway", internalConfig.PaymentGateway.Provider),
	)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.String("timezone", internalConfig.App.Timezone), zap.Error(err))
	}
	time.Local = location

	bootstrap := config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if internalConfig.App.CaseStoreDriver == constvars.CaseStoreDriverPostgres {
		bootstrap.PostgresDB = database.NewPostgresDB(driverConfig)
		if *runMigrations {
			if _, err := migration.Run(bootstrap.PostgresDB, *migrationDir, log); err != nil {
				log.Fatal("Error applying migrations", zap.Error(err))
			}
		}
	}
	if driverConfig.Redis.Enabled {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}
	if driverConfig.MongoDB.Enabled {
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
	}
	if driverConfig.RabbitMQ.Enabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}
	if driverConfig.Minio.Enabled {
		bootstrap.Minio = storage.NewMinio(driverConfig, internalConfig)
	}

	staleAuthorizationWorker, err := bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatal("Error bootstraping the app", zap.Error(err))
	}
	staleAuthorizationWorker.Start(context.Background())

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	staleAuthorizationWorker.Stop()

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Error("Error closing drivers", zap.Error(err))
	}

	log.Info("Server exiting")
}
