package main

import (
	"fmt"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/delivery/http/controllers"
	"medtour-service/internal/app/delivery/http/middlewares"
	"medtour-service/internal/app/delivery/http/routers"
	"medtour-service/internal/app/drivers/messaging"
	"medtour-service/internal/app/services/core/admin"
	caseEvents "medtour-service/internal/app/services/core/case_events"
	"medtour-service/internal/app/services/core/cases"
	"medtour-service/internal/app/services/core/cities"
	"medtour-service/internal/app/services/core/documents"
	"medtour-service/internal/app/services/core/payments"
	"medtour-service/internal/app/services/core/stages"
	"medtour-service/internal/app/services/shared/eventbus"
	"medtour-service/internal/app/services/shared/locker"
	paymentGateway "medtour-service/internal/app/services/shared/payment_gateway"
	"medtour-service/internal/app/services/shared/redis"
	sharedStorage "medtour-service/internal/app/services/shared/storage"
	"medtour-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

func bootstrapingTheApp(bootstrap config.Bootstrap) (*admin.StaleAuthorizationWorker, error) {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Stage engine
	engine := stages.NewEngine(stages.NewPricing(internalConfig.Pricing))

	// Redis
	var redisRepository contracts.RedisRepository
	var lockerService contracts.LockerService
	if bootstrap.Redis != nil {
		redisRepository = redis.NewRedisRepository(bootstrap.Redis)
		lockerService = locker.NewLockService(redisRepository, log)
	}

	// Case store and reference data
	var caseRepository contracts.CaseRepository
	var cityRepository contracts.CityRepository
	switch internalConfig.App.CaseStoreDriver {
	case constvars.CaseStoreDriverPostgres:
		caseRepository = cases.NewCasePostgresRepository(bootstrap.PostgresDB, log)
		cityRepository = cities.NewCityPostgresRepository(bootstrap.PostgresDB, log)
	case constvars.CaseStoreDriverMemory:
		caseRepository = cases.NewCaseMemoryRepository()
		cityRepository = cities.NewCityMemoryRepository(cities.SeedHospitals)
	default:
		return nil, fmt.Errorf("unknown case store driver %q", internalConfig.App.CaseStoreDriver)
	}

	// Audit trail
	var caseEventRepository contracts.CaseEventRepository
	if bootstrap.MongoDB != nil {
		caseEventRepository = caseEvents.NewCaseEventMongoRepository(bootstrap.MongoDB.Database(internalConfig.MongoDB.DBName))
	} else {
		caseEventRepository = caseEvents.NewCaseEventMemoryRepository()
	}

	var caseEventPublisher contracts.CaseEventPublisher
	if bootstrap.RabbitMQ != nil {
		queue := internalConfig.RabbitMQ.CaseEventsQueue
		caseEventPublisher = eventbus.NewCaseEventPublisher(messaging.NewQueueChannel(bootstrap.RabbitMQ, queue), queue)
	}

	// Payment gateway
	var paymentGatewayService contracts.PaymentGatewayService
	switch internalConfig.PaymentGateway.Provider {
	case constvars.PaymentGatewayPaypal:
		paymentGatewayService = paymentGateway.NewPaypalService(internalConfig, redisRepository, log)
	case constvars.PaymentGatewayManual:
		paymentGatewayService = paymentGateway.NewManualService(log)
	default:
		return nil, fmt.Errorf("unknown payment gateway provider %q", internalConfig.PaymentGateway.Provider)
	}

	// Object storage
	var storageService contracts.StorageService
	if bootstrap.Minio != nil {
		storageService = sharedStorage.NewMinioStorage(bootstrap.Minio)
	}

	// Usecases
	caseEventUsecase := caseEvents.NewCaseEventUsecase(caseEventRepository, caseEventPublisher, log)
	cityUsecase := cities.NewCityUsecase(cityRepository, redisRepository, log)
	caseUsecase := cases.NewCaseUsecase(caseRepository, cityUsecase, caseEventUsecase, engine, log)
	adminUsecase := admin.NewAdminUsecase(caseRepository, caseEventUsecase, paymentGatewayService, lockerService, engine, internalConfig, log)
	paymentUsecase := payments.NewPaymentUsecase(caseRepository, caseEventUsecase, paymentGatewayService, lockerService, engine, internalConfig, log)
	documentUsecase := documents.NewDocumentUsecase(storageService, internalConfig, log)

	staleAuthorizationWorker := admin.NewStaleAuthorizationWorker(log, internalConfig, lockerService, adminUsecase)

	// Controllers
	caseController := controllers.NewCaseController(log, caseUsecase, internalConfig)
	adminController := controllers.NewAdminController(log, adminUsecase, caseEventUsecase, internalConfig)
	cityController := controllers.NewCityController(log, cityUsecase, internalConfig)
	paymentController := controllers.NewPaymentController(log, paymentUsecase, internalConfig)
	webhookController := controllers.NewWebhookController(log, paymentUsecase, internalConfig)
	documentController := controllers.NewDocumentController(log, documentUsecase, internalConfig)

	middlewares := middlewares.NewMiddlewares(log, internalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		caseController,
		adminController,
		cityController,
		paymentController,
		webhookController,
		documentController,
	)

	log.Info("Application bootstrapped",
		zap.Bool("redis", redisRepository != nil),
		zap.Bool("mongodb", bootstrap.MongoDB != nil),
		zap.Bool("rabbitmq", caseEventPublisher != nil),
		zap.Bool("minio", storageService != nil),
	)
	return staleAuthorizationWorker, nil
}
