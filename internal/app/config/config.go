package config

import (
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		PostgresDB: PostgresDB{
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DBName:   utils.GetEnvString("POSTGRES_DB_NAME", "medtour"),
			SSLMode:  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
		},
		MongoDB: MongoDB{
			Enabled:  utils.GetEnvBool("MONGODB_ENABLED", true),
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Enabled:  utils.GetEnvBool("REDIS_ENABLED", true),
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Enabled:  utils.GetEnvBool("RABBITMQ_ENABLED", true),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Enabled:  utils.GetEnvBool("MINIO_ENABLED", true),
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                         utils.GetEnvString("APP_ENV", constvars.EnvironmentDevelopment),
			Port:                        utils.GetEnvString("APP_PORT", ":8080"),
			Version:                     utils.GetEnvString("APP_VERSION", "v1"),
			Address:                     utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                    utils.GetEnvString("APP_TIMEZONE", "Asia/Shanghai"),
			EndpointPrefix:              utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			CaseStoreDriver:             utils.GetEnvString("APP_CASE_STORE", constvars.CaseStoreDriverPostgres),
			AdminAPIKey:                 utils.GetEnvString("APP_ADMIN_API_KEY", ""),
			MaxRequests:                 utils.GetEnvInt("APP_MAX_REQUEST", 10),
			AdminMaxRequests:            utils.GetEnvInt("APP_ADMIN_MAX_REQUEST", 50),
			ShutdownTimeoutInSeconds:    utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:     utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte:  utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			CaseSubmissionRatePerMinute: utils.GetEnvInt("APP_CASE_SUBMISSION_RATE_PER_MINUTE", 5),
			WebhookRatePerMinute:        utils.GetEnvInt("APP_WEBHOOK_RATE_PER_MINUTE", 120),
			AdminActionLockTTLInSeconds: utils.GetEnvInt("APP_ADMIN_ACTION_LOCK_TTL_IN_SECONDS", 30),
			WebhookDedupeTTLInHours:     utils.GetEnvInt("APP_WEBHOOK_DEDUPE_TTL_IN_HOURS", 72),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			AdminRole:     utils.GetEnvString("JWT_ADMIN_ROLE", "admin"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 1),
		},
		Pricing: AppPricing{
			Currency:            utils.GetEnvString("PRICING_CURRENCY", "USD"),
			Stage1Amount:        utils.GetEnvDecimal("PRICING_STAGE1_AMOUNT", "30.00"),
			Stage2Amount:        utils.GetEnvDecimal("PRICING_STAGE2_AMOUNT", "100.00"),
			Stage3MorningAmount: utils.GetEnvDecimal("PRICING_STAGE3_MORNING_AMOUNT", "120.00"),
			Stage3FullDayAmount: utils.GetEnvDecimal("PRICING_STAGE3_FULL_DAY_AMOUNT", "200.00"),
		},
		Escrow: AppEscrow{
			StaleAuthorizationAfterInHours:   utils.GetEnvInt("APP_STAGE2_AUTHORIZATION_STALE_AFTER_IN_HOURS", 0),
			StaleAuthorizationReportCronSpec: utils.GetEnvString("APP_STAGE2_STALE_REPORT_CRON_SPEC", "@hourly"),
		},
		PaymentGateway: AppPaymentGateway{
			Provider:                utils.GetEnvString("PAYMENT_GATEWAY_PROVIDER", constvars.PaymentGatewayManual),
			BaseUrl:                 utils.GetEnvString("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com"),
			ClientID:                utils.GetEnvString("PAYPAL_CLIENT_ID", ""),
			ClientSecret:            utils.GetEnvString("PAYPAL_CLIENT_SECRET", ""),
			WebhookID:               utils.GetEnvString("PAYPAL_WEBHOOK_ID", ""),
			RequestTimeoutInSeconds: utils.GetEnvInt("PAYPAL_REQUEST_TIMEOUT_IN_SECONDS", 15),
		},
		Minio: AppMinio{
			BucketName:                utils.GetEnvString("MINIO_BUCKET_NAME", "passports"),
			PublicBaseUrl:             utils.GetEnvString("MINIO_PUBLIC_BASE_URL", "http://localhost:9000"),
			PassportMaxUploadSizeInMB: utils.GetEnvInt64("APP_MINIO_PASSPORT_UPLOAD_MAX_SIZE_IN_MB", 5),
		},
		RabbitMQ: AppRabbitMQ{
			CaseEventsQueue: utils.GetEnvString("APP_RABBITMQ_CASE_EVENTS_QUEUE", "case_events"),
		},
		MongoDB: AppMongoDB{
			DBName: utils.GetEnvString("MONGODB_DB_NAME", "medtour"),
		},
	}
}
