package config

import "github.com/shopspring/decimal"

type InternalConfig struct {
	App            App
	JWT            AppJWT
	Pricing        AppPricing
	Escrow         AppEscrow
	PaymentGateway AppPaymentGateway
	Minio          AppMinio
	RabbitMQ       AppRabbitMQ
	MongoDB        AppMongoDB
}

type App struct {
	Env                         string
	Port                        string
	Version                     string
	Address                     string
	Timezone                    string
	EndpointPrefix              string
	CaseStoreDriver             string
	AdminAPIKey                 string
	MaxRequests                 int
	AdminMaxRequests            int
	ShutdownTimeoutInSeconds    int
	RequestTimeoutInSeconds     int
	RequestBodyLimitInMegabyte  int
	CaseSubmissionRatePerMinute int
	WebhookRatePerMinute        int
	AdminActionLockTTLInSeconds int
	WebhookDedupeTTLInHours     int
}

type AppJWT struct {
	Secret        string
	AdminRole     string
	ExpTimeInHour int
}

// AppPricing holds the amount the gateway must report for each stage.
type AppPricing struct {
	Currency            string
	Stage1Amount        decimal.Decimal
	Stage2Amount        decimal.Decimal
	Stage3MorningAmount decimal.Decimal
	Stage3FullDayAmount decimal.Decimal
}

type AppEscrow struct {
	// StaleAuthorizationAfterInHours of 0 disables the stale authorization report.
	StaleAuthorizationAfterInHours   int
	StaleAuthorizationReportCronSpec string
}

type AppPaymentGateway struct {
	Provider                string
	BaseUrl                 string
	ClientID                string
	ClientSecret            string
	WebhookID               string
	RequestTimeoutInSeconds int
}

type AppMinio struct {
	BucketName                string
	PublicBaseUrl             string
	PassportMaxUploadSizeInMB int64
}

type AppRabbitMQ struct {
	CaseEventsQueue string
}

type AppMongoDB struct {
	DBName string
}
