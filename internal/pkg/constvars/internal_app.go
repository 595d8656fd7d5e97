package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_ACTOR_KEY                ContextKey = "actor"
	CONTEXT_API_KEY_AUTH_KEY         ContextKey = "api_key_auth"
	CONTEXT_RAW_BODY                 ContextKey = "raw_body"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

const (
	CaseStoreDriverPostgres = "postgres"
	CaseStoreDriverMemory   = "memory"
)

const (
	PaymentGatewayPaypal = "paypal"
	PaymentGatewayManual = "manual"
)

const (
	RedisKeyHospitalsByCity       = "reference:hospitals_by_city"
	RedisKeyPaypalWebhookPrefix   = "paypal_webhook:"
	RedisKeyPaypalAccessToken     = "paypal:access_token"
	RedisKeyCaseAdminActionPrefix = "case_admin_action:"
)

const (
	MongoCollectionCaseEvents = "case_events"
)

const (
	MinioPassportPrefix = "passport"
)

const (
	ActorSubjectAPIKeyAdmin   = "api-key-admin"
	ActorSubjectPaypalWebhook = "paypal-webhook"
)

const (
	PaypalEventAuthorizationCreated = "PAYMENT.AUTHORIZATION.CREATED"
	PaypalEventCaptureCompleted     = "PAYMENT.CAPTURE.COMPLETED"
)
