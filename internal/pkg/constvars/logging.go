package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingOperationKey          = "operation"
	LoggingErrorCodeKey          = "error_code"
	LoggingErrorMessageKey       = "error_message"
	LoggingCaseIDKey             = "case_id"
	LoggingCaseStatusKey         = "case_status"
	LoggingTransitionKey         = "transition"
	LoggingStageKey              = "stage"
	LoggingActorKey              = "actor"
	LoggingEmailKey              = "email"
	LoggingCreatedKey            = "created"
	LoggingCasesCountKey         = "cases_count"
	LoggingCitiesCountKey        = "cities_count"
	LoggingCityNameKey           = "city_name"
	LoggingHospitalNameKey       = "hospital_name"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingAuthorizationIDKey    = "authorization_id"
	LoggingPaypalEventIDKey      = "paypal_event_id"
	LoggingPaypalEventTypeKey    = "paypal_event_type"
	LoggingFileNameKey           = "file_name"
	LoggingQueueKey              = "queue"
	LoggingCutoffKey             = "cutoff"
)
