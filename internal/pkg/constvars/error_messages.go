package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":          "is required",
	"email":             "must be a valid email",
	"min":               "must be at least %s characters long",
	"max":               "maximum at %s characters long",
	"oneof":             "must be one of [%s]",
	"url":               "must be a valid URL",
	"uuid":              "must be a valid UUID",
	"gt":                "must be greater than %s",
	"iso4217":           "must be a valid ISO 4217 currency code",
	"decimal_amount":    "must be a positive decimal amount",
	"purpose_tag":       "must look like <case_id>:stage_<n>",
	"companion_gender":  "must be one of [No Preference, Female, Male]",
	"companion_session": "must be one of [morning, full_day]",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gt":    true,
	"oneof": true,
}

// Error codes returned alongside every error response
const (
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeGuardRejected         = "GUARD_REJECTED"
	ErrCodeDuplicateConfirmation = "DUPLICATE_CONFIRMATION"
	ErrCodeUpstreamGateway       = "UPSTREAM_GATEWAY_ERROR"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeConflict              = "CONFLICT"
	ErrCodeTimeout               = "TIMEOUT"
	ErrCodeRateLimited           = "RATE_LIMITED"
	ErrCodeInternal              = "INTERNAL_ERROR"
)

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientCaseNotFound                  = "case not found"
	ErrClientCityNotFound                  = "city not found"
	ErrClientHospitalNotInCity             = "hospital is not available in the selected city"
	ErrClientPaymentGatewayFailed          = "payment gateway could not complete the operation, please retry"
	ErrClientCaseActionInProgress          = "another admin action on this case is in progress"
	ErrClientWebhookSignatureInvalid       = "webhook signature could not be verified"
	ErrClientInvalidImageFormat            = "invalid document format"
	ErrClientDocumentTooLarge              = "document is too large"
	ErrClientDocumentStorageUnavailable    = "document upload is not available right now"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientRequestBodyTooLarge           = "request body is too large"
)

// Error messages for developers
const (
	ErrDevInvalidInput                  = "invalid input"
	ErrDevValidationFailed              = "validation failed"
	ErrDevCannotParseJSON               = "cannot parse JSON"
	ErrDevCannotMarshalJSON             = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm      = "cannot parse multipart form"
	ErrDevURLParamValidationFailed      = "URL param '%s' validation failed"
	ErrDevServerDeadlineExceeded        = "server deadline exceeded"
	ErrDevAuthTokenInvalidOrExpired     = "auth token invalid or expired"
	ErrDevActorNotAdmin                 = "actor is not admin"
	ErrDevInvalidAPIKey                 = "invalid API key"
	ErrDevCaseNotFound                  = "case %s not found"
	ErrDevCityNotFound                  = "city %s not found"
	ErrDevHospitalNotInCity             = "hospital %s not in city %s"
	ErrDevGuardRejected                 = "guard rejected"
	ErrDevDuplicateConfirmation         = "duplicate payment confirmation"
	ErrDevCaseActionInProgress          = "case admin lock for %s held by another action"
	ErrDevPaymentGatewayRequest         = "payment gateway request failed"
	ErrDevWebhookSignatureInvalid       = "paypal webhook signature verification failed"
	ErrDevWebhookPayloadInvalid         = "paypal webhook payload invalid"
	ErrDevDBFailedToFindData            = "failed to find data"
	ErrDevDBFailedToInsertData          = "failed to insert data"
	ErrDevDBFailedToUpdateData          = "failed to update data"
	ErrDevDBFailedToIterateDataset      = "failed to iterate dataset"
	ErrDevDBFailedToBeginTransaction    = "failed to begin transaction"
	ErrDevDBFailedToCommitTransaction   = "failed to commit transaction"
	ErrDevDBFailedToFindDocument        = "failed to find document"
	ErrDevDBFailedToInsertDocument      = "failed to insert document"
	ErrDevDBFailedToIterateDocuments    = "failed to iterate documents"
	ErrDevRedisGetNoData                = "failed to get data with key %s"
	ErrDevRedisSetData                  = "failed to set data"
	ErrDevRedisDeleteData               = "failed to delete data"
	ErrDevRedisUnlock                   = "failed to release lock"
	ErrDevRabbitMQPublishMessage        = "failed to publish message to %s"
	ErrDevMinioFailedToCreateObject     = "failed to create object in bucket %s"
	ErrDevImageValidationFailed         = "document validation failed"
	ErrDevDocumentExceedsMaxUploadSize  = "document exceeds max upload size of %d MB"
	ErrDevSomethingWrongWithApplication = "unexpected application error"
	ErrDevStorageNotConfigured          = "object storage is not configured"
	ErrDevRateLimitExceeded             = "rate limit exceeded for %s"
	ErrDevCannotReadBody                = "cannot read request body"
)
