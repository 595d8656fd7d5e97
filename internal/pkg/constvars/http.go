package constvars

const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
)

const (
	MIMEApplicationJSON = "application/json"
	MIMEMultipartForm   = "multipart/form-data"
	MIMEOctetStream     = "application/octet-stream"
	MIMEApplicationForm = "application/x-www-form-urlencoded"
)

const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusRequestTooLarge     = 413
	StatusUnprocessableEntity = 422
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXAPIKey       = "X-API-Key"
	HeaderXCSRFToken    = "X-CSRF-Token"
	HeaderAccept        = "Accept"
	HeaderLink          = "Link"

	HeaderPaypalTransmissionID   = "Paypal-Transmission-Id"
	HeaderPaypalTransmissionTime = "Paypal-Transmission-Time"
	HeaderPaypalTransmissionSig  = "Paypal-Transmission-Sig"
	HeaderPaypalCertURL          = "Paypal-Cert-Url"
	HeaderPaypalAuthAlgo         = "Paypal-Auth-Algo"
	HeaderPaypalRequestID        = "PayPal-Request-Id"
)

const (
	BearerPrefix = "Bearer "
)
