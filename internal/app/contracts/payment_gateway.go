package contracts

import (
	"context"
	"medtour-service/internal/pkg/dto/requests"
)

// PaymentGatewayService performs a single attempt per call. Callers decide
// whether to retry.
type PaymentGatewayService interface {
	CaptureAuthorization(ctx context.Context, authorizationID string) error
	VoidAuthorization(ctx context.Context, authorizationID string) error
	VerifyWebhookSignature(ctx context.Context, headers requests.PaypalWebhookHeaders, body []byte) (bool, error)
}
