package payment_gateway

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// manualService is used when operators settle authorizations in the
// gateway dashboard themselves. Every call succeeds and is only logged.
type manualService struct {
	Log *zap.Logger
}

func NewManualService(logger *zap.Logger) contracts.PaymentGatewayService {
	return &manualService{Log: logger}
}

func (s *manualService) CaptureAuthorization(ctx context.Context, authorizationID string) error {
	s.Log.Info("manualService.CaptureAuthorization recorded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingAuthorizationIDKey, authorizationID),
	)
	return nil
}

func (s *manualService) VoidAuthorization(ctx context.Context, authorizationID string) error {
	s.Log.Info("manualService.VoidAuthorization recorded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingAuthorizationIDKey, authorizationID),
	)
	return nil
}

// VerifyWebhookSignature rejects everything; webhooks only make sense with
// a real gateway behind them.
func (s *manualService) VerifyWebhookSignature(ctx context.Context, headers requests.PaypalWebhookHeaders, body []byte) (bool, error) {
	return false, nil
}
