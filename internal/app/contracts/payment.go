package contracts

import (
	"context"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
)

type PaymentUsecase interface {
	GetPaymentIntent(ctx context.Context, caseID string) (*responses.PaymentIntent, error)
	ReportPayment(ctx context.Context, actor models.Actor, caseID string, request *requests.ReportPayment) (*responses.Case, error)
	HandlePaypalWebhook(ctx context.Context, headers requests.PaypalWebhookHeaders, body []byte) (*responses.WebhookAck, error)
}
