package payment_gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	paypalPathOAuthToken            = "/v1/oauth2/token"
	paypalPathCaptureAuthorization  = "/v2/payments/authorizations/%s/capture"
	paypalPathVoidAuthorization     = "/v2/payments/authorizations/%s/void"
	paypalPathVerifyWebhook         = "/v1/notifications/verify-webhook-signature"
	paypalVerificationStatusSuccess = "SUCCESS"
	paypalTokenExpirySafetyMargin   = 60 * time.Second
)

type paypalService struct {
	BaseUrl         string
	ClientID        string
	ClientSecret    string
	WebhookID       string
	AppEnv          string
	Client          *http.Client
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
}

// NewPaypalService talks to the PayPal REST API. redisRepository is
// optional and only caches the OAuth access token.
func NewPaypalService(internalConfig *config.InternalConfig, redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.PaymentGatewayService {
	return &paypalService{
		BaseUrl:      strings.TrimRight(internalConfig.PaymentGateway.BaseUrl, "/"),
		ClientID:     internalConfig.PaymentGateway.ClientID,
		ClientSecret: internalConfig.PaymentGateway.ClientSecret,
		WebhookID:    internalConfig.PaymentGateway.WebhookID,
		AppEnv:       internalConfig.App.Env,
		Client: &http.Client{
			Timeout: time.Duration(internalConfig.PaymentGateway.RequestTimeoutInSeconds) * time.Second,
		},
		RedisRepository: redisRepository,
		Log:             logger,
	}
}

func (s *paypalService) CaptureAuthorization(ctx context.Context, authorizationID string) error {
	requestID := utils.GetRequestID(ctx)
	s.Log.Info("paypalService.CaptureAuthorization called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAuthorizationIDKey, authorizationID),
	)

	var result responses.PaypalAuthorizationAction
	path := fmt.Sprintf(paypalPathCaptureAuthorization, url.PathEscape(authorizationID))
	err := s.doJSON(ctx, path, "capture:"+authorizationID, map[string]bool{"final_capture": true}, &result)
	if err != nil {
		s.Log.Error("paypalService.CaptureAuthorization failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAuthorizationIDKey, authorizationID),
			zap.Error(err),
		)
		return err
	}

	s.Log.Info("paypalService.CaptureAuthorization succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAuthorizationIDKey, authorizationID),
		zap.String("capture_id", result.ID),
		zap.String("capture_status", result.Status),
	)
	return nil
}

func (s *paypalService) VoidAuthorization(ctx context.Context, authorizationID string) error {
	requestID := utils.GetRequestID(ctx)
	s.Log.Info("paypalService.VoidAuthorization called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAuthorizationIDKey, authorizationID),
	)

	path := fmt.Sprintf(paypalPathVoidAuthorization, url.PathEscape(authorizationID))
	err := s.doJSON(ctx, path, "void:"+authorizationID, nil, nil)
	if err != nil {
		s.Log.Error("paypalService.VoidAuthorization failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAuthorizationIDKey, authorizationID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// VerifyWebhookSignature asks PayPal to verify the transmission. Without a
// configured webhook id verification is skipped and every event is accepted.
func (s *paypalService) VerifyWebhookSignature(ctx context.Context, headers requests.PaypalWebhookHeaders, body []byte) (bool, error) {
	// Without a webhook id only development accepts unverified events.
	if s.WebhookID == "" {
		if s.AppEnv != constvars.EnvironmentDevelopment {
			s.Log.Error("paypalService.VerifyWebhookSignature rejected, no webhook id configured",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String("app_env", s.AppEnv),
			)
			return false, nil
		}
		s.Log.Warn("paypalService.VerifyWebhookSignature skipped, no webhook id configured",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		)
		return true, nil
	}

	request := requests.PaypalVerifyWebhookSignature{
		AuthAlgo:         headers.AuthAlgo,
		CertURL:          headers.CertURL,
		TransmissionID:   headers.TransmissionID,
		TransmissionSig:  headers.TransmissionSig,
		TransmissionTime: headers.TransmissionTime,
		WebhookID:        s.WebhookID,
		WebhookEvent:     json.RawMessage(body),
	}

	var result responses.PaypalVerifyWebhookSignature
	err := s.doJSON(ctx, paypalPathVerifyWebhook, "", request, &result)
	if err != nil {
		return false, err
	}
	return result.VerificationStatus == paypalVerificationStatusSuccess, nil
}

func (s *paypalService) doJSON(ctx context.Context, path, idempotencyKey string, payload, out interface{}) error {
	token, err := s.accessToken(ctx)
	if err != nil {
		return err
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		payloadJSON, err := json.Marshal(payload)
		if err != nil {
			return exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewReader(payloadJSON)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, s.BaseUrl+path, body)
	if err != nil {
		return exceptions.ErrUpstreamGateway(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAuthorization, constvars.BearerPrefix+token)
	if idempotencyKey != "" {
		req.Header.Set(constvars.HeaderPaypalRequestID, idempotencyKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return exceptions.ErrUpstreamGateway(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return exceptions.ErrUpstreamGateway(err)
	}

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		return exceptions.ErrUpstreamGateway(fmt.Errorf("paypal %s returned %d: %s", path, resp.StatusCode, truncate(respBody, 512)))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	err = json.Unmarshal(respBody, out)
	if err != nil {
		return exceptions.ErrUpstreamGateway(err)
	}
	return nil
}

func (s *paypalService) accessToken(ctx context.Context) (string, error) {
	if s.RedisRepository != nil {
		cached, err := s.RedisRepository.Get(ctx, constvars.RedisKeyPaypalAccessToken)
		if err == nil && cached != "" {
			var token string
			if json.Unmarshal([]byte(cached), &token) == nil && token != "" {
				return token, nil
			}
		}
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, s.BaseUrl+paypalPathOAuthToken, strings.NewReader(form.Encode()))
	if err != nil {
		return "", exceptions.ErrUpstreamGateway(err)
	}
	req.SetBasicAuth(s.ClientID, s.ClientSecret)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", exceptions.ErrUpstreamGateway(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return "", exceptions.ErrUpstreamGateway(fmt.Errorf("paypal token endpoint returned %d", resp.StatusCode))
	}

	var token responses.PaypalAccessToken
	err = json.NewDecoder(resp.Body).Decode(&token)
	if err != nil {
		return "", exceptions.ErrUpstreamGateway(err)
	}

	if s.RedisRepository != nil {
		ttl := time.Duration(token.ExpiresIn)*time.Second - paypalTokenExpirySafetyMargin
		if ttl > 0 {
			err = s.RedisRepository.Set(ctx, constvars.RedisKeyPaypalAccessToken, token.AccessToken, ttl)
			if err != nil {
				s.Log.Warn("paypalService.accessToken error caching token",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
					zap.Error(err),
				)
			}
		}
	}
	return token.AccessToken, nil
}

func truncate(body []byte, limit int) string {
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}
