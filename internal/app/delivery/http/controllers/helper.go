package controllers

import (
	"context"
	"errors"
	"medtour-service/internal/app/config"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func requestContext(r *http.Request, internalConfig *config.InternalConfig) (context.Context, context.CancelFunc) {
	timeout := time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

func writeError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

func decodeJSON(r *http.Request, request interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

func caseIDParam(r *http.Request) (string, error) {
	caseID := chi.URLParam(r, "caseID")
	if err := utils.ValidateVar(caseID, "required,uuid"); err != nil {
		return "", exceptions.ErrURLParamValidation(err, "caseID")
	}
	return caseID, nil
}

func emailParam(r *http.Request) (string, error) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		return "", exceptions.ErrURLParamValidation(err, "email")
	}
	if err := utils.ValidateVar(email, "required,email"); err != nil {
		return "", exceptions.ErrURLParamValidation(err, "email")
	}
	return email, nil
}
