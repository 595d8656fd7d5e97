package controllers

import (
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

const passportFormField = "file"

type DocumentController struct {
	Log             *zap.Logger
	DocumentUsecase contracts.DocumentUsecase
	InternalConfig  *config.InternalConfig
}

func NewDocumentController(logger *zap.Logger, documentUsecase contracts.DocumentUsecase, internalConfig *config.InternalConfig) *DocumentController {
	return &DocumentController{
		Log:             logger,
		DocumentUsecase: documentUsecase,
		InternalConfig:  internalConfig,
	}
}

func (ctrl *DocumentController) UploadPassport(w http.ResponseWriter, r *http.Request) {
	maxSizeInMB := ctrl.InternalConfig.Minio.PassportMaxUploadSizeInMB
	r.Body = http.MaxBytesReader(w, r.Body, (maxSizeInMB+1)<<20)
	if err := r.ParseMultipartForm(maxSizeInMB << 20); err != nil {
		ctrl.Log.Error("DocumentController.UploadPassport failed to parse multipart form",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.Error(err),
		)
		writeError(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, fileHeader, err := r.FormFile(passportFormField)
	if err != nil {
		writeError(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.DocumentUsecase.UploadPassport(ctx, file, fileHeader)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UploadDocumentSuccessMessage, response)
}
