package documents

import (
	"context"
	"fmt"
	"io"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/responses"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedPassportExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

type documentUsecase struct {
	StorageService contracts.StorageService
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

// NewDocumentUsecase accepts a nil storage service; uploads then fail with
// 503 instead of panicking.
func NewDocumentUsecase(storageService contracts.StorageService, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.DocumentUsecase {
	return &documentUsecase{
		StorageService: storageService,
		InternalConfig: internalConfig,
		Log:            logger,
	}
}

// UploadPassport stores a passport scan and returns the public URL a case
// submission can reference.
func (uc *documentUsecase) UploadPassport(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader) (*responses.DocumentUploaded, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("documentUsecase.UploadPassport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileNameKey, fileHeader.Filename),
	)

	if uc.StorageService == nil {
		return nil, exceptions.ErrStorageUnavailable(nil)
	}

	maxSizeInMB := uc.InternalConfig.Minio.PassportMaxUploadSizeInMB
	if fileHeader.Size > maxSizeInMB*1024*1024 {
		return nil, exceptions.ErrDocumentTooLarge(nil, maxSizeInMB)
	}

	extension := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedPassportExtensions[extension] {
		return nil, exceptions.ErrDocumentValidation(fmt.Errorf("extension %q is not accepted", extension))
	}

	bucketName := uc.InternalConfig.Minio.BucketName
	objectName := utils.GenerateFileName(constvars.MinioPassportPrefix, uuid.NewString(), extension)
	objectKey, err := uc.StorageService.UploadFile(ctx, file, fileHeader, bucketName, objectName)
	if err != nil {
		uc.Log.Error("documentUsecase.UploadPassport error uploading file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	publicURL := fmt.Sprintf("%s/%s/%s", strings.TrimRight(uc.InternalConfig.Minio.PublicBaseUrl, "/"), bucketName, objectKey)
	uc.Log.Info("documentUsecase.UploadPassport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileNameKey, objectKey),
	)
	return &responses.DocumentUploaded{
		FileName: objectKey,
		URL:      publicURL,
	}, nil
}
