package contracts

import (
	"context"
	"io"
	"medtour-service/internal/pkg/dto/responses"
	"mime/multipart"
)

type StorageService interface {
	UploadFile(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader, bucketName, objectName string) (string, error)
}

type DocumentUsecase interface {
	UploadPassport(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader) (*responses.DocumentUploaded, error)
}
