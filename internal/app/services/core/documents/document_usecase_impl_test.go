package documents

import (
	"context"
	"errors"
	"io"
	"medtour-service/internal/app/config"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) UploadFile(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader, bucketName, objectName string) (string, error) {
	args := m.Called(ctx, file, fileHeader, bucketName, objectName)
	return args.String(0), args.Error(1)
}

func newTestDocumentUsecase(storage *MockStorageService) *documentUsecase {
	internalConfig := &config.InternalConfig{
		Minio: config.AppMinio{
			BucketName:                "medtour",
			PublicBaseUrl:             "https://files.medtour.test/",
			PassportMaxUploadSizeInMB: 5,
		},
	}
	return NewDocumentUsecase(storage, internalConfig, zap.NewNop()).(*documentUsecase)
}

func TestDocumentUsecase_UploadPassport(t *testing.T) {
	ctx := context.Background()

	t.Run("Uploaded", func(t *testing.T) {
		storage := new(MockStorageService)
		storage.On("UploadFile", ctx, mock.Anything, mock.Anything, "medtour", mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, constvars.MinioPassportPrefix+"_") && strings.HasSuffix(name, ".pdf")
		})).Return("passport_x.pdf", nil)

		header := &multipart.FileHeader{Filename: "Passport.PDF", Size: 1024}
		uploaded, err := newTestDocumentUsecase(storage).UploadPassport(ctx, strings.NewReader("pdf"), header)
		require.NoError(t, err)
		assert.Equal(t, "https://files.medtour.test/medtour/passport_x.pdf", uploaded.URL)
	})

	t.Run("Too large", func(t *testing.T) {
		storage := new(MockStorageService)
		header := &multipart.FileHeader{Filename: "passport.png", Size: 6 * 1024 * 1024}
		_, err := newTestDocumentUsecase(storage).UploadPassport(ctx, strings.NewReader(""), header)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusRequestTooLarge, customErr.StatusCode)
		storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unsupported extension", func(t *testing.T) {
		storage := new(MockStorageService)
		header := &multipart.FileHeader{Filename: "passport.exe", Size: 10}
		_, err := newTestDocumentUsecase(storage).UploadPassport(ctx, strings.NewReader(""), header)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("No storage configured", func(t *testing.T) {
		internalConfig := &config.InternalConfig{Minio: config.AppMinio{PassportMaxUploadSizeInMB: 5}}
		uc := NewDocumentUsecase(nil, internalConfig, zap.NewNop())
		header := &multipart.FileHeader{Filename: "passport.png", Size: 10}
		_, err := uc.UploadPassport(ctx, strings.NewReader(""), header)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusServiceUnavailable, customErr.StatusCode)
	})
}
