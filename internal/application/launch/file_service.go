package launch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/launch"
	"go.uber.org/zap"
)

// ObjectStorage stores file bytes under a key
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	// GenerateDownloadURL returns a URL the client can fetch the object from
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

// UploadInput is one uploaded file
type UploadInput struct {
	StoreID     uuid.UUID
	FileName    string
	ContentType string
	Data        []byte
	UploadedBy  uuid.UUID
}

// FileView is a stored file with a URL to download it
type FileView struct {
	*launch.StoreFile
	DownloadURL string
}

// FileService stores documents attached to stores
type FileService struct {
	files   launch.FileRepository
	stores  launch.StoreRepository
	storage ObjectStorage
	logger  *zap.Logger
}

// NewFileService creates a new FileService
func NewFileService(files launch.FileRepository, stores launch.StoreRepository, storage ObjectStorage, logger *zap.Logger) *FileService {
	return &FileService{files: files, stores: stores, storage: storage, logger: logger}
}

// Upload writes the bytes to object storage and records the metadata
func (s *FileService) Upload(ctx context.Context, in UploadInput) (*FileView, error) {
	if _, err := findStore(ctx, s.stores, in.StoreID); err != nil {
		return nil, err
	}
	f, err := launch.NewStoreFile(in.StoreID, in.FileName, in.ContentType, int64(len(in.Data)), in.UploadedBy)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Upload(ctx, f.StorageKey, in.Data, f.ContentType); err != nil {
		s.logger.Error("Failed to upload store file", zap.String("key", f.StorageKey), zap.Error(err))
		return nil, err
	}
	if err := s.files.Create(ctx, f); err != nil {
		if delErr := s.storage.DeleteObject(ctx, f.StorageKey); delErr != nil {
			s.logger.Warn("Failed to remove orphaned object", zap.String("key", f.StorageKey), zap.Error(delErr))
		}
		return nil, err
	}
	s.logger.Info("Store file uploaded",
		zap.String("store_id", in.StoreID.String()),
		zap.String("file_id", f.ID.String()),
		zap.Int64("size", f.Size),
	)
	return s.view(ctx, f)
}

// List returns a store's files newest first
func (s *FileService) List(ctx context.Context, storeID uuid.UUID) ([]*FileView, error) {
	if _, err := findStore(ctx, s.stores, storeID); err != nil {
		return nil, err
	}
	files, err := s.files.FindByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	views := make([]*FileView, 0, len(files))
	for _, f := range files {
		v, err := s.view(ctx, f)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *FileService) view(ctx context.Context, f *launch.StoreFile) (*FileView, error) {
	url, _, err := s.storage.GenerateDownloadURL(ctx, f.StorageKey, 0)
	if err != nil {
		return nil, err
	}
	return &FileView{StoreFile: f, DownloadURL: url}, nil
}
