package launch

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/shared"
)

// StoreFile is a document attached to a store
type StoreFile struct {
	ID          uuid.UUID
	StoreID     uuid.UUID
	FileName    string
	ContentType string
	Size        int64
	StorageKey  string
	UploadedBy  *uuid.UUID
	CreatedAt   time.Time
}

// NewStoreFile creates the metadata of an upload. The storage key is
// unique per upload and keeps the original extension.
func NewStoreFile(storeID uuid.UUID, fileName, contentType string, size int64, uploadedBy uuid.UUID) (*StoreFile, error) {
	fileName = path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), "\\", "/"))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, shared.InvalidInput("File name is required")
	}
	if size <= 0 {
		return nil, shared.InvalidInput("File is empty")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	id := uuid.New()
	f := &StoreFile{
		ID:          id,
		StoreID:     storeID,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		StorageKey:  "stores/" + storeID.String() + "/" + id.String() + strings.ToLower(path.Ext(fileName)),
		CreatedAt:   time.Now(),
	}
	if uploadedBy != uuid.Nil {
		f.UploadedBy = &uploadedBy
	}
	return f, nil
}
