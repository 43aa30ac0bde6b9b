// File: urbanserve/services/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// StorageService stores uploaded verification documents and returns an
// opaque reference kept on the profile row.
type StorageService interface {
	Upload(ctx context.Context, folder, fileName string, r io.Reader) (string, error)
}

// CloudinaryStorage stores documents in Cloudinary.
type CloudinaryStorage struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStorage initializes Cloudinary from explicit credentials.
func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorage{client: cld}, nil
}

// Upload pushes the document and returns its secure URL.
func (s *CloudinaryStorage) Upload(ctx context.Context, folder, fileName string, r io.Reader) (string, error) {
	publicID := uuid.New().String() + "_" + fileName
	res, err := s.client.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	return res.SecureURL, nil
}

// LocalStorage stores documents on the local filesystem. Used when no
// Cloudinary credentials are configured.
type LocalStorage struct {
	Dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{Dir: dir}, nil
}

// Upload writes the document under Dir/folder and returns its path.
func (s *LocalStorage) Upload(ctx context.Context, folder, fileName string, r io.Reader) (string, error) {
	dir := filepath.Join(s.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	path := filepath.Join(dir, uuid.New().String()+"_"+fileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return path, nil
}
