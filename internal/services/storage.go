package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService archives uploaded originals on local disk.
type StorageService interface {
	SaveFile(originalName string, data []byte) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile writes data under a unique name and returns that name and its full path.
func (s *storageService) SaveFile(originalName string, data []byte) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext != ".pdf" && ext != ".docx" {
		return "", "", fmt.Errorf("invalid file extension: %s", ext)
	}

	uniqueFilename := fmt.Sprintf("resume_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filepath.Base(filename))
}

func (s *storageService) DeleteFile(filename string) error {
	if err := os.Remove(s.GetFilePath(filename)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
