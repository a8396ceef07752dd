// services/attachment_service.go
package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evenly-app/evenly-backend/models"
	"github.com/evenly-app/evenly-backend/utils"
)

// AttachmentService stores receipt images on local disk, keyed by receipt id
type AttachmentService struct {
	baseDir string
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
	".svg":  true,
}

// NewAttachmentService creates a new attachment service rooted at baseDir
func NewAttachmentService(baseDir string) *AttachmentService {
	return &AttachmentService{baseDir: baseDir}
}

// SaveAttachment stores an uploaded image for a receipt and returns its metadata
func (s *AttachmentService) SaveAttachment(receiptID string, header *multipart.FileHeader) (*models.Attachment, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return nil, utils.NewValidationError("Only image files are allowed")
	}
	if header.Size > utils.MaxAttachmentSize {
		return nil, utils.NewValidationError("File size should be less than 10MB")
	}

	dir := filepath.Join(s.baseDir, "receipts", receiptID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, utils.NewInternalError("Failed to prepare upload directory")
	}

	// Timestamp prefix prevents collisions between same-named uploads
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), utils.CleanFileName(header.Filename))
	path := filepath.Join(dir, name)

	src, err := header.Open()
	if err != nil {
		return nil, utils.NewInternalError("Failed to read upload")
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return nil, utils.NewInternalError("Failed to store upload")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return nil, utils.NewInternalError("Failed to store upload")
	}

	return &models.Attachment{
		Name:    name,
		URL:     s.attachmentURL(receiptID, name),
		Size:    header.Size,
		Created: time.Now().UnixMilli(),
	}, nil
}

// ListAttachments returns metadata for every stored image of a receipt
func (s *AttachmentService) ListAttachments(receiptID string) ([]models.Attachment, error) {
	dir := filepath.Join(s.baseDir, "receipts", receiptID)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []models.Attachment{}, nil
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to list attachments")
	}

	attachments := []models.Attachment{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		attachments = append(attachments, models.Attachment{
			Name:    entry.Name(),
			URL:     s.attachmentURL(receiptID, entry.Name()),
			Size:    info.Size(),
			Created: info.ModTime().UnixMilli(),
		})
	}
	return attachments, nil
}

// DeleteAttachment removes one stored image of a receipt
func (s *AttachmentService) DeleteAttachment(receiptID, filename string) error {
	// Reject traversal attempts before touching the filesystem
	if filename != filepath.Base(filename) {
		return utils.NewValidationError("Invalid filename")
	}

	path := filepath.Join(s.baseDir, "receipts", receiptID, filename)
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return utils.NewNotFoundError("Attachment")
	}
	if err != nil {
		return utils.NewInternalError("Failed to delete attachment")
	}
	return nil
}

// attachmentURL builds the public path the router serves uploads from
func (s *AttachmentService) attachmentURL(receiptID, name string) string {
	return fmt.Sprintf("/uploads/receipts/%s/%s", receiptID, name)
}
