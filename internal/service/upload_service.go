package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/remitrack/internal/config"

	"github.com/google/uuid"
)

// UploadService stores evidence photos on local disk, one directory
// per remision.
type UploadService struct {
	cfg *config.Config
}

// NewUploadService creates the upload service.
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg}
}

// SaveRemisionImage validates and stores one uploaded photo. It
// returns the public URL path the router serves the file under.
func (s *UploadService) SaveRemisionImage(file *multipart.FileHeader, remisionID uint) (string, error) {
	if file.Size > s.cfg.Upload.MaxSize {
		return "", fmt.Errorf("%w: el archivo supera el límite de %d MB", ErrInvalidInput, s.cfg.Upload.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.Upload.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
			return "", fmt.Errorf("%w: extensión no permitida: %s", ErrInvalidInput, ext)
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Sniff the real MIME type from the first block, not the filename.
	buffer := make([]byte, 512)
	_, err = src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	contentType := http.DetectContentType(buffer)
	if len(s.cfg.Upload.AllowedTypes) > 0 {
		allowed := false
		for _, t := range s.cfg.Upload.AllowedTypes {
			if strings.EqualFold(contentType, t) {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", fmt.Errorf("%w: tipo de archivo no permitido: %s", ErrInvalidInput, contentType)
		}
	}

	remisionDir := strconv.FormatUint(uint64(remisionID), 10)
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	savePath := filepath.Join(s.uploadRoot(), remisionDir, filename)

	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return fmt.Sprintf("/uploads/%s/%s", remisionDir, filename), nil
}

// LocalPathForURL maps a public /uploads/... path back to the file on
// disk. It refuses anything outside the upload root.
func (s *UploadService) LocalPathForURL(imageURL string) (string, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(imageURL), "/uploads/")
	if trimmed == "" || trimmed == imageURL {
		return "", false
	}
	cleaned := filepath.Clean(trimmed)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", false
	}
	return filepath.Join(s.uploadRoot(), cleaned), true
}

// RemoveFileForURL deletes the stored file behind a public URL path.
// A file that is already gone is not an error.
func (s *UploadService) RemoveFileForURL(imageURL string) error {
	path, ok := s.LocalPathForURL(imageURL)
	if !ok {
		return fmt.Errorf("%w: unrecognized image url %q", ErrInvalidInput, imageURL)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *UploadService) uploadRoot() string {
	dir := strings.TrimSpace(s.cfg.Upload.Dir)
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}
