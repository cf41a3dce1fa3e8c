package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var (
	ErrInvalidImage      = errors.New("image must be a base64 png or jpeg data URL")
	ErrSignatureNotFound = errors.New("signature not found")
)

var dataURLRegex = regexp.MustCompile(`^data:image/(\w+);base64,`)

// UploadResult names a stored signature and where clients can fetch it.
type UploadResult struct {
	Path    string `json:"path"`
	ViewURL string `json:"view_url"`
}

type FileService interface {
	// UploadSignature stores a data URL image drawn by workerID
	UploadSignature(ctx context.Context, workerID string, dataURL string) (UploadResult, error)

	// OpenSignature streams a stored signature by file name. Any directory
	// part of name is ignored.
	OpenSignature(ctx context.Context, name string) (io.ReadCloser, string, error)

	// LoadSignature resolves a signature reference (stored name, view URL or
	// inline data URL) to image bytes.
	LoadSignature(ctx context.Context, ref string) (report.Image, error)

	// Ping reports whether signature storage is usable
	Ping(ctx context.Context) error
}

type fileServiceImpl struct {
	storage  storage.FileStorage
	maxWidth int
	now      func() time.Time
}

// NewFileService returns a signature store. Images wider than maxWidth are
// scaled down on upload; maxWidth <= 0 disables scaling.
func NewFileService(storage storage.FileStorage, maxWidth int) FileService {
	return &fileServiceImpl{
		storage:  storage,
		maxWidth: maxWidth,
		now:      time.Now,
	}
}

// UploadSignature implements FileService.
func (s *fileServiceImpl) UploadSignature(ctx context.Context, workerID string, dataURL string) (UploadResult, error) {
	img, err := decodeDataURL(dataURL)
	if err != nil {
		return UploadResult{}, err
	}

	data, err := s.downscale(img)
	if err != nil {
		return UploadResult{}, err
	}

	// {workerID}_{unix}_{uuid}.{ext}
	name := fmt.Sprintf("%s_%d_%s%s", path.Base(workerID), s.now().Unix(), uuid.New().String(), img.Extension)

	storedPath, err := s.storage.Upload(ctx, bytes.NewReader(data), name, contentTypeOf(img.Extension))
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to upload signature: %w", err)
	}

	viewURL, err := s.storage.GetURL(ctx, storedPath)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to build signature url: %w", err)
	}

	return UploadResult{Path: storedPath, ViewURL: viewURL}, nil
}

// OpenSignature implements FileService.
func (s *fileServiceImpl) OpenSignature(ctx context.Context, name string) (io.ReadCloser, string, error) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return nil, "", ErrSignatureNotFound
	}

	rc, err := s.storage.Download(ctx, base)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrSignatureNotFound
		}
		return nil, "", err
	}

	return rc, contentTypeOf(path.Ext(base)), nil
}

// LoadSignature implements FileService.
func (s *fileServiceImpl) LoadSignature(ctx context.Context, ref string) (report.Image, error) {
	if ref == "" {
		return report.Image{}, ErrSignatureNotFound
	}
	if strings.HasPrefix(ref, "data:") {
		return decodeDataURL(ref)
	}

	rc, contentType, err := s.OpenSignature(ctx, storedName(ref))
	if err != nil {
		return report.Image{}, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return report.Image{}, fmt.Errorf("failed to read signature: %w", err)
	}

	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	return report.Image{Data: data, Extension: ext}, nil
}

func (s *fileServiceImpl) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}

// downscale shrinks img to maxWidth keeping the aspect ratio and returns the
// bytes to store. Images already narrow enough are stored untouched.
func (s *fileServiceImpl) downscale(img report.Image) ([]byte, error) {
	if s.maxWidth <= 0 {
		return img.Data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() <= s.maxWidth {
		return img.Data, nil
	}

	height := bounds.Dy() * s.maxWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := resizeImage(src, s.maxWidth, height)

	buf := new(bytes.Buffer)
	if img.Extension == ".png" {
		err = png.Encode(buf, dst)
	} else {
		err = jpeg.Encode(buf, dst, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode resized signature: %w", err)
	}
	return buf.Bytes(), nil
}

// ==================== HELPER FUNCTIONS ====================

// decodeDataURL parses "data:image/<png|jpg|jpeg>;base64,<payload>".
func decodeDataURL(dataURL string) (report.Image, error) {
	m := dataURLRegex.FindStringSubmatch(dataURL)
	if m == nil {
		return report.Image{}, ErrInvalidImage
	}

	var ext string
	switch strings.ToLower(m[1]) {
	case "png":
		ext = ".png"
	case "jpg", "jpeg":
		ext = ".jpg"
	default:
		return report.Image{}, ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(dataURL[len(m[0]):])
	if err != nil || len(data) == 0 {
		return report.Image{}, ErrInvalidImage
	}

	return report.Image{Data: data, Extension: ext}, nil
}

// storedName extracts the file name from a stored reference. References
// may be a bare name, a view URL or a legacy "...?file=<name>" link.
func storedName(ref string) string {
	if u, err := url.Parse(ref); err == nil {
		if f := u.Query().Get("file"); f != "" {
			return path.Base(f)
		}
		if u.Path != "" {
			return path.Base(u.Path)
		}
	}
	return path.Base(ref)
}

func contentTypeOf(ext string) string {
	if strings.EqualFold(ext, ".png") {
		return "image/png"
	}
	return "image/jpeg"
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
