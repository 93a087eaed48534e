package service

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var uploadScenes = []string{
	constants.UploadSceneProduct,
	constants.UploadSceneCategory,
	constants.UploadSceneHomepage,
	constants.UploadSceneBlog,
	constants.UploadSceneCommon,
}

// UploadService 图片上传，按 场景/年/月 分目录落盘
type UploadService struct {
	cfg *config.Config
	now func() time.Time
}

// NewUploadService 创建上传服务
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg, now: time.Now}
}

// checkedUpload 通过校验的文件
type checkedUpload struct {
	header *multipart.FileHeader
	ext    string
}

// SaveFiles 先校验全部文件，任一失败则不写入任何文件；返回 /uploads/ 开头的相对路径
func (s *UploadService) SaveFiles(files []*multipart.FileHeader, scene string) ([]string, error) {
	limits := s.cfg.Upload
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if limits.MaxFiles > 0 && len(files) > limits.MaxFiles {
		return nil, fmt.Errorf("%w: max %d", ErrTooManyFiles, limits.MaxFiles)
	}

	checked := make([]checkedUpload, 0, len(files))
	for _, file := range files {
		item, err := inspectUpload(file, limits)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Filename, err)
		}
		checked = append(checked, item)
	}

	now := s.now()
	relDir := path.Join(uploadScene(scene), now.Format("2006"), now.Format("01"))
	absDir := filepath.Join(s.rootDir(), filepath.FromSlash(relDir))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(checked))
	for _, item := range checked {
		name := uuid.NewString() + item.ext
		if err := storeUpload(item.header, filepath.Join(absDir, name)); err != nil {
			return nil, err
		}
		urls = append(urls, "/uploads/"+path.Join(relDir, name))
	}
	return urls, nil
}

func (s *UploadService) rootDir() string {
	if dir := strings.TrimSpace(s.cfg.Upload.Dir); dir != "" {
		return dir
	}
	return "uploads"
}

func inspectUpload(file *multipart.FileHeader, limits config.UploadConfig) (checkedUpload, error) {
	item := checkedUpload{header: file, ext: strings.ToLower(filepath.Ext(file.Filename))}
	if limits.MaxSize > 0 && file.Size > limits.MaxSize {
		return item, fmt.Errorf("%w: max %d MB", ErrFileTooLarge, limits.MaxSize>>20)
	}
	if len(limits.AllowedExtensions) > 0 && !extensionAllowed(item.ext, limits.AllowedExtensions) {
		return item, fmt.Errorf("%w: %q", ErrFileExtensionNotAllowed, item.ext)
	}

	src, err := file.Open()
	if err != nil {
		return item, err
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return item, err
	}
	if len(limits.AllowedTypes) > 0 && !mimeAllowed(detected, limits.AllowedTypes) {
		return item, fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, detected.String())
	}
	if !strings.HasPrefix(detected.String(), "image/") {
		return item, nil
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return item, err
	}
	dims, _, err := image.DecodeConfig(src)
	if err != nil {
		return item, fmt.Errorf("%w: decode %s: %v", ErrFileTypeNotAllowed, detected.String(), err)
	}
	if limits.MaxWidth > 0 && dims.Width > limits.MaxWidth {
		return item, fmt.Errorf("%w: width %d > %d", ErrImageDimensionExceeded, dims.Width, limits.MaxWidth)
	}
	if limits.MaxHeight > 0 && dims.Height > limits.MaxHeight {
		return item, fmt.Errorf("%w: height %d > %d", ErrImageDimensionExceeded, dims.Height, limits.MaxHeight)
	}
	return item, nil
}

func storeUpload(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}

// uploadScene 未知场景归入 common
func uploadScene(raw string) string {
	scene := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range uploadScenes {
		if scene == known {
			return scene
		}
	}
	return constants.UploadSceneCommon
}

func mimeAllowed(detected *mimetype.MIME, allowed []string) bool {
	for _, item := range allowed {
		if detected.Is(strings.TrimSpace(item)) {
			return true
		}
	}
	return false
}

// extensionAllowed 配置项可带或不带前导点
func extensionAllowed(ext string, allowed []string) bool {
	if ext == "" {
		return false
	}
	for _, item := range allowed {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" && "."+strings.TrimPrefix(item, ".") == ext {
			return true
		}
	}
	return false
}
