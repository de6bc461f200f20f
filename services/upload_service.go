package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	apperr "jobboard/errors"
	"jobboard/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	resumeMimeTypes = []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	avatarMimeTypes = []string{"image/jpeg", "image/png", "image/webp"}
)

// BlobStore là nơi lưu file thực sự
type BlobStore interface {
	Put(ctx context.Context, folder, name string, r io.Reader) (string, error)
}

// CloudinaryStore upload file lên Cloudinary dạng raw
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cld *cloudinary.Cloudinary) *CloudinaryStore {
	return &CloudinaryStore{cld: cld}
}

func (s *CloudinaryStore) Put(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		PublicID:     name,
		ResourceType: "auto",
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// DiskStore lưu file vào thư mục cục bộ
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

func (s *DiskStore) Put(_ context.Context, folder, name string, r io.Reader) (string, error) {
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return filepath.ToSlash(path), nil
}

// UploadService kiểm tra nội dung file rồi lưu vào BlobStore
type UploadService struct {
	store    BlobStore
	maxBytes int64
}

func NewUploadService(store BlobStore, maxBytes int64) *UploadService {
	return &UploadService{store: store, maxBytes: maxBytes}
}

// UploadResume nhận file CV (pdf, doc, docx) và trả về tham chiếu lưu trữ
func (s *UploadService) UploadResume(ctx context.Context, fh *multipart.FileHeader) (models.ResumeRef, error) {
	path, mime, err := s.put(ctx, fh, "resumes", resumeMimeTypes)
	if err != nil {
		return models.ResumeRef{}, err
	}
	return models.ResumeRef{
		StoragePath:  path,
		OriginalName: filepath.Base(fh.Filename),
		MimeType:     mime,
		Size:         fh.Size,
	}, nil
}

// UploadAvatar nhận ảnh đại diện và trả về đường dẫn
func (s *UploadService) UploadAvatar(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	path, _, err := s.put(ctx, fh, "avatars", avatarMimeTypes)
	return path, err
}

func (s *UploadService) put(ctx context.Context, fh *multipart.FileHeader, folder string, allowed []string) (string, string, error) {
	if fh == nil {
		return "", "", apperr.InvalidInput("file is required")
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return "", "", apperr.InvalidInput(fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", apperr.NewAppError(apperr.ErrCodeInvalidInput, "Lỗi khi mở file", err)
	}
	defer src.Close()

	// Đọc phần đầu file để nhận dạng nội dung, sau đó ghép lại để upload đủ file
	head := make([]byte, 3072)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", "", apperr.NewAppError(apperr.ErrCodeInvalidInput, "Lỗi khi đọc file", err)
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	if !mimeAllowed(mtype, allowed) {
		return "", "", apperr.InvalidInput(fmt.Sprintf("unsupported file type %s", mtype.String()))
	}

	name := uuid.NewString() + strings.ToLower(mtype.Extension())
	path, err := s.store.Put(ctx, folder, name, io.MultiReader(bytes.NewReader(head), src))
	if err != nil {
		return "", "", apperr.NewAppError(apperr.ErrCodeUploadFailed, "Upload thất bại", err)
	}
	return path, mtype.String(), nil
}

func mimeAllowed(mtype *mimetype.MIME, allowed []string) bool {
	for _, a := range allowed {
		if mtype.Is(a) {
			return true
		}
	}
	return false
}
