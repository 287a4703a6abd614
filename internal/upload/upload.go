package upload

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/infra/storage"
)

const (
	MaxFileSize   = 5 << 20
	MaxFiles      = 10
	DefaultPrefix = "uploads"

	maxBaseNameLen = 50
	formMemory     = 32 << 20
)

// Field names a multipart file field accepted by a route.
type Field struct {
	Name     string
	MaxCount int
}

// File is an accepted, stored upload. Path is the reference persisted on
// vendor profiles.
type File struct {
	Field        string `json:"field"`
	OriginalName string `json:"originalName"`
	StoredName   string `json:"storedName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
}

type Files []File

// Paths returns the stored paths for field, never nil.
func (fs Files) Paths(field string) []string {
	out := []string{}
	for _, f := range fs {
		if f.Field == field {
			out = append(out, f.Path)
		}
	}
	return out
}

func (fs Files) First(field string) string {
	for _, f := range fs {
		if f.Field == field {
			return f.Path
		}
	}
	return ""
}

type Handler struct {
	store       storage.Storage
	prefix      string
	maxFileSize int64
	maxFiles    int
	newID       func() string
}

func NewHandler(store storage.Storage, prefix string) *Handler {
	return &Handler{
		store:       store,
		prefix:      prefix,
		maxFileSize: MaxFileSize,
		maxFiles:    MaxFiles,
		newID:       uuid.NewString,
	}
}

// MaxRequestSize bounds a whole registration request body.
func (h *Handler) MaxRequestSize() int64 {
	return int64(h.maxFiles)*h.maxFileSize + 1<<20
}

// ReadForm parses a multipart (or url-encoded) request body. Requests that
// carry no form at all yield an empty form.
func (h *Handler) ReadForm(w http.ResponseWriter, r *http.Request) (*multipart.Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxRequestSize())

	err := r.ParseMultipartForm(formMemory)
	switch {
	case err == nil:
		return r.MultipartForm, nil
	case errors.Is(err, http.ErrNotMultipart):
		return &multipart.Form{Value: map[string][]string(r.PostForm)}, nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, httperr.ErrFileTooLarge("Request body too large")
	}
	return nil, httperr.ErrUploadFailed("File upload failed", err)
}

// ======================================================
// VALIDATION
// ======================================================

type item struct {
	field    string
	header   *multipart.FileHeader
	mimeType string
}

// Batch holds validated files that have not been written yet.
type Batch struct {
	h     *Handler
	items []item
}

func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Prepare validates every file in form against fields before anything is
// written. Any rejection fails the whole batch.
func (h *Handler) Prepare(form *multipart.Form, fields ...Field) (*Batch, error) {
	b := &Batch{h: h}
	if form == nil || len(form.File) == 0 {
		return b, nil
	}

	limits := make(map[string]int, len(fields))
	for _, f := range fields {
		limits[f.Name] = f.MaxCount
	}

	total := 0
	for name, headers := range form.File {
		limit, ok := limits[name]
		if !ok {
			return nil, httperr.ErrUploadFailed("Unexpected file field "+name, nil)
		}
		if len(headers) > limit {
			return nil, httperr.ErrUploadFailed(
				fmt.Sprintf("Too many files for %s (max %d)", name, limit), nil)
		}
		total += len(headers)
	}
	if total > h.maxFiles {
		return nil, httperr.ErrUploadFailed(
			fmt.Sprintf("Too many files (max %d)", h.maxFiles), nil)
	}

	// Field order keeps stored paths in a stable order.
	for _, f := range fields {
		for _, fh := range form.File[f.Name] {
			mimeType, err := h.validate(fh)
			if err != nil {
				return nil, err
			}
			b.items = append(b.items, item{field: f.Name, header: fh, mimeType: mimeType})
		}
	}
	return b, nil
}

func (h *Handler) validate(fh *multipart.FileHeader) (string, error) {
	if fh.Size > h.maxFileSize {
		return "", httperr.ErrFileTooLarge(
			fmt.Sprintf("File %s exceeds the %dMB limit", fh.Filename, h.maxFileSize>>20))
	}

	mediaType, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil {
		return "", httperr.ErrInvalidFile("Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed.")
	}
	format, ok := allowedTypes[mediaType]
	if !ok {
		return "", httperr.ErrInvalidFile("Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed.")
	}

	if !allowedExts[strings.ToLower(filepath.Ext(fh.Filename))] {
		return "", httperr.ErrInvalidFile("Invalid file extension")
	}

	f, err := fh.Open()
	if err != nil {
		return "", httperr.ErrUploadFailed("File upload failed", err)
	}
	defer f.Close()

	if err := checkImage(f, format); err != nil {
		return "", httperr.ErrInvalidFile(
			fmt.Sprintf("File %s is not a valid %s image", fh.Filename, format))
	}
	return mediaType, nil
}

// ======================================================
// STORAGE
// ======================================================

// Save writes the batch. If any write fails, files already written by this
// batch are removed before returning.
func (b *Batch) Save(ctx context.Context) (Files, error) {
	files := Files{}
	if b.Len() == 0 {
		return files, nil
	}

	for _, it := range b.items {
		stored := b.h.storedName(it.header.Filename)

		f, err := it.header.Open()
		if err != nil {
			b.h.Discard(ctx, files)
			return nil, httperr.ErrUploadFailed("File upload failed", err)
		}
		err = b.h.store.Put(ctx, stored, f, it.header.Size, it.mimeType)
		f.Close()
		if err != nil {
			b.h.Discard(ctx, files)
			return nil, httperr.ErrUploadFailed("File upload failed", err)
		}

		files = append(files, File{
			Field:        it.field,
			OriginalName: it.header.Filename,
			StoredName:   stored,
			MimeType:     it.mimeType,
			Size:         it.header.Size,
			Path:         path.Join(b.h.prefix, stored),
		})
	}
	return files, nil
}

// Discard removes stored files. Failures are logged, not returned: it runs
// on paths that are already failing.
func (h *Handler) Discard(ctx context.Context, files Files) {
	ctx = context.WithoutCancel(ctx)
	for _, f := range files {
		if err := h.store.Delete(ctx, f.StoredName); err != nil {
			log.Printf("upload: failed to discard %s: %v", f.Path, err)
		}
	}
}

// Discard removes files saved by this batch.
func (b *Batch) Discard(ctx context.Context, files Files) {
	if b == nil || b.h == nil || len(files) == 0 {
		return
	}
	b.h.Discard(ctx, files)
}

// storedName is <random id>-<sanitized base, max 50 chars><original ext>.
func (h *Handler) storedName(original string) string {
	ext := filepath.Ext(original)
	base := slug.Make(strings.TrimSuffix(filepath.Base(original), ext))
	if len(base) > maxBaseNameLen {
		base = strings.TrimRight(base[:maxBaseNameLen], "-")
	}
	if base == "" {
		base = "file"
	}
	return h.newID() + "-" + base + ext
}
