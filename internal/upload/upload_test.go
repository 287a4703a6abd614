package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
)

// ======================================================
// FIXTURES
// ======================================================

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  int
	puts    int
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.failOn > 0 && m.puts == m.failOn {
		return errors.New("disk full")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memStorage) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type part struct {
	field, filename, contentType string
	data                         []byte
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func multipartBody(t *testing.T, values map[string]string, parts ...part) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+p.field+`"; filename="`+p.filename+`"`)
		h.Set("Content-Type", p.contentType)
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func buildForm(t *testing.T, parts ...part) *multipart.Form {
	t.Helper()
	body, ct := multipartBody(t, nil, parts...)
	_, params, _ := strings.Cut(ct, "boundary=")
	form, err := multipart.NewReader(body, params).ReadForm(1 << 20)
	require.NoError(t, err)
	return form
}

var galleryFields = []Field{
	{Name: "profileImage", MaxCount: 1},
	{Name: "menuImages", MaxCount: 10},
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var he *httperr.Error
	require.ErrorAs(t, err, &he)
	return he.Code
}

// ======================================================
// TESTS
// ======================================================

func TestPrepareAndSaveStoresUnderRandomName(t *testing.T) {
	store := newMemStorage()
	h := NewHandler(store, DefaultPrefix)
	img := pngBytes(t)

	form := buildForm(t,
		part{"profileImage", "My Photo.png", "image/png", img},
		part{"menuImages", "menu.PNG", "image/png", img},
	)

	batch, err := h.Prepare(form, galleryFields...)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.Len())
	assert.Zero(t, store.len(), "prepare never writes")

	files, err := batch.Save(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)

	profile := files[0]
	assert.Equal(t, "profileImage", profile.Field)
	assert.NotEqual(t, profile.OriginalName, profile.StoredName)
	assert.True(t, strings.HasSuffix(profile.StoredName, "-my-photo.png"), profile.StoredName)
	assert.Equal(t, "uploads/"+profile.StoredName, profile.Path)
	assert.Equal(t, "image/png", profile.MimeType)
	assert.Equal(t, img, store.objects[profile.StoredName])

	assert.True(t, strings.HasSuffix(files[1].StoredName, "-menu.PNG"))
	assert.Equal(t, []string{files[1].Path}, files.Paths("menuImages"))
	assert.Equal(t, profile.Path, files.First("profileImage"))
	assert.Equal(t, []string{}, files.Paths("other"))
}

func TestPrepareRejectsInvalidFilesWithoutWriting(t *testing.T) {
	img := pngBytes(t)

	cases := []struct {
		name string
		part part
		code string
	}{
		{"disallowed mime", part{"menuImages", "doc.png", "text/plain", img}, httperr.CodeInvalidFile},
		{"missing mime", part{"menuImages", "doc.png", "", img}, httperr.CodeInvalidFile},
		{"disallowed extension", part{"menuImages", "photo.bmp", "image/png", img}, httperr.CodeInvalidFile},
		{"content is not an image", part{"menuImages", "photo.png", "image/png", []byte("hello")}, httperr.CodeInvalidFile},
		{"content does not match type", part{"menuImages", "photo.jpg", "image/jpeg", img}, httperr.CodeInvalidFile},
		{"unexpected field", part{"avatar", "photo.png", "image/png", img}, httperr.CodeUploadFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStorage()
			h := NewHandler(store, DefaultPrefix)

			_, err := h.Prepare(buildForm(t, tc.part), galleryFields...)
			assert.Equal(t, tc.code, codeOf(t, err))
			assert.Zero(t, store.len())
		})
	}
}

func TestPrepareRejectsOversizedFile(t *testing.T) {
	store := newMemStorage()
	h := NewHandler(store, DefaultPrefix)
	h.maxFileSize = 16

	_, err := h.Prepare(buildForm(t, part{"menuImages", "big.png", "image/png", pngBytes(t)}), galleryFields...)
	assert.Equal(t, httperr.CodeFileTooLarge, codeOf(t, err))
	assert.Zero(t, store.len())
}

func TestPrepareEnforcesCounts(t *testing.T) {
	img := pngBytes(t)
	h := NewHandler(newMemStorage(), DefaultPrefix)

	_, err := h.Prepare(buildForm(t,
		part{"profileImage", "a.png", "image/png", img},
		part{"profileImage", "b.png", "image/png", img},
	), galleryFields...)
	assert.Equal(t, httperr.CodeUploadFailed, codeOf(t, err))

	parts := []part{{"profileImage", "a.png", "image/png", img}}
	for i := 0; i < 10; i++ {
		parts = append(parts, part{"menuImages", "m.png", "image/png", img})
	}
	_, err = h.Prepare(buildForm(t, parts...), galleryFields...)
	assert.Equal(t, httperr.CodeUploadFailed, codeOf(t, err), "11 files in total")
}

func TestPrepareWithoutFiles(t *testing.T) {
	h := NewHandler(newMemStorage(), DefaultPrefix)

	batch, err := h.Prepare(nil, galleryFields...)
	require.NoError(t, err)

	files, err := batch.Save(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Equal(t, []string{}, files.Paths("menuImages"))
}

func TestSaveFailureRemovesWrittenFiles(t *testing.T) {
	store := newMemStorage()
	store.failOn = 2
	h := NewHandler(store, DefaultPrefix)
	img := pngBytes(t)

	batch, err := h.Prepare(buildForm(t,
		part{"menuImages", "a.png", "image/png", img},
		part{"menuImages", "b.png", "image/png", img},
	), galleryFields...)
	require.NoError(t, err)

	_, err = batch.Save(context.Background())
	assert.Equal(t, httperr.CodeUploadFailed, codeOf(t, err))
	assert.Zero(t, store.len())
}

func TestDiscard(t *testing.T) {
	store := newMemStorage()
	h := NewHandler(store, DefaultPrefix)

	batch, err := h.Prepare(buildForm(t, part{"menuImages", "a.png", "image/png", pngBytes(t)}), galleryFields...)
	require.NoError(t, err)
	files, err := batch.Save(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, store.len())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.Discard(ctx, files)
	assert.Zero(t, store.len())
}

func TestStoredName(t *testing.T) {
	h := NewHandler(newMemStorage(), DefaultPrefix)
	h.newID = func() string { return "id" }

	assert.Equal(t, "id-wedding-day-1.jpg", h.storedName("Wedding Day 1.jpg"))
	assert.Equal(t, "id-file.png", h.storedName("!!!.png"))
	assert.Equal(t, "id-"+strings.Repeat("a", 50)+".webp", h.storedName(strings.Repeat("a", 80)+".webp"))
}

func TestReadForm(t *testing.T) {
	h := NewHandler(newMemStorage(), DefaultPrefix)

	body, ct := multipartBody(t, map[string]string{"businessName": "Gourmet Delights"},
		part{"menuImages", "a.png", "image/png", pngBytes(t)})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", ct)

	form, err := h.ReadForm(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gourmet Delights"}, form.Value["businessName"])
	assert.Len(t, form.File["menuImages"], 1)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ownerName=Sarah+Johnson"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	form, err = h.ReadForm(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sarah Johnson"}, form.Value["ownerName"])
	assert.Empty(t, form.File)
}

func TestReadFormRejectsOversizedBody(t *testing.T) {
	h := NewHandler(newMemStorage(), DefaultPrefix)
	h.maxFiles = 1
	h.maxFileSize = 8

	big := bytes.Repeat([]byte{0}, 2<<20)
	body, ct := multipartBody(t, nil, part{"menuImages", "a.png", "image/png", big})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", ct)

	_, err := h.ReadForm(httptest.NewRecorder(), req)
	assert.Equal(t, httperr.CodeFileTooLarge, codeOf(t, err))
}
