package upload

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestLocalStore_SaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := NewLocalStore(dir, "/uploads/", 0)

	img, err := s.Save(context.Background(), fileHeader(t, "My Painting!.png", pngBytes))
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.MimeType)
	assert.True(t, strings.HasPrefix(img.URL, "/uploads/image-"), img.URL)
	assert.True(t, strings.HasSuffix(img.Key, "_My_Painting_.png"), img.Key)

	data, err := os.ReadFile(filepath.Join(dir, img.Key))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	require.NoError(t, s.Remove(context.Background(), img.Key))
	_, err = os.Stat(filepath.Join(dir, img.Key))
	assert.True(t, os.IsNotExist(err))

	// removing twice is fine
	assert.NoError(t, s.Remove(context.Background(), img.Key))
}

func TestLocalStore_Rejects(t *testing.T) {
	dir := t.TempDir()

	_, err := NewLocalStore(dir, "/uploads", 0).Save(context.Background(), fileHeader(t, "empty.png", nil))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = NewLocalStore(dir, "/uploads", 0).Save(context.Background(), fileHeader(t, "notes.png", []byte("plain text, not an image")))
	assert.ErrorIs(t, err, ErrInvalidMimeType)

	_, err = NewLocalStore(dir, "/uploads", 10).Save(context.Background(), fileHeader(t, "big.png", pngBytes))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "sunset_over_lake", sanitizeName("sunset over lake.jpg"))
	assert.Equal(t, "passwd", sanitizeName("../../etc/passwd"))
	assert.Equal(t, "image", sanitizeName(".png"))
	assert.Len(t, sanitizeName(strings.Repeat("a", 80)+".png"), 40)
}

type mockObjectAPI struct {
	mock.Mock
}

func (m *mockObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *mockObjectAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func TestS3Store_SaveAndRemove(t *testing.T) {
	api := new(mockObjectAPI)
	api.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "gallery" && *in.ContentType == "image/png" && strings.HasPrefix(*in.Key, "artworks/")
	})).Return(&s3.PutObjectOutput{}, nil)

	s := NewS3Store(api, "gallery", "https://cdn.example.com/gallery/", 0)
	img, err := s.Save(context.Background(), fileHeader(t, "a.png", pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/gallery/"+img.Key, img.URL)
	assert.True(t, strings.HasSuffix(img.Key, ".png"))

	api.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return *in.Bucket == "gallery" && *in.Key == img.Key
	})).Return(&s3.DeleteObjectOutput{}, nil)
	require.NoError(t, s.Remove(context.Background(), img.Key))

	api.AssertExpectations(t)
}

func TestS3Store_PutFailure(t *testing.T) {
	api := new(mockObjectAPI)
	api.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := NewS3Store(api, "gallery", "http://minio:9000/gallery", 0).Save(context.Background(), fileHeader(t, "a.png", pngBytes))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
