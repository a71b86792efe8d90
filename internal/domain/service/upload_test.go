package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/kalakriti/banner-engine/internal/errors"
	"github.com/stretchr/testify/require"
)

func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	return data
}

func jpegBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	return data
}

func TestUploadImage(t *testing.T) {

	svc, err := NewUploadService(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	tests := []struct {
		name     string
		dto      entity.UploadImageDTO
		wantCode errors.ErrorCode
	}{
		{
			name: "valid png",
			dto: entity.UploadImageDTO{
				Filename: "hero.png",
				Size:     1024,
				Data:     pngBytes(1024),
			},
		},
		{
			name: "valid jpeg",
			dto: entity.UploadImageDTO{
				Filename: "hero.jpg",
				Size:     2048,
				Data:     jpegBytes(2048),
			},
		},
		{
			name: "valid gif",
			dto: entity.UploadImageDTO{
				Filename: "promo.gif",
				Size:     6,
				Data:     []byte("GIF89a"),
			},
		},
		{
			name: "6MB jpeg rejected for size",
			dto: entity.UploadImageDTO{
				Filename: "big.jpg",
				Size:     6 * 1024 * 1024,
				Data:     jpegBytes(6 * 1024 * 1024),
			},
			wantCode: errors.ErrBadUpload,
		},
		{
			name: "pdf rejected for type",
			dto: entity.UploadImageDTO{
				Filename: "catalog.pdf",
				Size:     1024,
				Data:     append([]byte("%PDF-1.4"), make([]byte, 1016)...),
			},
			wantCode: errors.ErrBadUpload,
		},
		{
			name: "plain text rejected for type",
			dto: entity.UploadImageDTO{
				Filename: "notes.txt",
				Size:     11,
				Data:     []byte("hello world"),
			},
			wantCode: errors.ErrBadUpload,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.UploadImage(ctx, tt.dto)
			if tt.wantCode != "" {
				require.Error(t, err)
				require.Equal(t, tt.wantCode, errors.Code(err))
				return
			}

			require.NoError(t, err)
			require.True(t, strings.HasPrefix(result.URL, "/api/uploads/"))

			// the stored file must resolve through Open
			name := strings.TrimPrefix(result.URL, "/api/uploads/")
			path, err := svc.Open(name)
			require.NoError(t, err)

			stored, err := os.ReadFile(path)
			require.NoError(t, err)
			require.Equal(t, tt.dto.Data, stored)
		})
	}
}

func TestOpen_RefusesTraversal(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewUploadService(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.png"), pngBytes(16), 0o644))

	_, err = svc.Open("ok.png")
	require.NoError(t, err)

	_, err = svc.Open("../ok.png")
	require.Error(t, err)

	_, err = svc.Open("missing.png")
	require.Error(t, err)
}
