package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newTestService(t *testing.T, maxWidth int) (FileService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir, "/api/v1/signatures")
	require.NoError(t, err)
	return NewFileService(store, maxWidth), dir
}

func TestUploadSignature_StoresAndServes(t *testing.T) {
	ctx := context.Background()
	svc, dir := newTestService(t, 600)

	res, err := svc.UploadSignature(ctx, "w1", pngDataURL(t, 40, 20))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Path, "w1_"))
	assert.True(t, strings.HasSuffix(res.Path, ".png"))
	assert.Equal(t, "/api/v1/signatures/"+res.Path, res.ViewURL)

	_, err = os.Stat(filepath.Join(dir, res.Path))
	require.NoError(t, err)

	rc, contentType, err := svc.OpenSignature(ctx, res.Path)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "image/png", contentType)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestUploadSignature_DownscalesWideImages(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, 100)

	res, err := svc.UploadSignature(ctx, "w1", pngDataURL(t, 400, 200))
	require.NoError(t, err)

	img, err := svc.LoadSignature(ctx, res.Path)
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestUploadSignature_RejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t, 600)

	for _, in := range []string{
		"",
		"not a data url",
		"data:image/gif;base64,R0lGODlhAQABAAAAACw=",
		"data:image/png;base64,",
		"data:image/png;base64,%%%",
	} {
		_, err := svc.UploadSignature(context.Background(), "w1", in)
		assert.ErrorIs(t, err, ErrInvalidImage, "input %q", in)
	}
}

func TestOpenSignature_IgnoresDirectories(t *testing.T) {
	ctx := context.Background()
	svc, dir := newTestService(t, 600)

	outside := filepath.Join(filepath.Dir(dir), "secret.png")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0644))
	t.Cleanup(func() { os.Remove(outside) })

	_, _, err := svc.OpenSignature(ctx, "../secret.png")
	assert.ErrorIs(t, err, ErrSignatureNotFound)

	_, _, err = svc.OpenSignature(ctx, "missing.png")
	assert.ErrorIs(t, err, ErrSignatureNotFound)
}

func TestLoadSignature_References(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, 600)

	dataURL := pngDataURL(t, 10, 10)
	res, err := svc.UploadSignature(ctx, "w1", dataURL)
	require.NoError(t, err)

	for _, ref := range []string{
		res.Path,
		res.ViewURL,
		"http://example.com/api/get_signature.php?file=" + res.Path,
		dataURL,
	} {
		img, err := svc.LoadSignature(ctx, ref)
		require.NoError(t, err, ref)
		assert.Equal(t, ".png", img.Extension)
		assert.NotEmpty(t, img.Data)
	}

	_, err = svc.LoadSignature(ctx, "")
	assert.ErrorIs(t, err, ErrSignatureNotFound)
}
