package http_handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/adapter/outbound/diskstore"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/adapter/outbound/imageproc"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/config"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/service"
	"github.com/anthanhphan/go-image-scrubber/pkg/idgen"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, maxUploadBytes int64) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.App.MaxUploadBytes = maxUploadBytes
	cfg.Storage.DataDir = t.TempDir()

	store, err := diskstore.NewDiskStore(cfg.Storage)
	require.NoError(t, err)

	codec := imageproc.NewCodec(cfg.App.JPEGQuality)
	svc := service.NewScrubService(cfg, store, codec, idgen.New())

	return NewServer(cfg, svc)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 12, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartBody(t *testing.T, fileName string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func uploadFile(t *testing.T, srv *Server, fileName string, payload []byte) *http.Response {
	t.Helper()

	body, contentType := multipartBody(t, fileName, payload)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := srv.Handler().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestServer_UploadAndDownloadOnce(t *testing.T) {
	srv := newTestServer(t, 1024*1024)

	resp := uploadFile(t, srv, "vacation.png", pngBytes(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var receipt struct {
		Success       bool              `json:"success"`
		FileID        string            `json:"file_id"`
		OriginalName  string            `json:"original_filename"`
		OriginalSize  int64             `json:"original_size"`
		ProcessedSize int64             `json:"processed_size"`
		Metadata      map[string]string `json:"exif_data"`
	}
	decodeJSON(t, resp, &receipt)

	require.True(t, receipt.Success)
	require.True(t, idgen.Valid(receipt.FileID), "file id %q is not a valid token", receipt.FileID)
	require.Equal(t, "vacation.png", receipt.OriginalName)
	require.Positive(t, receipt.OriginalSize)
	require.Positive(t, receipt.ProcessedSize)
	require.Empty(t, receipt.Metadata)

	// First download delivers a clean JPEG.
	dlReq := httptest.NewRequest(http.MethodGet, "/download/"+receipt.FileID, nil)
	dlResp, err := srv.Handler().Test(dlReq, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, dlResp.StatusCode)
	require.Equal(t, "image/jpeg", dlResp.Header.Get("Content-Type"))
	require.Contains(t, dlResp.Header.Get("Content-Disposition"), "sanitized_"+receipt.FileID)

	delivered, err := io.ReadAll(dlResp.Body)
	require.NoError(t, err)
	require.NoError(t, dlResp.Body.Close())

	_, format, err := image.Decode(bytes.NewReader(delivered))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)

	meta, err := imageproc.NewCodec(95).ExtractMetadata(context.Background(), delivered)
	require.NoError(t, err)
	require.Empty(t, meta)

	// Second download of the same id must fail, the object is gone.
	dlReq2 := httptest.NewRequest(http.MethodGet, "/download/"+receipt.FileID, nil)
	dlResp2, err := srv.Handler().Test(dlReq2, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, dlResp2.StatusCode)
	require.NoError(t, dlResp2.Body.Close())
}

func TestServer_UploadRejectsUnsupportedExtension(t *testing.T) {
	srv := newTestServer(t, 1024*1024)

	resp := uploadFile(t, srv, "clip.gif", pngBytes(t))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &body)
	require.Contains(t, body.Error, "Unsupported file type")
}

func TestServer_UploadRejectsCorruptImage(t *testing.T) {
	srv := newTestServer(t, 1024*1024)

	resp := uploadFile(t, srv, "junk.jpg", []byte("this is not a jpeg at all"))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestServer_UploadRejectsOversizePayload(t *testing.T) {
	srv := newTestServer(t, 16)

	resp := uploadFile(t, srv, "big.png", pngBytes(t))
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestServer_UploadRequiresFilePart(t *testing.T) {
	srv := newTestServer(t, 1024*1024)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := srv.Handler().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_DownloadUnknownIdentifier(t *testing.T) {
	srv := newTestServer(t, 1024*1024)

	req := httptest.NewRequest(http.MethodGet, "/download/00000000000000000000000000000000", nil)
	resp, err := srv.Handler().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t, 1024*1024)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := srv.Handler().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status           string   `json:"status"`
		MaxUploadBytes   int64    `json:"max_upload_bytes"`
		SupportedFormats []string `json:"supported_formats"`
	}
	decodeJSON(t, resp, &body)
	require.Equal(t, "ok", body.Status)
	require.Equal(t, int64(1024*1024), body.MaxUploadBytes)
	require.Contains(t, body.SupportedFormats, "jpg")
}
