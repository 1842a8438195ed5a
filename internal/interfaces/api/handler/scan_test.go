package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"heyday/internal/application/dto"
	"heyday/internal/interfaces/api/handler"
	"heyday/internal/interfaces/api/middleware"
	"heyday/internal/pkg/logger"
)

// multipartUpload builds a multipart body with the given form fields
// and one "file" part carrying payload.
func multipartUpload(t *testing.T, fields map[string]string, fileName string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	fw, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return body, w.FormDataContentType()
}

func TestScanUploadArtifact(t *testing.T) {
	t.Run("it should hand the file part and form fields to the service", func(t *testing.T) {
		var gotReq dto.ArtifactChunkRequest
		var gotBytes []byte
		scans := &fakeScanService{
			saveChunk: func(ctx context.Context, userID, sessionID string, req dto.ArtifactChunkRequest, data io.Reader) (dto.UploadArtifactResponse, error) {
				gotReq = req
				b, err := io.ReadAll(data)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				gotBytes = b
				return dto.UploadArtifactResponse{UploadToken: "tok-1", Completed: true}, nil
			},
		}
		h := handler.NewScanHandler(scans, logger.New())

		body, ctype := multipartUpload(t, map[string]string{"kind": "room_video"}, "room.mp4", []byte("frame-data"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/scans/s1/artifacts", body)
		req.Header.Set(echo.HeaderContentType, ctype)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.Set(middleware.UserIDKey, "u1")
		c.SetParamNames("id")
		c.SetParamValues("s1")

		if err := h.UploadArtifact(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotReq.Kind != "room_video" || gotReq.FileName != "room.mp4" {
			t.Errorf("unmatch: (actual, expected) = (%+v, %v)", gotReq, "room_video from room.mp4")
		}
		if gotReq.ChunkIndex != nil || gotReq.TotalChunks != nil {
			t.Errorf("unmatch: (actual, expected) = (%v %v, %v)", gotReq.ChunkIndex, gotReq.TotalChunks, "single-part upload")
		}
		if string(gotBytes) != "frame-data" {
			t.Errorf("unmatch: (actual, expected) = (%q, %q)", gotBytes, "frame-data")
		}
		if rec.Code != http.StatusCreated {
			t.Errorf("unmatch: (actual, expected) = (%d, %d)", rec.Code, http.StatusCreated)
		}
	})

	t.Run("it should acknowledge intermediate chunks with 202", func(t *testing.T) {
		scans := &fakeScanService{
			saveChunk: func(ctx context.Context, userID, sessionID string, req dto.ArtifactChunkRequest, data io.Reader) (dto.UploadArtifactResponse, error) {
				if req.ChunkIndex == nil || *req.ChunkIndex != 0 || req.TotalChunks == nil || *req.TotalChunks != 3 {
					t.Errorf("unmatch: (actual, expected) = (%v/%v, 0/3)", req.ChunkIndex, req.TotalChunks)
				}
				return dto.UploadArtifactResponse{UploadToken: "tok-1", Completed: false}, nil
			},
		}
		h := handler.NewScanHandler(scans, logger.New())

		body, ctype := multipartUpload(t, map[string]string{
			"kind":         "room_video",
			"chunk_index":  "0",
			"total_chunks": "3",
		}, "room.mp4", []byte("chunk-0"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/scans/s1/artifacts", body)
		req.Header.Set(echo.HeaderContentType, ctype)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.Set(middleware.UserIDKey, "u1")
		c.SetParamNames("id")
		c.SetParamValues("s1")

		if err := h.UploadArtifact(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusAccepted {
			t.Errorf("unmatch: (actual, expected) = (%d, %d)", rec.Code, http.StatusAccepted)
		}

		var res dto.UploadArtifactResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Completed || res.UploadToken != "tok-1" {
			t.Errorf("unmatch: (actual, expected) = (%+v, %v)", res, "incomplete upload with token tok-1")
		}
	})

	t.Run("it should reject a request without a file part", func(t *testing.T) {
		h := handler.NewScanHandler(&fakeScanService{}, logger.New())

		body := &bytes.Buffer{}
		w := multipart.NewWriter(body)
		if err := w.WriteField("kind", "room_video"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/scans/s1/artifacts", body)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.Set(middleware.UserIDKey, "u1")
		c.SetParamNames("id")
		c.SetParamValues("s1")

		if err := h.UploadArtifact(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("unmatch: (actual, expected) = (%d, %d)", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestScanStartProcessing(t *testing.T) {
	t.Run("it should enqueue the job and report 202", func(t *testing.T) {
		var gotAuto bool
		scans := &fakeScanService{
			startProcessing: func(ctx context.Context, userID, sessionID string, autoComplete bool) (dto.StartProcessingResponse, error) {
				gotAuto = autoComplete
				return dto.StartProcessingResponse{}, nil
			},
		}
		h := handler.NewScanHandler(scans, logger.New())

		c, rec := newTestContext(http.MethodPost, "/api/v1/scans/s1/process", `{"auto_complete": true}`, "u1")
		c.SetParamNames("id")
		c.SetParamValues("s1")

		if err := h.StartProcessing(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !gotAuto {
			t.Errorf("unmatch: (actual, expected) = (%v, %v)", gotAuto, true)
		}
		if rec.Code != http.StatusAccepted {
			t.Errorf("unmatch: (actual, expected) = (%d, %d)", rec.Code, http.StatusAccepted)
		}
	})

	t.Run("it should default to a real runner without a body", func(t *testing.T) {
		var gotAuto bool
		scans := &fakeScanService{
			startProcessing: func(ctx context.Context, userID, sessionID string, autoComplete bool) (dto.StartProcessingResponse, error) {
				gotAuto = autoComplete
				return dto.StartProcessingResponse{}, nil
			},
		}
		h := handler.NewScanHandler(scans, logger.New())

		c, rec := newTestContext(http.MethodPost, "/api/v1/scans/s1/process", "", "u1")
		c.SetParamNames("id")
		c.SetParamValues("s1")

		if err := h.StartProcessing(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotAuto {
			t.Errorf("unmatch: (actual, expected) = (%v, %v)", gotAuto, false)
		}
		if rec.Code != http.StatusAccepted {
			t.Errorf("unmatch: (actual, expected) = (%d, %d)", rec.Code, http.StatusAccepted)
		}
	})
}
