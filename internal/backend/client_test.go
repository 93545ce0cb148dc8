package backend_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/optibridge/internal/backend"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.New(srv.URL, 5*time.Second)
}

func TestProcessFromPath_DecodesResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/process/file" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if body["path"] != "/tmp/shot.png" {
			t.Errorf("path in body = %q", body["path"])
		}
		json.NewEncoder(w).Encode(backend.ProcessedImage{
			TempID:   "t1",
			SizeInfo: "1.2 MB → 300 KB",
		})
	})

	img, err := c.ProcessFromPath("/tmp/shot.png")
	if err != nil {
		t.Fatalf("ProcessFromPath: %v", err)
	}
	if img.TempID != "t1" {
		t.Errorf("TempID = %q, want %q", img.TempID, "t1")
	}
}

func TestUpload_SendsProviderAndTempID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["temp_id"] != "t1" || body["provider"] != "r2" {
			t.Errorf("body = %v", body)
		}
		json.NewEncoder(w).Encode(backend.UploadResult{URL: "https://r2.example/x.webp"})
	})

	res, err := c.Upload("t1", backend.ProviderR2)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.URL != "https://r2.example/x.webp" {
		t.Errorf("URL = %q", res.URL)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, backend.ErrNotFound},
		{http.StatusBadRequest, backend.ErrBadRequest},
		{http.StatusUnprocessableEntity, backend.ErrBadRequest},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
		})
		err := c.Ping()
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: err = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestErrorBody_Surfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "no image in clipboard"})
	})

	_, err := c.ProcessFromClipboard()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got == "" || !errors.Is(err, backend.ErrBadRequest) {
		t.Fatalf("err = %v", err)
	}
	if want := "no image in clipboard"; !strings.Contains(err.Error(), want) {
		t.Errorf("err = %q, want it to mention %q", err.Error(), want)
	}
}

func TestUnreachableDaemon(t *testing.T) {
	c := backend.New("http://127.0.0.1:1", time.Second)
	if err := c.Ping(); !errors.Is(err, backend.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestDeleteHistoryItem_SendsAllFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["id"] != "id-1" || body["url"] != "https://x/1.webp" || body["provider"] != "cloudinary" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteHistoryItem("id-1", "https://x/1.webp", backend.ProviderCloudinary); err != nil {
		t.Fatalf("DeleteHistoryItem: %v", err)
	}
}
