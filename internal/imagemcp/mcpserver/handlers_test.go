package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samestrin/llm-image-mcp/pkg/imageapi"
)

const testCategories = `[
	{"name":"products","sizes":[
		{"name":"thumbnail","width":150,"height":150,"mimeType":"image/jpeg"}
	]}
]`

// fakeService wires a handler to an httptest image service.
func fakeService(t *testing.T, mux *http.ServeMux) *Handler {
	t.Helper()
	// Category list is consulted by the size cache for metadata rendering.
	mux.HandleFunc("GET "+imageapi.CategoryListPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testCategories))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewHandler(imageapi.NewClient(srv.URL, "test-key"))
}

func TestExecuteGetImageMetadata(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/image/img-1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"img-1","category":"products","resizedFiles":[{"size":"thumbnail","s3Path":"s3://b/t.jpg"}]}`))
	})
	h := fakeService(t, mux)

	got, err := h.Execute(context.Background(), "get_image_metadata", map[string]interface{}{"imageServiceId": "img-1"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{
		"## Image Metadata",
		"img-1",
		"products",
		"thumbnail (150x150, image/jpeg)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestExecuteGetImageMetadataNoResizedFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/image/img-2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"img-2","category":"products"}`))
	})
	h := fakeService(t, mux)

	got, err := h.Execute(context.Background(), "get_image_metadata", map[string]interface{}{"imageServiceId": "img-2"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(got, "no resized files") {
		t.Errorf("output missing no-resized-files marker:\n%s", got)
	}
}

func TestExecuteGetImageMetadataNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/image/missing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})
	h := fakeService(t, mux)

	_, err := h.Execute(context.Background(), "get_image_metadata", map[string]interface{}{"imageServiceId": "missing"})
	if err == nil {
		t.Fatal("Execute() error = nil for 404")
	}
	if !strings.Contains(err.Error(), `"error": "not found"`) {
		t.Errorf("error = %q, want pretty-printed error object", err)
	}
}

func TestExecuteTranscode(t *testing.T) {
	var gotMethod string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/image/img-1/transcode", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"img-1","category":"products"}`))
	})
	h := fakeService(t, mux)

	got, err := h.Execute(context.Background(), "transcode_image", map[string]interface{}{"imageServiceId": "img-1"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if !strings.Contains(got, "## Transcode Requested") {
		t.Errorf("output missing heading:\n%s", got)
	}
}

func TestExecuteListCategories(t *testing.T) {
	h := fakeService(t, http.NewServeMux())

	got, err := h.Execute(context.Background(), "list_categories", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"### products", "thumbnail: 150x150 (image/jpeg)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestExecuteGetResizedImage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/image/s/img-1/thumbnail", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://x/y"}`))
	})
	h := fakeService(t, mux)

	got, err := h.Execute(context.Background(), "get_resized_image", map[string]interface{}{
		"imageServiceId": "img-1",
		"size":           "thumbnail",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(got, "https://x/y") {
		t.Errorf("output missing literal URL:\n%s", got)
	}
}

func TestExecuteUploadSetsForceImmediateResize(t *testing.T) {
	tests := []struct {
		tool string
		want string
	}{
		{tool: "upload_image", want: "false"},
		{tool: "upload_and_resize_image", want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			var gotResize string
			mux := http.NewServeMux()
			mux.HandleFunc("POST /api/image/products", func(w http.ResponseWriter, r *http.Request) {
				gotResize = r.URL.Query().Get("forceImmediateResize")
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"id":"new-img","category":"products"}`))
			})
			h := fakeService(t, mux)

			file := filepath.Join(t.TempDir(), "photo.jpg")
			if err := os.WriteFile(file, []byte("jpeg-bytes"), 0644); err != nil {
				t.Fatal(err)
			}

			got, err := h.Execute(context.Background(), tt.tool, map[string]interface{}{
				"category": "products",
				"filename": file,
			})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if gotResize != tt.want {
				t.Errorf("forceImmediateResize = %q, want %q", gotResize, tt.want)
			}
			if !strings.Contains(got, "## Image Uploaded") {
				t.Errorf("output missing heading:\n%s", got)
			}
			if !strings.Contains(got, "new-img") {
				t.Errorf("output missing uploaded id:\n%s", got)
			}
		})
	}
}

func TestExecuteUploadMissingFile(t *testing.T) {
	h := fakeService(t, http.NewServeMux())

	_, err := h.Execute(context.Background(), "upload_image", map[string]interface{}{
		"category": "products",
		"filename": filepath.Join(t.TempDir(), "nope.jpg"),
	})
	if err == nil {
		t.Fatal("Execute() error = nil for missing upload file")
	}
}

func TestExecuteUploadRejectsTemplateVars(t *testing.T) {
	h := fakeService(t, http.NewServeMux())

	_, err := h.Execute(context.Background(), "upload_image", map[string]interface{}{
		"category": "products",
		"filename": "${UPLOAD_DIR}/photo.jpg",
	})
	if err == nil || !strings.Contains(err.Error(), "unresolved template variable") {
		t.Errorf("Execute() error = %v, want unresolved template variable", err)
	}
}

func TestExecuteMissingArguments(t *testing.T) {
	h := fakeService(t, http.NewServeMux())

	tests := []struct {
		tool string
		args map[string]interface{}
		want string
	}{
		{tool: "get_image_metadata", args: nil, want: "imageServiceId is required"},
		{tool: "transcode_image", args: map[string]interface{}{}, want: "imageServiceId is required"},
		{tool: "get_resized_image", args: map[string]interface{}{"imageServiceId": "x"}, want: "size is required"},
		{tool: "upload_image", args: map[string]interface{}{"category": "products"}, want: "filename is required"},
		{tool: "upload_and_resize_image", args: map[string]interface{}{"filename": "f"}, want: "category is required"},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.tool, tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Execute() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	h := fakeService(t, http.NewServeMux())

	_, err := h.Execute(context.Background(), "delete_image", nil)
	if err == nil || !strings.Contains(err.Error(), "unknown tool") {
		t.Errorf("Execute() error = %v, want unknown tool", err)
	}
}
