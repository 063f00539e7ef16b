package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func setWordList(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "techwords.txt")
	if err := os.WriteFile(path, []byte("Go\nDocker\n"), 0o644); err != nil {
		t.Fatalf("Failed to write word list: %v", err)
	}
	t.Setenv("TECHWORDS_PATH", path)
	t.Setenv("LOG_LEVEL", "error")
}

func resetSharedHandler() {
	sharedMu.Lock()
	sharedHandler = nil
	sharedMu.Unlock()
}

// TestHealthCheck tests the health check endpoint directly
func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	healthCheck(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	if resp.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", resp.Header.Get("Content-Type"))
	}

	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", result["status"])
	}
	if result["version"] != Version {
		t.Errorf("Expected version '%s', got '%s'", Version, result["version"])
	}
}

// TestCreateHandler tests handler creation with valid environment
func TestCreateHandler(t *testing.T) {
	setWordList(t)

	handler, cleanup, err := CreateHandler()
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}
	defer cleanup()

	tests := []struct {
		name     string
		method   string
		target   string
		expected int
	}{
		{"health check", "GET", "/healthz", http.StatusOK},
		{"metrics", "GET", "/metrics", http.StatusOK},
		{"trigger without url", "GET", "/", http.StatusBadRequest},
		{"entries without url", "GET", "/entries", http.StatusBadRequest},
		{"preflight", "OPTIONS", "/entries", http.StatusNoContent},
		{"unknown path", "GET", "/unknown", http.StatusNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(test.method, test.target, nil))

			if w.Code != test.expected {
				t.Errorf("%s %s: expected status %d, got %d", test.method, test.target, test.expected, w.Code)
			}
		})
	}
}

// TestCreateHandler_InvalidEnv tests handler creation with invalid environment
func TestCreateHandler_InvalidEnv(t *testing.T) {
	t.Setenv("TECHWORDS_PATH", "")

	_, _, err := CreateHandler()
	if err == nil {
		t.Error("Expected CreateHandler to fail with invalid environment, but it succeeded")
	}
}

// TestHandleRequest tests the Cloud Functions entry point
func TestHandleRequest(t *testing.T) {
	setWordList(t)
	resetSharedHandler()
	defer resetSharedHandler()

	w := httptest.NewRecorder()
	HandleRequest(w, httptest.NewRequest("GET", "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	first, err := handlerForProcess()
	if err != nil {
		t.Fatalf("Failed to get handler: %v", err)
	}
	second, _ := handlerForProcess()
	if first != second {
		t.Error("Expected the handler to be shared across requests")
	}
}

// TestHandleRequest_InvalidEnv tests HandleRequest with invalid environment
func TestHandleRequest_InvalidEnv(t *testing.T) {
	t.Setenv("TECHWORDS_PATH", "")
	resetSharedHandler()
	defer resetSharedHandler()

	w := httptest.NewRecorder()
	HandleRequest(w, httptest.NewRequest("GET", "/healthz", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}
