package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	baseURL = getEnv("LINK_SERVICE_URL", "http://localhost:8080")
	client  = &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		fmt.Println("Skipping integration tests. Set INTEGRATION_TEST=true to run.")
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func postJSON(t *testing.T, path string, payload any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)

	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

func TestHealthCheck(t *testing.T) {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	numbers := []uint32{0, 1, 4294967295}

	resp := postJSON(t, "/api/encode", map[string]any{"numbers": numbers})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var encoded struct {
		Hash string `json:"hash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&encoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if encoded.Hash == "" {
		t.Fatal("expected non-empty hash")
	}

	resp2, err := client.Get(baseURL + "/api/decode/" + encoded.Hash)
	if err != nil {
		t.Fatalf("decode request failed: %v", err)
	}
	defer resp2.Body.Close()

	var decoded struct {
		Numbers []uint32 `json:"numbers"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if fmt.Sprint(decoded.Numbers) != fmt.Sprint(numbers) {
		t.Errorf("expected %v, got %v", numbers, decoded.Numbers)
	}
}

func TestCreateAndRedirect(t *testing.T) {
	longURL := fmt.Sprintf("https://example.com/integration/%d", time.Now().UnixNano())

	resp := postJSON(t, "/api/links", map[string]string{"long_url": longURL})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}

	var link struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	redirect, err := client.Get(baseURL + "/" + link.Code)
	if err != nil {
		t.Fatalf("redirect request failed: %v", err)
	}
	defer redirect.Body.Close()

	if redirect.StatusCode != http.StatusFound {
		t.Errorf("expected status 302, got %d", redirect.StatusCode)
	}
	if got := redirect.Header.Get("Location"); got != longURL {
		t.Errorf("expected Location %s, got %s", longURL, got)
	}
}

func TestUnknownCode(t *testing.T) {
	resp, err := client.Get(baseURL + "/definitely-not-a-code")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", resp.StatusCode)
	}
}
