package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupScanRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := &Handler{}
	r := gin.New()
	r.POST("/scan/parse", handler.ParseScanCode)
	return r
}

func postScan(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scan/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestParseScanCodeEndpoint(t *testing.T) {
	r := setupScanRouter()

	w := postScan(t, r, `{"codigo":"ABC|DEF|VIG-200"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
		Data       *struct {
			Marca    string `json:"marca"`
			Cantidad int    `json:"cantidad"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Data == nil || resp.Data.Marca != "VIG-200" || resp.Data.Cantidad != 1 {
		t.Fatalf("unexpected candidate: %+v", resp.Data)
	}
}

func TestParseScanCodeEndpointUnparseable(t *testing.T) {
	r := setupScanRouter()

	// Whitespace-only payload: success envelope, null candidate.
	w := postScan(t, r, `{"codigo":"   "}`)
	var resp struct {
		StatusCode int             `json:"status_code"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if string(resp.Data) != "null" {
		t.Fatalf("data want null got %s", resp.Data)
	}
}

func TestParseScanCodeEndpointMissingBody(t *testing.T) {
	r := setupScanRouter()

	w := postScan(t, r, `{}`)
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
}
