package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/safeguardx/safeguardx/internal/api/dto"
	"github.com/safeguardx/safeguardx/internal/config"
	"github.com/safeguardx/safeguardx/internal/detector"
	"github.com/safeguardx/safeguardx/internal/domain/threat"
	"github.com/safeguardx/safeguardx/internal/pkg/validator"
	"github.com/safeguardx/safeguardx/internal/repository/memory"
	"github.com/safeguardx/safeguardx/internal/services"
	"github.com/safeguardx/safeguardx/internal/testutil"
	"github.com/safeguardx/safeguardx/internal/worker"
)

type errorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testEnv struct {
	store  *memory.ThreatStore
	engine *services.ResponseEngine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := testutil.NewTestLogger()
	store := memory.NewThreatStore()
	pool := worker.NewPool(2, log)
	t.Cleanup(func() { _ = pool.StopWithTimeout(time.Second) })

	cfg := config.ResponseConfig{
		Workers:             2,
		AutoResponseDelay:   time.Millisecond,
		MitigationStepDelay: time.Millisecond,
		AutoResolveDelay:    time.Millisecond,
		PlaybookDelay:       time.Millisecond,
	}
	engine := services.NewResponseEngine(store, pool, &testutil.MockMitigator{}, cfg, log)
	return &testEnv{store: store, engine: engine}
}

func (e *testEnv) analyzeHandler(rng detector.Rand) *AnalyzeHandler {
	log := testutil.NewTestLogger()
	svc := services.NewDetectionService(detector.NewScorer(rng), e.store, e.engine, 0.6, log)
	return NewAnalyzeHandler(svc, log, validator.New())
}

// withURLParam injects a chi route parameter into the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (body: %s)", err, rec.Body.String())
	}
	return env
}

func TestAnalyzeHandler(t *testing.T) {
	env := newTestEnv(t)
	h := env.analyzeHandler(&testutil.FixedRand{Floats: []float64{0}, Ints: []int{0}})

	t.Run("clean log processed without detection", func(t *testing.T) {
		body := `{"source":"web-01","level":"INFO","message":"user logged in"}`
		req := httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Analyze(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp dto.AnalyzeResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Status != "processed" {
			t.Errorf("Status = %q, want processed", resp.Status)
		}
		if resp.ThreatDetected || resp.Threat != nil {
			t.Error("threat detected for clean log")
		}
	})

	t.Run("suspicious log materializes threat and alert", func(t *testing.T) {
		body := `{"source":"auth-01","level":"ERROR","message":"failed login burst"}`
		req := httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Analyze(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp dto.AnalyzeResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.ThreatDetected {
			t.Fatalf("ThreatDetected = false, score %v", resp.AnomalyScore)
		}
		if resp.Threat == nil || resp.Alert == nil {
			t.Fatal("threat or alert missing from response")
		}
		if resp.Alert.ThreatID != resp.Threat.ID {
			t.Errorf("alert ThreatID = %d, want %d", resp.Alert.ThreatID, resp.Threat.ID)
		}
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		h.Analyze(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if env := decodeErr(t, rec); env.Error.Code != "BAD_REQUEST" {
			t.Errorf("code = %q, want BAD_REQUEST", env.Error.Code)
		}
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader(`{"source":"web-01"}`))
		rec := httptest.NewRecorder()

		h.Analyze(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if env := decodeErr(t, rec); env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("code = %q, want VALIDATION_ERROR", env.Error.Code)
		}
	})
}

func seedThreats(t *testing.T, store *memory.ThreatStore, n int) []*threat.Threat {
	t.Helper()
	out := make([]*threat.Threat, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, testutil.SeedThreat(t, store, threat.SeverityHigh, "Brute Force"))
	}
	return out
}

func TestThreatHandlerListActive(t *testing.T) {
	env := newTestEnv(t)
	h := NewThreatHandler(env.store, env.engine, testutil.NewTestLogger())

	seeded := seedThreats(t, env.store, 3)
	if err := env.store.UpdateStatus(seeded[0].ID, threat.StatusResolved, nil); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/v1/threats/active", nil)
	rec := httptest.NewRecorder()
	h.ListActive(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp dto.ActiveThreatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.Threats) != 2 {
		t.Errorf("Count = %d, len = %d, want 2", resp.Count, len(resp.Threats))
	}
}

func TestThreatHandlerHistory(t *testing.T) {
	env := newTestEnv(t)
	h := NewThreatHandler(env.store, env.engine, testutil.NewTestLogger())
	seedThreats(t, env.store, 5)

	tests := []struct {
		name    string
		query   string
		wantLen int
	}{
		{"default limit", "", 5},
		{"explicit limit", "?limit=2", 2},
		{"invalid limit falls back to default", "?limit=abc", 5},
		{"negative limit falls back to default", "?limit=-1", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/threats/history"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.History(rec, req)

			var resp dto.ThreatHistoryResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(resp.Threats) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(resp.Threats), tt.wantLen)
			}
			if resp.Total != 5 {
				t.Errorf("Total = %d, want 5", resp.Total)
			}
		})
	}
}

func TestThreatHandlerRespond(t *testing.T) {
	env := newTestEnv(t)
	h := NewThreatHandler(env.store, env.engine, testutil.NewTestLogger())
	testutil.SeedThreat(t, env.store, threat.SeverityHigh, "Brute Force")

	t.Run("invalid id", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest("POST", "/api/v1/threats/abc/respond", nil), "id", "abc")
		rec := httptest.NewRecorder()
		h.Respond(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown threat", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest("POST", "/api/v1/threats/999/respond", nil), "id", "999")
		rec := httptest.NewRecorder()
		h.Respond(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		if env := decodeErr(t, rec); env.Error.Code != "NOT_FOUND" {
			t.Errorf("code = %q, want NOT_FOUND", env.Error.Code)
		}
	})

	t.Run("empty body defaults to auto_mitigate", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest("POST", "/api/v1/threats/1/respond", nil), "id", "1")
		rec := httptest.NewRecorder()
		h.Respond(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
		}
		var resp dto.RespondResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.ResponseType != threat.PlaybookAutoMitigate {
			t.Errorf("ResponseType = %q, want auto_mitigate", resp.ResponseType)
		}
	})

	t.Run("already responding", func(t *testing.T) {
		body := strings.NewReader(`{"action":"contain"}`)
		req := withURLParam(httptest.NewRequest("POST", "/api/v1/threats/1/respond", body), "id", "1")
		rec := httptest.NewRecorder()
		h.Respond(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if env := decodeErr(t, rec); env.Error.Code != "INVALID_STATE" {
			t.Errorf("code = %q, want INVALID_STATE", env.Error.Code)
		}
	})
}

func TestAlertHandler(t *testing.T) {
	env := newTestEnv(t)
	h := NewAlertHandler(env.store, testutil.NewTestLogger())
	seedThreats(t, env.store, 2)

	t.Run("list all", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/alerts", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		var resp dto.AlertsResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Alerts) != 2 || resp.UnreadCount != 2 {
			t.Errorf("len = %d, unread = %d, want 2/2", len(resp.Alerts), resp.UnreadCount)
		}
	})

	t.Run("mark read", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest("PUT", "/api/v1/alerts/1/read", nil), "id", "1")
		rec := httptest.NewRecorder()
		h.MarkRead(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		req = httptest.NewRequest("GET", "/api/v1/alerts?unread_only=true", nil)
		rec = httptest.NewRecorder()
		h.List(rec, req)

		var resp dto.AlertsResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Alerts) != 1 || resp.UnreadCount != 1 {
			t.Errorf("len = %d, unread = %d, want 1/1", len(resp.Alerts), resp.UnreadCount)
		}
	})

	t.Run("mark read unknown alert", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest("PUT", "/api/v1/alerts/99/read", nil), "id", "99")
		rec := httptest.NewRecorder()
		h.MarkRead(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestDashboardHandler(t *testing.T) {
	env := newTestEnv(t)
	h := NewDashboardHandler(services.NewReportingService(env.store))
	seedThreats(t, env.store, 2)

	req := httptest.NewRequest("GET", "/api/v1/dashboard/metrics", nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp services.DashboardMetrics
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ActiveThreats != 2 {
		t.Errorf("ActiveThreats = %d, want 2", resp.ActiveThreats)
	}
	if resp.SystemStatus != "operational" {
		t.Errorf("SystemStatus = %q", resp.SystemStatus)
	}
}

func multipartBody(t *testing.T, field, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestScanHandler(t *testing.T) {
	log := testutil.NewTestLogger()
	h := NewScanHandler(services.NewScanService(10<<20, log), log)

	t.Run("scan upload", func(t *testing.T) {
		body, contentType := multipartBody(t, "file", "dropper.exe", "MZ payload")
		req := httptest.NewRequest("POST", "/api/scan", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.Scan(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
		}
		var resp services.ScanResult
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.FileName != "dropper.exe" {
			t.Errorf("FileName = %q", resp.FileName)
		}
		if resp.ThreatLevel != "medium" {
			t.Errorf("ThreatLevel = %q, want medium", resp.ThreatLevel)
		}
	})

	t.Run("missing file field", func(t *testing.T) {
		body, contentType := multipartBody(t, "upload", "x.txt", "x")
		req := httptest.NewRequest("POST", "/api/scan", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.Scan(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("not multipart", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/scan", strings.NewReader("raw"))
		rec := httptest.NewRecorder()

		h.Scan(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("hash lookup", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest("GET", "/api/lookup/abc123", nil), "hash", "abc123")
		rec := httptest.NewRecorder()

		h.Lookup(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp services.HashLookup
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Hash != "abc123" || resp.KnownMalware {
			t.Errorf("lookup = %+v", resp)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler("1.0.0")

	t.Run("root", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Root(rec, httptest.NewRequest("GET", "/", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp["status"] != "operational" || resp["version"] != "1.0.0" {
			t.Errorf("body = %v", resp)
		}
	})

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest("GET", "/health", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", resp["status"])
		}
	})
}
