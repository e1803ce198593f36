package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gridaxis/pkg/observability"
	"github.com/matzehuels/gridaxis/pkg/pipeline"
	"github.com/matzehuels/gridaxis/pkg/problem"
)

const columns = `{
  "name": "columns",
  "spacing": 4,
  "elements": [
    {"index": 0, "min": 10, "preferred": 40},
    {"index": 1, "min": 10, "max": 20}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(pipeline.NewRunner(nil, nil, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := decode[healthResponse](t, resp); got.Status != "ok" {
		t.Errorf("status = %q", got.Status)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request ID header")
	}
}

func TestBounds(t *testing.T) {
	resp := post(t, newTestServer(t).URL+"/v1/bounds", columns)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	b := decode[problem.Bounds](t, resp)
	if b.Min != 24 || b.Preferred != 54 || !b.Unbounded || b.Strategy != "uniform" {
		t.Errorf("bounds = %+v", b)
	}
}

func TestSolve(t *testing.T) {
	resp := post(t, newTestServer(t).URL+"/v1/solve?sizes=50", columns)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	res := decode[pipeline.Result](t, resp)
	if len(res.Solutions) != 1 {
		t.Fatalf("got %d solutions", len(res.Solutions))
	}
	want := []problem.Placement{
		{Index: 0, Location: 0, Size: 26},
		{Index: 1, Location: 30, Size: 20},
	}
	if diff := cmp.Diff(want, res.Solutions[0].Elements); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed json", "/v1/solve", `{"elements":`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown field", "/v1/solve", `{"columns":[]}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad bounds", "/v1/bounds", `{"elements":[{"index":0,"min":5,"max":1}]}`, http.StatusBadRequest, "INVALID_PROBLEM"},
		{"bad size", "/v1/solve?sizes=10,abc", columns, http.StatusBadRequest, "INVALID_INPUT"},
		{"negative size", "/v1/solve?sizes=-4", columns, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad strategy", "/v1/solve", `{"strategy":"greedy","elements":[]}`, http.StatusBadRequest, "INVALID_STRATEGY"},
		{"bound above limit", "/v1/solve", `{"elements":[{"index":0,"min":2000000000},{"index":1,"min":5}]}`, http.StatusBadRequest, "INVALID_PROBLEM"},
		{"too many elements", "/v1/solve", `{"elements":[{"index":64,"min":1}]}`, http.StatusBadRequest, "INVALID_PROBLEM"},
		{"size above limit", "/v1/solve?sizes=1000000000", columns, http.StatusBadRequest, "INVALID_INPUT"},
		{"too many sizes", "/v1/solve?sizes=" + strings.Repeat("10,", 32) + "10", columns, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown route", "/v2/solve", columns, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decode[errorResponse](t, resp)
			if body.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
			if body.Error.RequestID == "" || body.Error.RequestID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("request id = %q, header %q", body.Error.RequestID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

func TestSolveDeadline(t *testing.T) {
	logger := log.New(io.Discard)
	h := New(pipeline.NewRunner(nil, nil, logger), logger, WithTimeout(time.Second)).Handler()

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	req := httptest.NewRequest(http.MethodPost, "/v1/solve", strings.NewReader(columns)).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != "TIMEOUT" {
		t.Errorf("code = %q, want TIMEOUT", body.Error.Code)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	srv := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestParseSizes(t *testing.T) {
	got, err := parseSizes(" 320, 640 ")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{320, 640}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got, err := parseSizes(""); got != nil || err != nil {
		t.Errorf("parseSizes(\"\") = (%v, %v)", got, err)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	requests []string
	statuses []int
	errs     int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path, _ string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs++
}

func TestHTTPHooks(t *testing.T) {
	observability.Reset()
	t.Cleanup(observability.Reset)
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)

	srv := newTestServer(t)
	post(t, srv.URL+"/v1/bounds", columns)
	post(t, srv.URL+"/v1/bounds", `{`)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if diff := cmp.Diff([]string{"POST /v1/bounds", "POST /v1/bounds"}, hooks.requests); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{200, 400}, hooks.statuses); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}
	if hooks.errs != 1 {
		t.Errorf("errors = %d, want 1", hooks.errs)
	}
}
