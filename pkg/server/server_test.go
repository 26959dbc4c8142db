package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/render"
	"github.com/matzehuels/masonry/pkg/scenario"
	"github.com/matzehuels/masonry/pkg/store"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

const feedJSON = `{
  "name": "feed",
  "width": 70,
  "sections": [
    {"columns": 2, "header_height": 10, "items": [
      {"width": 30, "height": 30},
      {"width": 30, "height": 60},
      {"width": 30, "height": 30}
    ]}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(store.NewScenarios(store.NewMemoryStore(), 0)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, contentType string, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func expectError(t *testing.T, resp *http.Response, status int, code errors.Code) {
	t.Helper()
	if resp.StatusCode != status {
		t.Errorf("status = %d, want %d", resp.StatusCode, status)
	}
	var body errorBody
	decode(t, resp, &body)
	if body.Code != code {
		t.Errorf("code = %s, want %s", body.Code, code)
	}
}

func storeFeed(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := do(t, http.MethodPost, srv.URL+"/v1/scenarios", "application/json", feedJSON)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /v1/scenarios status = %d", resp.StatusCode)
	}
	var out map[string]string
	decode(t, resp, &out)
	return out["id"]
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/healthz", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	decode(t, resp, &body)
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("X-Request-ID = %q, want a UUID", resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDPropagates(t *testing.T) {
	srv := newTestServer(t)
	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}
}

func TestLayoutBody(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/v1/layout", "application/json", feedJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var l render.Layout
	decode(t, resp, &l)
	if l.Width != 70 || l.Height != 80 || len(l.Sections[0].Items) != 3 {
		t.Errorf("layout = %+v", l)
	}
	if it := l.Sections[0].Items[1]; it.X != 40 || it.Y != 10 || it.Height != 60 {
		t.Errorf("item 1 = %+v", it)
	}
}

func TestLayoutBodyTOMLAndWidth(t *testing.T) {
	srv := newTestServer(t)
	var buf bytes.Buffer
	s, _ := scenario.Parse([]byte(feedJSON), scenario.FormatJSON)
	if err := s.Write(&buf, scenario.FormatTOML); err != nil {
		t.Fatal(err)
	}
	resp := do(t, http.MethodPost, srv.URL+"/v1/layout?width=150", "application/toml", buf.String())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var l render.Layout
	decode(t, resp, &l)
	if l.Width != 150 || l.Sections[0].Items[0].Width != 70 {
		t.Errorf("layout width = %v, column width = %v", l.Width, l.Sections[0].Items[0].Width)
	}
}

func TestLayoutSVG(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/v1/layout?format=svg", "application/json", feedJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %s", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(body, []byte("<svg")) {
		t.Errorf("body = %.40s", body)
	}
}

func TestLayoutErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   errors.Code
	}{
		{"bad json", "", "{", http.StatusBadRequest, errors.ErrCodeInvalidScenario},
		{"zero columns", "", `{"sections":[{"columns":0}]}`, http.StatusBadRequest, errors.ErrCodeInvalidScenario},
		{"bad format", "?format=gif", feedJSON, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad width", "?width=wide", feedJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"negative width", "?width=-5", feedJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"nan width", "?width=NaN", feedJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"inf width", "?width=Inf", feedJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"too many columns", "", `{"width":70,"sections":[{"columns":1099511627776,"items":[]}]}`, http.StatusBadRequest, errors.ErrCodeInvalidScenario},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/v1/layout"+tt.query, "application/json", tt.body)
			expectError(t, resp, tt.status, tt.code)
		})
	}
}

func TestRejectsNonFiniteScenarios(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
	}{
		{"toml nan width", "/v1/layout", "application/toml", "width = nan"},
		{"toml inf item", "/v1/layout", "application/toml", "width = 70\n[[sections]]\ncolumns = 1\nitems = [{ width = 30, height = inf }]"},
		{"store too many columns", "/v1/scenarios", "application/json", `{"width":70,"sections":[{"columns":1099511627776,"items":[]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+tt.path, tt.contentType, tt.body)
			expectError(t, resp, http.StatusBadRequest, errors.ErrCodeInvalidScenario)
		})
	}
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"x": math.NaN()})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body %q: %v", rec.Body.String(), err)
	}
	if body.Code != errors.ErrCodeInternal {
		t.Errorf("code = %s, want %s", body.Code, errors.ErrCodeInternal)
	}
}

func TestScenarioLifecycle(t *testing.T) {
	srv := newTestServer(t)
	id := storeFeed(t, srv)
	if err := errors.ValidateScenarioID(id); err != nil {
		t.Fatalf("id %q: %v", id, err)
	}

	var list map[string][]string
	decode(t, do(t, http.MethodGet, srv.URL+"/v1/scenarios", "", ""), &list)
	if len(list["ids"]) != 1 || list["ids"][0] != id {
		t.Errorf("list = %v", list)
	}

	var sc scenario.Scenario
	decode(t, do(t, http.MethodGet, srv.URL+"/v1/scenarios/"+id, "", ""), &sc)
	if sc.Name != "feed" || mustID(t, &sc) != id {
		t.Errorf("GET scenario = %+v", sc)
	}

	var l render.Layout
	decode(t, do(t, http.MethodGet, srv.URL+"/v1/scenarios/"+id+"/layout", "", ""), &l)
	if l.Height != 80 {
		t.Errorf("stored layout height = %v", l.Height)
	}

	resp := do(t, http.MethodDelete, srv.URL+"/v1/scenarios/"+id, "", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d", resp.StatusCode)
	}
	expectError(t, do(t, http.MethodGet, srv.URL+"/v1/scenarios/"+id, "", ""), http.StatusNotFound, errors.ErrCodeScenarioNotFound)
}

func TestEmptyList(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/v1/scenarios", "", "")
	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != `{"ids":[]}` {
		t.Errorf("body = %s", body)
	}
}

func TestQuery(t *testing.T) {
	srv := newTestServer(t)
	id := storeFeed(t, srv)

	var res queryResult
	decode(t, do(t, http.MethodGet, srv.URL+"/v1/scenarios/"+id+"/query?x=0&y=0&w=70&h=5", "", ""), &res)
	if len(res.Items) != 3 {
		t.Errorf("items = %d, want whole section (3)", len(res.Items))
	}
	if len(res.Supplementary) != 1 || res.Supplementary[0].Kind != waterfall.KindHeader {
		t.Errorf("supplementary = %+v", res.Supplementary)
	}

	decode(t, do(t, http.MethodGet, srv.URL+"/v1/scenarios/"+id+"/query?x=0&y=500&w=10&h=10", "", ""), &res)
	if len(res.Items) != 0 || len(res.Supplementary) != 0 {
		t.Errorf("query outside content = %+v", res)
	}

	resp := do(t, http.MethodGet, srv.URL+"/v1/scenarios/"+id+"/query?x=0&y=0&w=1", "", "")
	expectError(t, resp, http.StatusBadRequest, errors.ErrCodeInvalidInput)
	resp = do(t, http.MethodGet, srv.URL+"/v1/scenarios/"+id+"/query?x=NaN&y=0&w=1&h=1", "", "")
	expectError(t, resp, http.StatusBadRequest, errors.ErrCodeInvalidInput)
	resp = do(t, http.MethodGet, srv.URL+"/v1/scenarios/"+id+"/query?x=0&y=0&w=Inf&h=1", "", "")
	expectError(t, resp, http.StatusBadRequest, errors.ErrCodeInvalidInput)
}

func TestItem(t *testing.T) {
	srv := newTestServer(t)
	id := storeFeed(t, srv)

	var a waterfall.Attributes
	decode(t, do(t, http.MethodGet, srv.URL+"/v1/scenarios/"+id+"/items/0/2", "", ""), &a)
	if a.Column != 0 || a.Frame.Y != 50 {
		t.Errorf("item 0-2 = %+v", a)
	}

	expectError(t, do(t, http.MethodGet, srv.URL+"/v1/scenarios/"+id+"/items/0/9", "", ""), http.StatusNotFound, errors.ErrCodeNotFound)
	expectError(t, do(t, http.MethodGet, srv.URL+"/v1/scenarios/"+id+"/items/a/b", "", ""), http.StatusBadRequest, errors.ErrCodeInvalidInput)
}

func TestUnknownScenario(t *testing.T) {
	srv := newTestServer(t)
	missing := strings.Repeat("a", 64)
	expectError(t, do(t, http.MethodGet, srv.URL+"/v1/scenarios/"+missing+"/layout", "", ""), http.StatusNotFound, errors.ErrCodeScenarioNotFound)
	expectError(t, do(t, http.MethodGet, srv.URL+"/v1/scenarios/nope", "", ""), http.StatusBadRequest, errors.ErrCodeInvalidInput)
}

func TestBodyLimit(t *testing.T) {
	srv := httptest.NewServer(New(store.NewScenarios(store.NewMemoryStore(), 0), WithMaxBodyBytes(16)).Handler())
	t.Cleanup(srv.Close)
	resp := do(t, http.MethodPost, srv.URL+"/v1/layout", "application/json", feedJSON)
	expectError(t, resp, http.StatusBadRequest, errors.ErrCodeInvalidInput)
}

func mustID(t *testing.T, sc *scenario.Scenario) string {
	t.Helper()
	id, err := sc.ID()
	if err != nil {
		t.Fatalf("ID() error: %v", err)
	}
	return id
}
