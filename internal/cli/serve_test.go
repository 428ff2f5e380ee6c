package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/tablegrid/pkg/cache"
	"github.com/matzehuels/tablegrid/pkg/errors"
	"github.com/matzehuels/tablegrid/pkg/render"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c := newTestCLI(t)
	srv := httptest.NewServer(c.newRouter(newStaticSource(t), cache.NewNullCache()))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestServeHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got struct {
		Status string         `json:"status"`
		Grid   map[string]int `json:"grid"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "ok" || got.Grid["a"] != 4 || got.Grid["b"] != 3 {
		t.Errorf("health = %+v", got)
	}
}

func TestServeLayout(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/layout")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var snap render.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Cells) != 12 {
		t.Errorf("cells = %d, want 12", len(snap.Cells))
	}
	if resp.Header.Get("X-Snapshot-ID") != snap.ID.String() {
		t.Error("X-Snapshot-ID does not match snapshot")
	}
}

func TestServeLayoutQuery(t *testing.T) {
	srv := newTestServer(t)

	_, body := get(t, srv, "/layout?height=2&width=8&scroll_b=4&visible=true")
	var snap render.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Cells) != 4 {
		t.Fatalf("cells = %d, want 4", len(snap.Cells))
	}
	if snap.Viewport.End.A != 2 || snap.Viewport.End.B != 8 {
		t.Errorf("viewport = %+v, want 2x8", snap.Viewport)
	}
	for _, c := range snap.Cells {
		if c.Leading.B == 0 && c.Leading.A == 0 && c.Content != "c4" {
			t.Errorf("cell at origin = %q, want c4 after scrolling one lane", c.Content)
		}
	}

	resp, body := get(t, srv, "/layout?format=dot")
	if !strings.HasPrefix(string(body), "graph G {") {
		t.Errorf("dot body = %.40q", body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestServeLayoutLargeScroll(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()
	client.Timeout = 2 * time.Second

	// 1000000003 rows is three rows past a whole number of turns of the
	// four-row grid.
	resp, err := client.Get(srv.URL + "/layout?scroll_a=1000000003&visible=true")
	if err != nil {
		t.Fatalf("GET /layout: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var snap render.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	origin := ""
	for _, c := range snap.Cells {
		if c.Leading.A == 0 && c.Leading.B == 0 {
			origin = c.Content
		}
	}
	if origin != "c3" {
		t.Errorf("cell at origin = %q, want c3", origin)
	}
}

func TestServeCell(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/cells/5")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var got struct {
		Index   int            `json:"index"`
		Coord   map[string]int `json:"coord"`
		Content string         `json:"content"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.Content != "c5" || got.Coord["a"] != 1 || got.Coord["b"] != 1 {
		t.Errorf("cell = %+v, want c5 at (1, 1)", got)
	}
}

func TestServeErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path   string
		status int
		code   errors.Code
	}{
		{"/cells/99", http.StatusNotFound, errors.ErrCodeOutOfRange},
		{"/cells/-1", http.StatusNotFound, errors.ErrCodeOutOfRange},
		{"/cells/x", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/layout?height=abc", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/layout?format=png", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"/layout?scroll_a=2000000000", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/layout?scroll_b=-2000000000", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/layout?width=100000", http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var got struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("decode %s: %v", body, err)
			}
			if got.Code != string(tt.code) {
				t.Errorf("code = %q, want %q", got.Code, tt.code)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidConfig, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
