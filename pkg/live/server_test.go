package live

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/elishacook/microfun/pkg/flow"
	"github.com/elishacook/microfun/pkg/vdom"
)

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, _ := io.ReadAll(rec.Result().Body)
	return rec.Code, string(body)
}

func TestServerPage(t *testing.T) {
	hub := NewHub(flow.NewLoop(flow.LoopConfig{}), HubConfig{})
	hub.Render(vdom.P(vdom.Text("hello <you>")))
	srv := NewServer(hub, ServerConfig{Title: "Counter", Styles: []string{"p{color:red}"}})

	code, body := get(t, srv.Handler(), "/")
	if code != http.StatusOK {
		t.Fatalf("GET / = %d", code)
	}
	for _, want := range []string{
		"<title>Counter</title>",
		`<div id="microfun-root"><p data-hid="h1">hello &lt;you&gt;</p></div>`,
		"<style>p{color:red}</style>",
		`new WebSocket(`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q:\n%s", want, body)
		}
	}
}

func TestServerHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total"})
	reg.MustRegister(counter)
	counter.Inc()

	hub := NewHub(flow.NewLoop(flow.LoopConfig{}), HubConfig{})
	h := NewServer(hub, ServerConfig{Gatherer: reg}).Handler()

	if code, body := get(t, h, "/healthz"); code != http.StatusOK || body != "ok\n" {
		t.Errorf("GET /healthz = %d %q", code, body)
	}
	code, body := get(t, h, "/metrics")
	if code != http.StatusOK || !strings.Contains(body, "probe_total 1") {
		t.Errorf("GET /metrics = %d:\n%s", code, body)
	}

	noMetrics := NewServer(hub, ServerConfig{}).Handler()
	if code, _ := get(t, noMetrics, "/metrics"); code != http.StatusNotFound {
		t.Errorf("GET /metrics without gatherer = %d, want 404", code)
	}
}

func TestServerPageBeforeFirstDraw(t *testing.T) {
	hub := NewHub(flow.NewLoop(flow.LoopConfig{}), HubConfig{})
	_, body := get(t, NewServer(hub, ServerConfig{}).Handler(), "/")
	if !strings.Contains(body, `<div id="microfun-root"></div>`) {
		t.Errorf("empty page body:\n%s", body)
	}
}
