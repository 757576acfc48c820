package metrics

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/bigcalc/internal/logging"
)

func TestRecorderObserveOperation(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.ObserveOperation("mul", "fft", StatusSuccess, time.Millisecond, 3)
	r.ObserveOperation("mul", "fft", StatusSuccess, 2*time.Millisecond, 0)
	r.ObserveOperation("div", "auto", StatusInterrupted, time.Second, 9)

	if got := testutil.ToFloat64(r.operations.WithLabelValues("mul", "fft", StatusSuccess)); got != 2 {
		t.Errorf("mul operations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.interrupts.WithLabelValues("div")); got != 1 {
		t.Errorf("div interrupts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.interrupts.WithLabelValues("mul")); got != 0 {
		t.Errorf("mul interrupts = %v, want 0", got)
	}
	if n := testutil.CollectAndCount(r.duration); n != 2 {
		t.Errorf("duration series = %d, want 2", n)
	}
}

func TestRecorderOperandsAndMemory(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.ObserveOperands("mul", 10, 2000)
	r.ObserveMemory(MemorySnapshot{HeapAlloc: 4096})
	if got := testutil.ToFloat64(r.heapAlloc); got != 4096 {
		t.Errorf("heap gauge = %v", got)
	}
	if n := testutil.CollectAndCount(r.operandDigits); n != 1 {
		t.Errorf("operand series = %d, want 1", n)
	}
}

func TestRecorderHandler(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.ObserveOperation("mod", "auto", StatusError, time.Microsecond, 1)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{"bigcalc_operations_total", `op="mod"`, "go_goroutines"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output lacks %q", want)
		}
	}
}

func TestServerServesAndShutsDown(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.ObserveOperation("mul", "auto", StatusSuccess, time.Millisecond, 0)
	var logs bytes.Buffer
	srv, err := Listen("127.0.0.1:0", r, logging.NewLogger(&logs, "metrics"))
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	if err != nil {
		cancel()
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "bigcalc_operations_total") {
		t.Errorf("metrics endpoint body lacks the operation counter")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	for _, want := range []string{"serving metrics", "shutting down metrics endpoint", "metrics endpoint stopped"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs lack %q", want)
		}
	}
}
