package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew(t *testing.T) {
	m := New()
	if m == nil {
		t.Fatal("New returned nil")
	}

	if m.ToolExecutionsTotal == nil {
		t.Error("ToolExecutionsTotal is nil")
	}
	if m.ToolExecutionDuration == nil {
		t.Error("ToolExecutionDuration is nil")
	}
	if m.ToolExecutionErrorsTotal == nil {
		t.Error("ToolExecutionErrorsTotal is nil")
	}
	if m.ToolRetriesTotal == nil {
		t.Error("ToolRetriesTotal is nil")
	}
	if m.ToolsRegistered == nil {
		t.Error("ToolsRegistered is nil")
	}
}

func TestObserveExecution(t *testing.T) {
	m := New()

	m.ObserveExecution("calculator", "success", 50*time.Millisecond)
	m.ObserveExecution("calculator", "success", 20*time.Millisecond)
	m.ObserveExecution("calculator", "timeout", 100*time.Millisecond)

	got := testutil.ToFloat64(m.ToolExecutionsTotal.WithLabelValues("calculator", "success"))
	if got != 2 {
		t.Errorf("Expected 2 successful executions, got %v", got)
	}

	got = testutil.ToFloat64(m.ToolExecutionsTotal.WithLabelValues("calculator", "timeout"))
	if got != 1 {
		t.Errorf("Expected 1 timed out execution, got %v", got)
	}

	// Errors counter only increments for non-success outcomes.
	got = testutil.ToFloat64(m.ToolExecutionErrorsTotal.WithLabelValues("calculator", "timeout"))
	if got != 1 {
		t.Errorf("Expected 1 timeout error, got %v", got)
	}
	got = testutil.ToFloat64(m.ToolExecutionErrorsTotal.WithLabelValues("calculator", "success"))
	if got != 0 {
		t.Errorf("Expected no error count for success status, got %v", got)
	}
}

func TestObserveRetry(t *testing.T) {
	m := New()

	m.ObserveRetry("flaky")
	m.ObserveRetry("flaky")
	m.ObserveRetry("other")

	got := testutil.ToFloat64(m.ToolRetriesTotal.WithLabelValues("flaky"))
	if got != 2 {
		t.Errorf("Expected 2 retries for flaky, got %v", got)
	}
	got = testutil.ToFloat64(m.ToolRetriesTotal.WithLabelValues("other"))
	if got != 1 {
		t.Errorf("Expected 1 retry for other, got %v", got)
	}
}

func TestSetToolCount(t *testing.T) {
	m := New()

	m.SetToolCount(7)
	got := testutil.ToFloat64(m.ToolsRegistered)
	if got != 7 {
		t.Errorf("Expected tool count 7, got %v", got)
	}

	m.SetToolCount(3)
	got = testutil.ToFloat64(m.ToolsRegistered)
	if got != 3 {
		t.Errorf("Expected tool count 3, got %v", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	m := New()

	// Record some sample metrics so they appear in output
	m.ObserveExecution("calculator", "success", 10*time.Millisecond)
	m.ObserveExecution("calculator", "execution_failed", 5*time.Millisecond)
	m.ObserveRetry("calculator")
	m.SetToolCount(1)

	handler := m.Handler()
	if handler == nil {
		t.Fatal("Handler returned nil")
	}

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	body := w.Body.String()

	expectedMetrics := []string{
		"tool_executions_total",
		"tool_execution_duration_seconds",
		"tool_execution_errors_total",
		"tool_retries_total",
		"tools_registered",
	}

	for _, metric := range expectedMetrics {
		if !strings.Contains(body, metric) {
			t.Errorf("Metrics output missing: %s", metric)
		}
	}
}

func TestMetricsRegistry(t *testing.T) {
	m := New()

	registry := m.Registry()
	if registry == nil {
		t.Fatal("Registry returned nil")
	}

	m.ObserveExecution("calculator", "success", 10*time.Millisecond)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Error("Expected gathered metric families, got none")
	}
}
