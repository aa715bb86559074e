package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	autoApplyRunsTotal       atomic.Uint64
	autoApplyRunsFailedTotal atomic.Uint64
	applicationsCreatedTotal atomic.Uint64

	autoApplyRunDuration = newHistogram([]float64{10, 25, 50, 100, 250, 500, 1000, 2000, 5000})
)

// IncAutoApplyRun increments the completed-run counter.
func IncAutoApplyRun() {
	autoApplyRunsTotal.Add(1)
}

// IncAutoApplyRunFailed increments the failed-run counter.
func IncAutoApplyRunFailed() {
	autoApplyRunsFailedTotal.Add(1)
}

// AddApplicationsCreated adds the number of applications created by a run.
func AddApplicationsCreated(n int) {
	if n > 0 {
		applicationsCreatedTotal.Add(uint64(n))
	}
}

// ObserveAutoApplyRunDurationMs records a run duration in milliseconds.
func ObserveAutoApplyRunDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	autoApplyRunDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "autoapply_runs_total", "Total auto-apply runs completed", autoApplyRunsTotal.Load())
	writeCounter(&buf, "autoapply_runs_failed_total", "Total auto-apply runs failed", autoApplyRunsFailedTotal.Load())
	writeCounter(&buf, "applications_created_total", "Total applications created by auto-apply", applicationsCreatedTotal.Load())
	writeHistogram(&buf, "autoapply_run_duration_ms", "Auto-apply run duration in milliseconds", autoApplyRunDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
