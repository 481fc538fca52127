package metrics

import (
	"net/http"
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(http.MethodGet, http.StatusOK, 10*time.Millisecond)
	c.Record(http.MethodPost, http.StatusBadRequest, 20*time.Millisecond)
	c.Record(http.MethodGet, http.StatusBadGateway, 30*time.Millisecond)

	snap := c.Snapshot()
	if snap["requestsTotal"] != uint64(3) {
		t.Fatalf("unexpected total %v", snap["requestsTotal"])
	}
	if snap["clientErrorsTotal"] != uint64(1) || snap["serverErrorsTotal"] != uint64(1) {
		t.Fatalf("unexpected error counters: %+v", snap)
	}
	if snap["avgDurationMs"] != float64(20) {
		t.Fatalf("unexpected average %v", snap["avgDurationMs"])
	}
	methods := snap["requestsByMethod"].(map[string]uint64)
	if methods[http.MethodGet] != 2 || methods[http.MethodPost] != 1 {
		t.Fatalf("unexpected per-method counts: %+v", methods)
	}
}
