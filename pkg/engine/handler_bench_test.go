package engine

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockdir/pkg/config"
	"github.com/getmockd/mockdir/pkg/requestlog"
)

func BenchmarkHandler_Mock(b *testing.B) {
	root := b.TempDir()
	cfg := config.NewDefault()
	cfg.JSONDir = filepath.Join(root, "json")
	cfg.StreamDir = filepath.Join(root, "stream")
	cfg.StreamConfig = ""
	h := NewHandler(cfg, WithRecorder(requestlog.Nop))

	req := httptest.NewRequest(http.MethodGet, "/api/users/list", nil)
	b.ReportAllocs()
	for b.Loop() {
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkHandler_MockWithRecording(b *testing.B) {
	root := b.TempDir()
	cfg := config.NewDefault()
	cfg.JSONDir = filepath.Join(root, "json")
	cfg.StreamDir = filepath.Join(root, "stream")
	cfg.StreamConfig = ""
	h := NewHandler(cfg)

	b.ReportAllocs()
	for b.Loop() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users/list", nil))
	}
}

// Concurrent mock requests against a live listener.
func TestConcurrentRequests(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping load test in short mode")
	}

	cfg := testConfig(t)
	cfg.StreamConfig = ""
	srv := NewServer(cfg, WithServerRecorder(requestlog.Nop))
	require.NoError(t, srv.Start())
	defer srv.Stop()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/test", srv.Port())
	client := &http.Client{Timeout: 5 * time.Second}

	const workers, perWorker = 20, 50
	var ok, failed atomic.Int64
	var wg sync.WaitGroup
	start := time.Now()
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				resp, err := client.Get(url)
				if err != nil {
					failed.Add(1)
					continue
				}
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					ok.Add(1)
				} else {
					failed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)
	t.Logf("%d requests in %v (%.0f req/s)", ok.Load(), elapsed, float64(ok.Load())/elapsed.Seconds())
	assert.Equal(t, int64(workers*perWorker), ok.Load())
	assert.Zero(t, failed.Load())
}
