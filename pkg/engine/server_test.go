package engine

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockdir/pkg/requestlog"
)

func TestServer_StartStop(t *testing.T) {
	cfg := testConfig(t)
	srv := NewServer(cfg, WithServerRecorder(requestlog.Nop))

	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Stop() })

	assert.True(t, srv.IsRunning())
	assert.NotZero(t, srv.Port())
	assert.Zero(t, srv.MetricsPort())
	assert.Error(t, srv.Start(), "second start must fail")

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", srv.Port()))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/hello/world", srv.Port()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Stop())
	assert.False(t, srv.IsRunning())
	assert.NoError(t, srv.Stop(), "stopping twice is a no-op")
}

func TestServer_MetricsListener(t *testing.T) {
	cfg := testConfig(t)
	ports := freePorts(t, 2)
	cfg.Port, cfg.MetricsPort = ports[0], ports[1]
	srv := NewServer(cfg, WithServerRecorder(requestlog.Nop))

	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Stop() })
	require.Equal(t, cfg.MetricsPort, srv.MetricsPort())

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/any/path", srv.Port()))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/metrics", srv.MetricsPort()))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `mockdir_requests_total{kind="mock",status="2xx"}`), string(body))
}

func TestServer_PortInUse(t *testing.T) {
	first := NewServer(testConfig(t), WithServerRecorder(requestlog.Nop))
	require.NoError(t, first.Start())
	t.Cleanup(func() { _ = first.Stop() })

	cfg := testConfig(t)
	cfg.Port = first.Port()
	second := NewServer(cfg, WithServerRecorder(requestlog.Nop))
	err := second.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on port")
	assert.False(t, second.IsRunning())
}

// freePorts reserves n distinct ports by holding all listeners open at once.
func freePorts(t *testing.T, n int) []int {
	t.Helper()
	ports := make([]int, 0, n)
	for range n {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()
		ports = append(ports, ln.Addr().(*net.TCPAddr).Port)
	}
	return ports
}

func TestFreePorts_Distinct(t *testing.T) {
	ports := freePorts(t, 2)
	assert.NotEqual(t, ports[0], ports[1])
}
