package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/openrc-ng/rcupdate/internal/adapters/http"
	"github.com/openrc-ng/rcupdate/internal/adapters/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	reg := memory.New()
	require.NoError(t, reg.AddRunlevel(ctx, "boot"))
	require.NoError(t, reg.AddRunlevel(ctx, "default"))
	require.NoError(t, reg.AddService(ctx, "net.lo"))
	require.NoError(t, reg.AddService(ctx, "sshd"))
	require.NoError(t, reg.AddMembership(ctx, "boot", "net.lo"))
	require.NoError(t, reg.AddMembership(ctx, "default", "sshd"))

	srv := httptest.NewServer(httpAdapter.NewHandler(reg, httpAdapter.NewMetrics()))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestServer_GetServices(t *testing.T) {
	srv := newTestServer(t)

	var services []string
	getJSON(t, srv.URL+"/services", &services)
	assert.Equal(t, []string{"net.lo", "sshd"}, services)
}

func TestServer_GetRunlevels(t *testing.T) {
	srv := newTestServer(t)

	var runlevels []string
	getJSON(t, srv.URL+"/runlevels", &runlevels)
	assert.Equal(t, []string{"boot", "default"}, runlevels)
}

func TestServer_GetRunlevel(t *testing.T) {
	srv := newTestServer(t)

	var members []string
	getJSON(t, srv.URL+"/runlevels/default", &members)
	assert.Equal(t, []string{"sshd"}, members)
}

func TestServer_GetRunlevelNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/runlevels/bogus")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_GetMatrix(t *testing.T) {
	srv := newTestServer(t)

	var matrix httpAdapter.Matrix
	getJSON(t, srv.URL+"/matrix", &matrix)

	assert.Equal(t, []string{"boot", "default"}, matrix.Runlevels)
	require.Len(t, matrix.Services, 2)
	assert.Equal(t, httpAdapter.ServiceRow{Name: "net.lo", Runlevels: []string{"boot"}}, matrix.Services[0])
	assert.Equal(t, httpAdapter.ServiceRow{Name: "sshd", Runlevels: []string{"default"}}, matrix.Services[1])
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t)

	// Generate a request so the counter is non-zero.
	resp, err := http.Get(srv.URL + "/services")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "rcupdate_http_requests_total")
}
