package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	Sweeps.Inc()
	FetchFailures.WithLabelValues("discord").Inc()

	ts := httptest.NewServer(Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "watchmon_sweeps_total")
	assert.Contains(t, string(body), `watchmon_fetch_failures_total{platform="discord"}`)
	assert.Contains(t, string(body), "watchmon_sweep_duration_seconds_bucket")
}
