package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, tag string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/selvastics/inrep-sub013/releases/latest", r.URL.Path)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name": "` + tag + `", "html_url": "https://example.com/release"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckUpdateAvailable(t *testing.T) {
	srv := releaseServer(t, "v1.2.0", http.StatusOK)
	c := NewChecker(WithAPIBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	result, err := c.Check(context.Background(), &CheckInput{Version: "v1.1.0"})
	require.NoError(t, err)

	assert.True(t, result.UpdateAvailable)
	assert.Equal(t, "v1.1.0", result.CurrentVersion)
	assert.Equal(t, "v1.2.0", result.LatestVersion)
	assert.Equal(t, "https://example.com/release", result.ReleaseURL)
}

func TestCheckAlreadyLatest(t *testing.T) {
	srv := releaseServer(t, "v1.1.0", http.StatusOK)
	c := NewChecker(WithAPIBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	result, err := c.Check(context.Background(), &CheckInput{Version: "v1.1.0"})
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
}

func TestCheckNewerLocalVersion(t *testing.T) {
	srv := releaseServer(t, "v1.0.0", http.StatusOK)
	c := NewChecker(WithAPIBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	result, err := c.Check(context.Background(), &CheckInput{Version: "v1.1.0"})
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
}

func TestCheckVersionWithoutPrefix(t *testing.T) {
	srv := releaseServer(t, "v1.2.0", http.StatusOK)
	c := NewChecker(WithAPIBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	result, err := c.Check(context.Background(), &CheckInput{Version: "1.1.0"})
	require.NoError(t, err)
	assert.True(t, result.UpdateAvailable)
}

func TestCheckDevBuild(t *testing.T) {
	c := NewChecker()

	for _, v := range []string{"", "(devel)"} {
		_, err := c.Check(context.Background(), &CheckInput{Version: v})
		assert.ErrorIs(t, err, ErrDevBuild, "version %q", v)
	}
}

func TestCheckServerError(t *testing.T) {
	srv := releaseServer(t, "", http.StatusInternalServerError)
	c := NewChecker(WithAPIBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	_, err := c.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
}
