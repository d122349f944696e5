package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testPageID    = "ra5h7xd8knxz"
	testWidgetKey = "some-widget-key-goes-here"
)

// newMockAPI starts a TLS server and writes a credentials file pointing both
// clients at it. Returns the server and the credentials path.
func newMockAPI(t *testing.T, mux *http.ServeMux) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewTLSServer(mux)
	t.Cleanup(srv.Close)

	host := strings.TrimPrefix(srv.URL, "https://")
	content := fmt.Sprintf(`credentials:
  statuspage:
    apikey: some-api-key-goes-here
    host: %s
    pageid: %s
  geckoboard:
    apikey: apikeygoeshere
    host: %s
    widgetkey: %s
`, host, testPageID, host, testWidgetKey)

	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return srv, path
}

func writeTestJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
