package audit_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/weathergate/api/audit"
)

// fakeElasticsearch answers index and search calls the way a cluster would.
func fakeElasticsearch(t *testing.T, indexed *[]audit.AuditLog) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, "/_search"):
			resp := map[string]interface{}{"hits": map[string]interface{}{"hits": []interface{}{}}}
			hits := []interface{}{}
			for _, l := range *indexed {
				hits = append(hits, map[string]interface{}{"_source": l})
			}
			resp["hits"].(map[string]interface{})["hits"] = hits
			_ = json.NewEncoder(w).Encode(resp)
		case strings.Contains(r.URL.Path, "/_doc/"):
			body, _ := io.ReadAll(r.Body)
			var l audit.AuditLog
			require.NoError(t, json.Unmarshal(body, &l))
			*indexed = append(*indexed, l)
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"result":"created"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"not found"}`)
		}
	}))
}

func TestElasticsearchRepositoryRoundTrip(t *testing.T) {
	var indexed []audit.AuditLog
	server := fakeElasticsearch(t, &indexed)
	defer server.Close()

	repo, err := audit.NewElasticsearchRepository(server.URL, "weather-access-logs")
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.LogAccess(context.Background(), audit.AuditLog{Timestamp: now, Identity: "abc", Outcome: "served", AccessGranted: true})
	require.NoError(t, err)
	require.Len(t, indexed, 1)
	assert.NotEmpty(t, indexed[0].ID)

	logs, err := repo.QueryLogs(context.Background(), now.Add(-time.Minute), now.Add(time.Minute), "abc")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "abc", logs[0].Identity)
	assert.True(t, logs[0].Timestamp.Equal(now))
}
