package objectstore

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri     string
		bucket  string
		key     string
		wantErr bool
	}{
		{uri: "s3://fsf-front-end/forecast.csv", bucket: "fsf-front-end", key: "forecast.csv"},
		{uri: "s3://bucket/nested/path/data.parquet", bucket: "bucket", key: "nested/path/data.parquet"},
		{uri: "s3://bucket", wantErr: true},
		{uri: "s3://bucket/", wantErr: true},
		{uri: "s3:///key", wantErr: true},
		{uri: "https://bucket/key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, key, err := ParseURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func newTestServer(t *testing.T, objects map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)

		body, ok := objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>not found</Message></Error>`)
			return
		}

		w.Header().Set("Content-Length", fmt.Sprint(len(body)))
		w.Header().Set("Content-Range", fmt.Sprintf("bytes 0-%d/%d", len(body)-1, len(body)))
		w.WriteHeader(http.StatusPartialContent)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), Config{
		Region:          "auto",
		Endpoint:        endpoint,
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
	}, zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestFetch(t *testing.T) {
	const content = "date,AAPL\n2024-01-02,185.64\n"
	server := newTestServer(t, map[string]string{"/fsf-front-end/input/forecast.csv": content})
	client := newTestClient(t, server.URL)

	dir := t.TempDir()
	path, err := client.Fetch(context.Background(), "s3://fsf-front-end/input/forecast.csv", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fsf-front-end", "input", "forecast.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestDownload_MissingObjectLeavesNoFile(t *testing.T) {
	server := newTestServer(t, map[string]string{})
	client := newTestClient(t, server.URL)

	dest := filepath.Join(t.TempDir(), "forecast.csv")
	_, err := client.Download(context.Background(), "fsf-front-end", "forecast.csv", dest)
	require.Error(t, err)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))

	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetch_RejectsEscapingKey(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	_, err := client.Fetch(context.Background(), "s3://bucket/../../etc/passwd", t.TempDir())
	assert.Error(t, err)
}
