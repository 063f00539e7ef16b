package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWordList(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "techwords.txt")
	require.NoError(t, os.WriteFile(path, []byte("Go\nDocker\nKubernetes\n機械学習\n"), 0o644))
	// newApp sets TECHWORDS_PATH from --words; t.Setenv restores it afterwards
	t.Setenv("TECHWORDS_PATH", "")
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCountCommand(t *testing.T) {
	words := writeWordList(t)

	out, err := execute(t, "count", "--words", words, "<p>Go,", "Docker</p>", "and 機械学習")
	require.NoError(t, err)
	assert.Equal(t, "3", strings.TrimSpace(out))
}

func TestCountCommand_MissingWordList(t *testing.T) {
	t.Setenv("TECHWORDS_PATH", "")

	_, err := execute(t, "count", "Go")
	assert.Error(t, err)
}

func TestResolveCommand(t *testing.T) {
	out, err := execute(t, "resolve", "--kind", "scrapbox", "https://scrapbox.io/onk/")
	require.NoError(t, err)
	assert.Equal(t, "https://scrapbox.io/api/feed/onk", strings.TrimSpace(out))
}

func TestCheckCommand(t *testing.T) {
	words := writeWordList(t)
	t.Setenv("FETCH_DELAY", "0s")

	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		io.WriteString(w, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>t</title>
<item><title>Go and Docker on Kubernetes</title><link>https://example.com/1</link></item>
<item><title>Holiday</title><link>https://example.com/2</link></item>
</channel></rss>`)
	}))
	defer site.Close()

	out, err := execute(t, "check", "--words", words, "--kind", "hatenablog", site.URL+"/")
	require.NoError(t, err)

	var entries []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []map[string]string{{"title": "Go and Docker on Kubernetes", "url": "https://example.com/1"}}, entries)
}
