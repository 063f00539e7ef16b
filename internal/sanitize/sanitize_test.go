package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "Go and Rust", "Go and Rust"},
		{"inline tags", "I <b>love</b> <a href=\"/go\">Go</a>", "I love Go"},
		{"entities", "Tom &amp; Jerry &lt;3", "Tom & Jerry <3"},
		{"script and style dropped", "<p>Go</p><script>var docker = 1;</script><style>.k8s{}</style>", "Go "},
		{"blocks separated", "<p>Go</p><p>Rust</p>", "Go Rust "},
		{"line break", "Docker<br>Kubernetes", "Docker Kubernetes"},
		{"list items", "<ul><li>Go</li><li>Rust</li></ul>", "Go Rust "},
		{"empty", "", ""},
		{"attributes do not leak", "<img alt=\"Kubernetes\" src=\"k8s.png\">Go", "Go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
			assert.Equal(t, tt.expected, HTML{}.Clean(tt.input))
		})
	}
}
