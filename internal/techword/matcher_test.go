package techword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, words ...string) *Matcher {
	t.Helper()
	m, err := Compile(words)
	require.NoError(t, err)
	return m
}

func TestPartition(t *testing.T) {
	space, nonSpace := Partition([]string{"Go", "C++", "  Docker ", "", "🐳", "→", "Élixir", "機械学習", "k8s"})

	assert.Equal(t, []string{"Go", "C++", "Docker", "Élixir", "k8s"}, space)
	assert.Equal(t, []string{"🐳", "→", "機械学習"}, nonSpace)
}

func TestMatcher_CaseInsensitive(t *testing.T) {
	m := mustCompile(t, "Docker")

	assert.Equal(t, 1, m.Count("docker"))
	assert.Equal(t, m.Count("docker"), m.Count("DOCKER"))
	assert.Equal(t, 1, m.Count("DoCkEr"))
}

func TestMatcher_Boundaries(t *testing.T) {
	m := mustCompile(t, "Go")

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"surrounded by spaces", "I code in Go daily", 1},
		{"prefix of longer token", "Golang is fun", 0},
		{"suffix of longer token", "I like Django", 0},
		{"text edges", "Go", 1},
		{"punctuation", "(Go), go! go.", 3},
		{"digits are alphanumeric", "Go2 and 2go", 0},
		{"latin-1 letters are alphanumeric", "éGo Goé", 0},
		{"underscore is a boundary", "my_go_code", 1},
		{"japanese is a boundary", "私はGoが好き", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Count(tt.text))
		})
	}
}

func TestMatcher_NonSpaceDelimited(t *testing.T) {
	m := mustCompile(t, "機械学習", "🐳")

	assert.Equal(t, 1, m.Count("深層機械学習入門"))
	assert.Equal(t, 3, m.Count("🐳🐳abc🐳"))
	assert.Equal(t, 0, m.Count("machine learning"))
}

func TestMatcher_SpecialCharactersAreLiteral(t *testing.T) {
	m := mustCompile(t, "C++", "node.js", "C#", "a|b")

	assert.Equal(t, 1, m.Count("I write C++ at work"))
	assert.Equal(t, 1, m.Count("node.js"))
	assert.Equal(t, 0, m.Count("nodexjs"))
	assert.Equal(t, 1, m.Count("C# rocks"))
	assert.Equal(t, 0, m.Count("a b"))
	assert.Equal(t, 1, m.Count("use a|b here"))
}

func TestMatcher_NonWordEdges(t *testing.T) {
	tests := []struct {
		word     string
		text     string
		expected int
	}{
		{".NET", "ASP.NET Core", 1},
		{".NET", ".NET 8 released", 1},
		{"C++", "C++11 features", 1},
		{"C++", "modern C++20", 1},
		{"C#", "C#10 records", 1},
		{"F#", "F#and more", 1},
		{"node.js", "node.jsx", 0},
		{"C++", "abcC++", 0},
	}

	for _, tt := range tests {
		t.Run(tt.word+" in "+tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustCompile(t, tt.word).Count(tt.text))
		})
	}
}

func TestMatcher_NonOverlapping(t *testing.T) {
	m := mustCompile(t, "==")

	// after a match scanning resumes right after the matched span
	assert.Equal(t, 1, m.Count("==="))
	assert.Equal(t, 2, m.Count("===="))
}

func TestMatcher_Mixed(t *testing.T) {
	m := mustCompile(t, "Ruby", "Rails", "Kubernetes", "機械学習")

	text := "Ruby on Rails で Kubernetes と機械学習を試した。rubyist ではない"
	assert.Equal(t, 4, m.Count(text))
}

func TestMatcher_EmptyWordList(t *testing.T) {
	for _, words := range [][]string{nil, {}, {"", "  "}} {
		m := mustCompile(t, words...)
		assert.Equal(t, 0, m.Count("anything at all"))
		assert.Equal(t, 0, m.Count(""))
	}
}

func TestMatcher_Deterministic(t *testing.T) {
	words := []string{"Go", "Rust", "→", "TypeScript"}
	a := mustCompile(t, words...)
	b := mustCompile(t, words...)

	text := "Go → Rust → TypeScript → golang"
	assert.Equal(t, a.Count(text), b.Count(text))
	assert.Equal(t, 6, a.Count(text))
}

func TestMatcher_NilSafe(t *testing.T) {
	var m *Matcher
	assert.Equal(t, 0, m.Count("Go"))
}
