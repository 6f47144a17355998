package cli

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDemo(t *testing.T, name, seed string) string {
	t.Helper()
	d, ok := FindDemo(name)
	require.True(t, ok, name)
	var buf bytes.Buffer
	require.NoError(t, RunDemo(d, seed, &buf))
	return buf.String()
}

func TestDemos_Deterministic(t *testing.T) {
	for _, d := range Demos {
		t.Run(d.Name, func(t *testing.T) {
			first := runDemo(t, d.Name, "")
			assert.NotEmpty(t, first)
			assert.Equal(t, first, runDemo(t, d.Name, ""))
		})
	}
}

func TestDemo_Categories(t *testing.T) {
	out := runDemo(t, "categories", "")
	line := regexp.MustCompile(`^( {4})*#(1\d{4}|20000) \S+( \S+){2,5}$`)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Greater(t, len(lines), 1)
	assert.False(t, strings.HasPrefix(lines[0], " "), "root is not indented")
	for _, l := range lines {
		assert.Regexp(t, line, l)
	}
}

func TestDemo_Prices(t *testing.T) {
	lines := strings.Fields(runDemo(t, "prices", "other seed"))
	require.Len(t, lines, 25)
	for _, l := range lines {
		v, err := strconv.ParseFloat(l, 64)
		require.NoError(t, err)
		assert.True(t, v >= 0.98 && v < 199.99, l)
		assert.True(t, strings.HasSuffix(l, ".99") || strings.HasSuffix(l, ".98"), l)
	}
}

func TestDemo_Transformations(t *testing.T) {
	lines := strings.Fields(runDemo(t, "transformations", ""))
	require.Len(t, lines, 25)
	for _, l := range lines {
		assert.Regexp(t, `^[1-9]0{0,6}$`, l)
	}
}

func TestDemo_Permutations(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(runDemo(t, "permutations", ""), "\n"), "\n")
	require.Len(t, lines, 20)
	for _, l := range lines {
		words := strings.Fields(strings.Trim(l, "[]"))
		assert.True(t, len(words) >= 2 && len(words) <= 4, l)
	}
}

func TestFindDemo_Unknown(t *testing.T) {
	_, ok := FindDemo("nope")
	assert.False(t, ok)
}
