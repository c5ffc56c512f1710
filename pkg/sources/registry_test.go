package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryPreservesOrder(t *testing.T) {
	reg, err := NewRegistry([]Source{
		{Name: "alpha", ContentURL: "http://a.example/news", Selector: "h3 a"},
		{Name: "beta", ContentURL: "http://b.example/news", Selector: "h2 a"},
		{Name: "gamma", ContentURL: "http://c.example/news", Selector: ".headline a"},
	})
	require.NoError(t, err)

	all := reg.All()
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name)
	assert.Equal(t, "beta", all[1].Name)
	assert.Equal(t, "gamma", all[2].Name)

	src, ok := reg.ByName("beta")
	require.True(t, ok)
	assert.Equal(t, "http://b.example/news", src.ContentURL)
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name string
		srcs []Source
	}{
		{name: "empty", srcs: nil},
		{name: "missing name", srcs: []Source{{ContentURL: "http://x", Selector: "a"}}},
		{name: "missing content url", srcs: []Source{{Name: "x", Selector: "a"}}},
		{name: "missing selector", srcs: []Source{{Name: "x", ContentURL: "http://x"}}},
		{name: "duplicate name", srcs: []Source{
			{Name: "x", ContentURL: "http://x", Selector: "a"},
			{Name: "x", ContentURL: "http://y", Selector: "a"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.srcs)
			assert.Error(t, err)
		})
	}
}

func TestLoadRegistryYAML(t *testing.T) {
	t.Setenv("TEST_FEED_HOST", "feeds.example.com")

	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `
sources:
  - name: Example News
    content_url: http://news.example.com/front
    selector: "h3.headline a, h2.promo a"
    feed_url: "https://${TEST_FEED_HOST}/rss.xml"
  - name: Plain Site
    content_url: http://plain.example.com/
    selector: "h1 a"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	first := reg.All()[0]
	assert.Equal(t, "Example News", first.Name)
	assert.Equal(t, "https://feeds.example.com/rss.xml", first.FeedURL)

	second := reg.All()[1]
	assert.Empty(t, second.FeedURL)
}

func TestLoadRegistryErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := LoadRegistry("  ")
		assert.Error(t, err)
	})

	t.Run("no sources", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sources.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sources: []\n"), 0o600))
		_, err := LoadRegistry(path)
		assert.Error(t, err)
	})
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	require.NotZero(t, reg.Len())
	for _, src := range reg.All() {
		assert.NotEmpty(t, src.Name)
		assert.NotEmpty(t, src.ContentURL)
		assert.NotEmpty(t, src.Selector)
	}
}
