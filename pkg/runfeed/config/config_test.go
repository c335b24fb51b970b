package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runfeed/runfeed/pkg/runfeed/config"
)

func TestFromYAML(t *testing.T) {
	t.Run("mixed string and mapping forms", func(t *testing.T) {
		data := []byte(`
listeners:
  - audit:out.db
  - name: summary
    args: [verbose, color]
  - console
`)
		c, err := config.FromYAML(data)
		require.NoError(t, err)
		require.Len(t, c.Listeners, 3)

		assert.Equal(t, "audit", c.Listeners[0].Name)
		assert.Equal(t, []string{"out.db"}, c.Listeners[0].Args)

		assert.Equal(t, "summary", c.Listeners[1].Name)
		assert.Equal(t, []string{"verbose", "color"}, c.Listeners[1].Args)

		assert.Equal(t, "console", c.Listeners[2].Name)
		assert.Empty(t, c.Listeners[2].Args)
	})

	t.Run("empty listeners", func(t *testing.T) {
		c, err := config.FromYAML([]byte(`listeners: []`))
		require.NoError(t, err)
		assert.Empty(t, c.Listeners)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.FromYAML([]byte(`listeners: [`))
		assert.Error(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := config.FromYAML([]byte(`
listeners:
  - args: [x]
`))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"listeners": [
			"audit:out.db",
			{"name": "summary", "args": ["verbose"]}
		]
	}`)

	c, err := config.FromJSON(data)
	require.NoError(t, err)
	require.Len(t, c.Listeners, 2)

	assert.Equal(t, "audit", c.Listeners[0].Name)
	assert.Equal(t, []string{"out.db"}, c.Listeners[0].Args)
	assert.Equal(t, "summary", c.Listeners[1].Name)
	assert.Equal(t, []string{"verbose"}, c.Listeners[1].Args)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(dir, "listeners.yaml")
		require.NoError(t, os.WriteFile(path, []byte("listeners:\n  - audit\n"), 0o644))

		c, err := config.FromFile(path)
		require.NoError(t, err)
		require.Len(t, c.Listeners, 1)
		assert.Equal(t, "audit", c.Listeners[0].Name)
	})

	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(dir, "listeners.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"listeners": ["audit"]}`), 0o644))

		c, err := config.FromFile(path)
		require.NoError(t, err)
		require.Len(t, c.Listeners, 1)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "listeners.toml")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

		_, err := config.FromFile(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config file extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.FromFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestSpecStrings(t *testing.T) {
	c := config.Config{
		Listeners: []config.Spec{
			{Name: "audit", Args: []string{"out.db"}},
			{Name: "console"},
		},
	}
	assert.Equal(t, []string{"audit:out.db", "console"}, c.SpecStrings())
}
