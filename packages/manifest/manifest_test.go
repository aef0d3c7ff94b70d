package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sycl-conformance/ctskit/packages/core/suite"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func namedCase(name string, tags ...string) suite.Case {
	return suite.Case{Info: suite.Info{Name: name}, Tags: tags}
}

func TestLoad(t *testing.T) {
	t.Run("full manifest", func(t *testing.T) {
		path := writeManifest(t, `
suite: queue
interop: true
parallel: false
include:
  tags: [smoke]
exclude:
  names: [queue_flaky]
`)
		m, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "queue", m.Suite)
		require.NotNil(t, m.Interop)
		assert.True(t, *m.Interop)
		require.NotNil(t, m.Parallel)
		assert.False(t, *m.Parallel)
		require.NotNil(t, m.Include)
		assert.Equal(t, []string{"smoke"}, m.Include.Tags)
		require.NotNil(t, m.Exclude)
		assert.Equal(t, []string{"queue_flaky"}, m.Exclude.Names)
	})

	t.Run("suite name is required", func(t *testing.T) {
		path := writeManifest(t, "include:\n  tags: [smoke]\n")
		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "suite name")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/suite.yaml")
		assert.Error(t, err)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		path := writeManifest(t, "suite: [unclosed")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("options default to nil", func(t *testing.T) {
		path := writeManifest(t, "suite: minimal\n")
		m, err := Load(path)
		require.NoError(t, err)
		assert.Nil(t, m.Interop)
		assert.Nil(t, m.Parallel)
		assert.Nil(t, m.Include)
		assert.Nil(t, m.Exclude)
	})
}

func TestManifest_Filter(t *testing.T) {
	cases := []suite.Case{
		namedCase("queue_properties", "queue", "smoke"),
		namedCase("queue_constructors", "queue"),
		namedCase("buffer_api", "buffer"),
	}

	t.Run("nil include selects everything", func(t *testing.T) {
		m := &Manifest{Suite: "all"}
		assert.Len(t, m.Filter(cases), 3)
	})

	t.Run("include by tag", func(t *testing.T) {
		m := &Manifest{Suite: "s", Include: &Selector{Tags: []string{"queue"}}}
		got := m.Filter(cases)
		require.Len(t, got, 2)
		assert.Equal(t, "queue_properties", got[0].Info.Name)
	})

	t.Run("include by name", func(t *testing.T) {
		m := &Manifest{Suite: "s", Include: &Selector{Names: []string{"buffer_api"}}}
		got := m.Filter(cases)
		require.Len(t, got, 1)
		assert.Equal(t, "buffer_api", got[0].Info.Name)
	})

	t.Run("exclude removes included matches", func(t *testing.T) {
		m := &Manifest{
			Suite:   "s",
			Include: &Selector{Tags: []string{"queue"}},
			Exclude: &Selector{Names: []string{"queue_constructors"}},
		}
		got := m.Filter(cases)
		require.Len(t, got, 1)
		assert.Equal(t, "queue_properties", got[0].Info.Name)
	})

	t.Run("empty include selector matches nothing", func(t *testing.T) {
		m := &Manifest{Suite: "s", Include: &Selector{}}
		assert.Empty(t, m.Filter(cases))
	})
}
