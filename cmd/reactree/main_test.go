package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/reactree/internal/config"
	"github.com/vango-dev/reactree/internal/errors"
	"github.com/vango-dev/reactree/pkg/snapshot"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := execute(t, "init", "-C", dir)
	require.NoError(t, err)
	return dir
}

func TestInitWritesSample(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "counter", cfg.Name)
	assert.Equal(t, "span", cfg.View.Tag)
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := initProject(t)

	_, err := execute(t, "init", "-C", dir)
	assert.Equal(t, "X002", errors.CodeOf(err))

	_, err = execute(t, "init", "-C", dir, "--force")
	assert.NoError(t, err)
}

func TestInitYAML(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "init", "-C", dir, "--yaml")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.YAMLFileName))
}

func TestRenderDefault(t *testing.T) {
	dir := initProject(t)

	out, err := execute(t, "render", "-C", dir)
	require.NoError(t, err)
	assert.Equal(t, "<span>0</span>\n", out)
}

func TestRenderAppliesAssignmentsInOrder(t *testing.T) {
	dir := initProject(t)

	out, err := execute(t, "render", "-C", dir, "--set", "count=1", "--set", "count=7")
	require.NoError(t, err)
	assert.Equal(t, "<span>7</span>\n", out)
}

func TestRenderMutations(t *testing.T) {
	dir := initProject(t)

	out, err := execute(t, "render", "-C", dir, "--set", "count=1", "--mutations")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "<span>1</span>", lines[0])
	assert.Contains(t, out, `"op":"setText"`)
	assert.Contains(t, out, `"value":"1"`)
	assert.NotContains(t, out, `"op":"createElement"`)
}

func TestRenderState(t *testing.T) {
	dir := initProject(t)

	out, err := execute(t, "render", "-C", dir, "--set", "count=3", "--state")
	require.NoError(t, err)

	_, stateYAML, ok := strings.Cut(out, "\n")
	require.True(t, ok)
	var state map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stateYAML), &state))
	assert.Equal(t, 3, state["count"])
}

func TestRenderErrors(t *testing.T) {
	dir := initProject(t)

	_, err := execute(t, "render", "-C", dir, "--set", "count")
	assert.Equal(t, "X001", errors.CodeOf(err))

	_, err = execute(t, "render", "-C", dir, "--set", "missing=1")
	assert.Equal(t, "R001", errors.CodeOf(err))

	_, err = execute(t, "render", "-C", t.TempDir())
	assert.Equal(t, "C002", errors.CodeOf(err))

	_, err = execute(t, "render", "-C", dir, "--log-level", "loud")
	assert.Equal(t, "C001", errors.CodeOf(err))
}

func TestRenderExplicitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
el: root
data:
  title: Todo
view:
  tag: ul
  children:
    - tag: li
      text: '{{get "title"}}'
    - tag: li
      text: last
render:
  childOrder: declared
`), 0644))

	out, err := execute(t, "render", "--config", path, "--set", "title=Done")
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>Done</li><li>last</li></ul>\n", out)
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in    string
		path  string
		value any
	}{
		{"count=1", "count", 1},
		{"ok=true", "ok", true},
		{"name=ada", "name", "ada"},
		{" user.name = x", "user.name", "x"},
		{"n=", "n", nil},
		{"m={a: 1}", "m", map[string]any{"a": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, err := parseAssignment(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.path, a.path)
			assert.Equal(t, tt.value, a.value)
		})
	}

	for _, bad := range []string{"count", "=1", "x=[1"} {
		_, err := parseAssignment(bad)
		assert.Equal(t, "X001", errors.CodeOf(err), bad)
	}
}

func TestSnapshotToDir(t *testing.T) {
	dir := initProject(t)

	out, err := execute(t, "snapshot", "-C", dir, "--name", "after", "--set", "count=2")
	require.NoError(t, err)
	assert.Contains(t, out, "after.html")

	html, err := os.ReadFile(filepath.Join(dir, config.DefaultSnapshotDir, "after.html"))
	require.NoError(t, err)
	assert.Equal(t, "<span>2</span>", string(html))

	data, err := os.ReadFile(filepath.Join(dir, config.DefaultSnapshotDir, "after.state.yaml"))
	require.NoError(t, err)
	var doc snapshot.Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, 2, doc.State["count"])
	assert.Equal(t, 2, doc.Updates)
}

func TestNewSink(t *testing.T) {
	cfg := config.New()
	cfg.Snapshot = config.SnapshotConfig{Dir: "out"}
	_, ok := newSink(cfg).(*snapshot.DirSink)
	assert.True(t, ok)

	cfg.Snapshot = config.SnapshotConfig{Bucket: "b", Region: "eu-west-1"}
	s3sink, ok := newSink(cfg).(*snapshot.S3Sink)
	require.True(t, ok)
	assert.Equal(t, "s3", s3sink.Name())

	cfg.Snapshot = config.SnapshotConfig{}
	assert.Nil(t, newSink(cfg))
}

func TestServeStopsOnCancel(t *testing.T) {
	dir := initProject(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve", "-C", dir, "--port", "0", "--host", "127.0.0.1"})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, out.String(), "Serving counter")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go version")
}
