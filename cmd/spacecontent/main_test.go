package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/spacecontent/internal/apperror"
	"github.com/nhle/spacecontent/internal/model"
)

func runCLI(t *testing.T, dir string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--db", filepath.Join(dir, "content.db"),
		"--space", "work",
		"--log-level", "error",
	}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

// parenthesized returns the first "(...)" field of an item line.
func parenthesized(t *testing.T, line string) string {
	t.Helper()
	for _, f := range strings.Fields(line) {
		if strings.HasPrefix(f, "(") && strings.HasSuffix(f, ")") {
			return strings.Trim(f, "()")
		}
	}
	t.Fatalf("no id in %q", line)
	return ""
}

func TestCLI_TodoListFlow(t *testing.T) {
	dir := t.TempDir()

	out := runCLI(t, dir, "add-list", "Work Tasks", "--kind", "todo")
	listID := strings.Fields(out)[0]

	out = runCLI(t, dir, "add-item", listID, "Task A", "--due", "2025-01-15")
	assert.Contains(t, out, "due 2025-01-15")
	itemID := parenthesized(t, out)

	out = runCLI(t, dir, "due", "2025-01-15")
	assert.Contains(t, out, "Work Tasks")

	out = runCLI(t, dir, "toggle-item", listID, itemID)
	assert.Contains(t, out, "[x] Task A")

	out = runCLI(t, dir, "show", "--kind", "all")
	assert.Contains(t, out, "Work Tasks (1/1 done)")

	runCLI(t, dir, "delete-item", listID, itemID)
	out = runCLI(t, dir, "show", "--kind", "todo_lists")
	assert.Contains(t, out, "Work Tasks (0/0 done)")
}

func TestCLI_SearchFindsNoteBodies(t *testing.T) {
	dir := t.TempDir()

	runCLI(t, dir, "add-note", "Ideas", "--content", "plant the garden")
	out := runCLI(t, dir, "search", "GARDEN")

	assert.Contains(t, out, "[note]    Ideas: plant the garden")
}

func TestMoveTo(t *testing.T) {
	items := []model.ListItem{
		{ID: "a", ListID: "l", SortOrder: 0},
		{ID: "b", ListID: "l", SortOrder: 1},
		{ID: "c", ListID: "l", SortOrder: 2},
	}

	got, err := moveTo(items, "c", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].ID, got[1].ID, got[2].ID})
	for i, item := range got {
		assert.Equal(t, i, item.SortOrder)
	}

	_, err = moveTo(got, "zzz", 0)
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
	_, err = moveTo(got, "a", 3)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
}

func TestCLI_FailedLoadClosesDatabase(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	t.Cleanup(func() {
		rootCmd.SetContext(context.Background())
		itemsCmd.SetContext(context.Background())
	})

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--db", filepath.Join(dir, "content.db"),
		"--space", "work",
		"--log-level", "error",
		"items", "some-list",
	})
	err := rootCmd.ExecuteContext(ctx)

	require.Error(t, err)
	assert.Nil(t, app.db)
	assert.NoError(t, closeApp(nil, nil))
}
