package core_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsandeep/storysphere/internal/config"
	"github.com/vrsandeep/storysphere/internal/core"
	"github.com/vrsandeep/storysphere/internal/library"
	"github.com/vrsandeep/storysphere/internal/models"
	"github.com/vrsandeep/storysphere/internal/store"
	"github.com/vrsandeep/storysphere/internal/testutil"
)

func newTestApp(t *testing.T, seed bool) *core.App {
	t.Helper()
	cfg := &config.Config{}
	cfg.Scan.FollowSymlinks = true
	cfg.Library.SeedSamples = seed
	return core.NewWithConfig(cfg)
}

func TestApp_ScanAndApply(t *testing.T) {
	app := newTestApp(t, false)
	root := t.TempDir()
	testutil.CreateTestFile(t, root, "Dune.pdf", "")
	testutil.CreateTestFile(t, root, "sub/amber.mobi", "")

	ch, err := app.StartScan(root)
	require.NoError(t, err)
	out := <-ch
	require.NoError(t, out.Err)

	assert.Equal(t, 2, app.ApplyScan(out.Value))
	assert.Equal(t, "success", app.ScanStatus().Status)

	// Re-scanning the same tree adds nothing.
	ch, err = app.StartScan(root)
	require.NoError(t, err)
	out = <-ch
	require.NoError(t, out.Err)
	assert.Zero(t, app.ApplyScan(out.Value))

	books := app.Books()
	require.Len(t, books, 2)
	assert.Equal(t, "amber", books[0].Title)
	assert.Equal(t, "Dune", books[1].Title)
}

func TestApp_ScanMissingDirectoryAddsNothing(t *testing.T) {
	app := newTestApp(t, false)

	ch, err := app.StartScan(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	out := <-ch

	assert.ErrorIs(t, out.Err, library.ErrDirectoryNotFound)
	assert.Nil(t, out.Value)
	assert.Zero(t, app.ApplyScan(out.Value))
	assert.Zero(t, app.Library().Len())
	assert.Equal(t, "failed", app.ScanStatus().Status)
}

func TestApp_AddFile(t *testing.T) {
	app := newTestApp(t, false)
	dir := t.TempDir()
	p := testutil.CreateTestFile(t, dir, "The_Lies_of_Locke_Lamora - Scott_Lynch.epub", "broken")

	book, err := app.AddFile(p)
	require.NoError(t, err)
	assert.Equal(t, models.Book{Title: "The Lies of Locke Lamora", Author: "Scott Lynch", Path: p}, book)

	_, err = app.AddFile(p)
	assert.ErrorIs(t, err, store.ErrDuplicatePath)

	t.Run("Scan after add drops the duplicate", func(t *testing.T) {
		ch, err := app.StartScan(dir)
		require.NoError(t, err)
		out := <-ch
		require.NoError(t, out.Err)
		assert.Zero(t, app.ApplyScan(out.Value))
		assert.Equal(t, 1, app.Library().Len())
	})

	t.Run("Unsupported format", func(t *testing.T) {
		txt := testutil.CreateTestFile(t, dir, "notes.txt", "")
		_, err := app.AddFile(txt)
		assert.ErrorIs(t, err, library.ErrUnsupportedFormat)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := app.AddFile(filepath.Join(dir, "missing.epub"))
		assert.Error(t, err)
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := app.AddFile(dir)
		assert.Error(t, err)
	})
}

func TestApp_ResetReseedsSamples(t *testing.T) {
	app := newTestApp(t, true)
	assert.Equal(t, 3, app.Library().Len())

	p := testutil.CreateTestFile(t, t.TempDir(), "Emma.pdf", "")
	_, err := app.AddFile(p)
	require.NoError(t, err)
	assert.Equal(t, 4, app.Library().Len())

	app.Reset()
	assert.Equal(t, 3, app.Library().Len())
	assert.False(t, app.Library().Contains(p))
}
