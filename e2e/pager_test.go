//go:build e2e && unix

package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubmitWritesSpool(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	spool := filepath.Join(workspace, "spool")
	require.NoError(t, tf.WriteConfig("[transfer]\npreview = false\nspool_dir = \""+spool+"\"\n"))

	manifest, err := tf.CreateManifest("files.toml", Available("one.mp4"), Scheduled("two.mp4"), Available("three.mp4"))
	require.NoError(t, err, "Failed to create manifest")

	require.NoError(t, tf.StartApp(manifest), "Failed to start app")
	require.True(t, tf.Ready(), "Should load the file list")

	tf.ToggleAll()
	require.True(t, tf.SeePlain("Selected 2"), "Available files should be checked")

	tf.Submit()
	require.True(t, tf.SeePlain("Queued 2 files"), "Submit should queue the batch")

	var files []string
	require.True(t, tf.WaitFor(func(string) bool {
		files, _ = SpoolFiles(spool)
		return len(files) == 1
	}, 2*time.Second), "One batch file should be spooled")
}

func TestSubmitPreviewPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startWithFiles(t, tf, Available("one.mp4"), Available("two.mp4"))

	tf.Select()
	require.True(t, tf.SeePlain("Selected 1"), "First file should be checked")

	tf.Submit()

	// Assert on real pager bytes (normalized)
	require.True(t, tf.OutputContainsPlain("(1 files)", 3*time.Second), "Should show the batch in the pager")
	require.True(t, tf.SeePlain("/dcim/one.mp4"), "Pager should show the descriptor path")

	// Quit pager and ensure TUI again
	tf.Quit()
	require.True(t, tf.SeePlain("Queued 1 files"), "Should return to main TUI after closing pager")
}
