//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileSelection(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startWithFiles(t, tf, Available("one.mp4"), Available("two.mp4"))

	require.True(t, tf.SeePlain("None Selected"), "Nothing is checked after load")

	tf.Select()
	require.True(t, tf.SeePlain("Selected 1"), "Space should check the file under the cursor")
	require.True(t, tf.SeePlain("[-]"), "Bulk control should be indeterminate")

	tf.Down()
	tf.Select()
	require.True(t, tf.SeePlain("Selected 2"), "Second file should be checked")

	tf.Select()
	require.True(t, tf.WaitFor(func(s string) bool {
		return strings.LastIndex(tf.SnapshotPlain(), "Selected 1") > strings.LastIndex(tf.SnapshotPlain(), "Selected 2")
	}, time.Second), "Space again should uncheck the file")
}

func TestToggleAllSkipsScheduledFiles(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startWithFiles(t, tf, Available("one.mp4"), Scheduled("queued.mp4"), Available("three.mp4"))

	tf.ToggleAll()
	require.True(t, tf.SeePlain("Selected 2"), "Only available files should be checked")
	require.True(t, tf.SeePlain("[x] Selected 2"), "Bulk control should be checked")

	tf.ToggleAll()
	require.True(t, tf.WaitFor(func(s string) bool {
		plain := tf.SnapshotPlain()
		return strings.LastIndex(plain, "None Selected") > strings.LastIndex(plain, "Selected 2")
	}, time.Second), "Second 'a' should uncheck everything")
}

func TestScheduledFileCannotBeToggled(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startWithFiles(t, tf, Scheduled("queued.mp4"), Available("two.mp4"))

	tf.Select()
	tf.Down()
	tf.Select()
	require.True(t, tf.SeePlain("Selected 1"), "Only the available file should be checked")

	// give a stray toggle of the scheduled row time to show up
	time.Sleep(200 * time.Millisecond)
	require.NotContains(t, tf.SnapshotPlain(), "Selected 2")
}

func TestEmptyList(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startWithFiles(t, tf)

	require.True(t, tf.SeePlain(EmptyStateText), "Empty manifest should show the empty state")

	tf.Submit()
	require.True(t, tf.SeePlain("No files selected"), "Submitting nothing shows a notice")
}
