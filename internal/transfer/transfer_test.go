package transfer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorFormat(t *testing.T) {
	assert.Equal(t, "/a\ndev1", Descriptor("/a", "dev1"))

	path, device := SplitDescriptor("/a\ndev1")
	assert.Equal(t, "/a", path)
	assert.Equal(t, "dev1", device)

	path, device = SplitDescriptor("/no-device")
	assert.Equal(t, "/no-device", path)
	assert.Empty(t, device)
}

func TestBatchText(t *testing.T) {
	b := NewBatch([]string{Descriptor("/a", "dev1"), Descriptor("/b", "dev2")})

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "/a\ndev1\n\n/b\ndev2", b.Text())
}

func TestNewBatchCopiesDescriptors(t *testing.T) {
	in := []string{"/a\ndev1"}
	b := NewBatch(in)
	in[0] = "changed"
	assert.Equal(t, "/a\ndev1", b.Descriptors[0])
}

func TestNewBatchUniqueIDs(t *testing.T) {
	assert.NotEqual(t, NewBatch(nil).ID, NewBatch(nil).ID)
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	require.NoError(t, sink.Send(NewBatch([]string{"/a\ndev1", "/b\ndev2"})))
	assert.Equal(t, "/a\ndev1\n\n/b\ndev2\n", buf.String())
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	_, ok := r.Last()
	assert.False(t, ok)

	first := NewBatch([]string{"/a\ndev1"})
	second := NewBatch([]string{"/b\ndev2"})
	require.NoError(t, r.Send(first))
	require.NoError(t, r.Send(second))

	assert.Len(t, r.Batches(), 2)
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, second.ID, last.ID)
}

type failingSink struct{ err error }

func (f failingSink) Send(Batch) error { return f.err }

func TestMultiSink(t *testing.T) {
	r1, r2 := NewRecorder(), NewRecorder()
	boom := errors.New("boom")
	m := MultiSink{r1, nil, failingSink{err: boom}, r2}

	err := m.Send(NewBatch([]string{"/a\ndev1"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, r1.Batches(), 1)
	assert.Len(t, r2.Batches(), 1, "a failing sink does not stop later sinks")
}

func TestSpoolSinkRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spool")
	sink := NewSpoolSink(dir)
	b := NewBatch([]string{"/a\ndev1", "/b\ndev2"})

	require.NoError(t, sink.Send(b))

	target := filepath.Join(dir, b.ID+".toml")
	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[[files]]")
	assert.Contains(t, string(raw), "dev2")

	_, err = os.Stat(target + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must be renamed away")

	got, err := ReadSpoolFile(target)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.Descriptors, got.Descriptors)
}

func TestPagerUnavailableWithoutProgram(t *testing.T) {
	p := NewPager(nil)
	assert.False(t, p.Available())
	assert.Error(t, p.ShowText("x"))
}
