package transfer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Sink receives batches of transfer descriptors
type Sink interface {
	Send(b Batch) error
}

// SplitDescriptor is the inverse of Descriptor
func SplitDescriptor(d string) (path, device string) {
	i := strings.LastIndex(d, descriptorSeparator)
	if i < 0 {
		return d, ""
	}
	return d[:i], d[i+len(descriptorSeparator):]
}

// WriterSink writes each batch's display text to w
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing to w
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Send writes the batch text followed by a newline
func (s *WriterSink) Send(b Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := io.WriteString(s.w, b.Text()+"\n"); err != nil {
		return fmt.Errorf("failed to write batch %s: %w", b.ID, err)
	}
	return nil
}

// Recorder keeps every batch it receives in memory
type Recorder struct {
	mu      sync.Mutex
	batches []Batch
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Send records the batch
func (r *Recorder) Send(b Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, b)
	return nil
}

// Batches returns a copy of the recorded batches
func (r *Recorder) Batches() []Batch {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Batch, len(r.batches))
	copy(out, r.batches)
	return out
}

// Last returns the most recent batch
func (r *Recorder) Last() (Batch, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.batches) == 0 {
		return Batch{}, false
	}
	return r.batches[len(r.batches)-1], true
}

// MultiSink fans a batch out to several sinks in order
type MultiSink []Sink

// Send forwards the batch to every sink and joins their errors
func (m MultiSink) Send(b Batch) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Send(b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// spoolEntry is one file of a spooled batch
type spoolEntry struct {
	Path   string `toml:"path"`
	Device string `toml:"device"`
}

// spoolFile is the on-disk layout of a spooled batch
type spoolFile struct {
	ID          string       `toml:"id"`
	CreatedAt   time.Time    `toml:"created_at"`
	Descriptors []string     `toml:"descriptors"`
	Files       []spoolEntry `toml:"files"`
}

// SpoolSink writes each batch as <id>.toml into a directory watched by
// an external downloader
type SpoolSink struct {
	dir string
}

// NewSpoolSink creates a spool sink for dir
func NewSpoolSink(dir string) *SpoolSink {
	return &SpoolSink{dir: dir}
}

// Send marshals the batch and writes it atomically
func (s *SpoolSink) Send(b Batch) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create spool directory: %w", err)
	}

	sf := spoolFile{
		ID:          b.ID,
		CreatedAt:   b.CreatedAt,
		Descriptors: b.Descriptors,
		Files:       make([]spoolEntry, 0, len(b.Descriptors)),
	}
	for _, d := range b.Descriptors {
		path, device := SplitDescriptor(d)
		sf.Files = append(sf.Files, spoolEntry{Path: path, Device: device})
	}

	data, err := toml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("failed to marshal batch %s: %w", b.ID, err)
	}

	target := filepath.Join(s.dir, b.ID+".toml")
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write spool file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to commit spool file: %w", err)
	}
	return nil
}

// ReadSpoolFile loads a spooled batch back from disk
func ReadSpoolFile(path string) (Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Batch{}, fmt.Errorf("failed to read spool file: %w", err)
	}
	var sf spoolFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return Batch{}, fmt.Errorf("failed to parse spool file: %w", err)
	}
	return Batch{ID: sf.ID, CreatedAt: sf.CreatedAt, Descriptors: sf.Descriptors}, nil
}
