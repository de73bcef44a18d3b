package transfer

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// descriptorSeparator joins the path and device of a single descriptor
const descriptorSeparator = "\n"

// batchSeparator joins descriptors when a batch is displayed
const batchSeparator = "\n\n"

// Descriptor formats one transfer descriptor as "<path>\n<device>"
func Descriptor(path, device string) string {
	return path + descriptorSeparator + device
}

// Batch is an ordered set of descriptors handed to a sink in one submission
type Batch struct {
	ID          string    `toml:"id"`
	CreatedAt   time.Time `toml:"created_at"`
	Descriptors []string  `toml:"descriptors"`
}

// NewBatch creates a batch with a fresh id
func NewBatch(descriptors []string) Batch {
	d := make([]string, len(descriptors))
	copy(d, descriptors)
	return Batch{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now(),
		Descriptors: d,
	}
}

// Len returns the number of descriptors in the batch
func (b Batch) Len() int {
	return len(b.Descriptors)
}

// Text joins the descriptors with a blank line, the way they are previewed
func (b Batch) Text() string {
	return strings.Join(b.Descriptors, batchSeparator)
}
