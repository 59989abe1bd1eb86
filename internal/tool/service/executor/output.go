package executor

import (
	"bytes"
	"sync"
)

// binarySampleSize is how many leading bytes are scanned for NUL, the same heuristic git uses.
const binarySampleSize = 8000

// binaryPlaceholder replaces a stream that looked binary.
const binaryPlaceholder = "[Binary Content]"

// collector captures one output stream up to maxBytes.
// It is an io.Writer that never fails, so a chatty process is never blocked on a full pipe.
type collector struct {
	mu        sync.Mutex
	buffer    bytes.Buffer
	maxBytes  int
	truncated bool
	isBinary  bool

	bytesChecked int
}

func newCollector(maxBytes int) *collector {
	return &collector{maxBytes: maxBytes}
}

func (c *collector) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isBinary {
		return len(p), nil
	}

	if c.bytesChecked < binarySampleSize {
		sample := p[:min(len(p), binarySampleSize-c.bytesChecked)]
		if hasNUL(sample, c.bytesChecked == 0) {
			c.isBinary = true
			c.truncated = true
			c.buffer.Reset()
			return len(p), nil
		}
		c.bytesChecked += len(sample)
	}

	room := c.maxBytes - c.buffer.Len()
	if room <= 0 {
		c.truncated = true
		return len(p), nil
	}

	chunk := p
	if len(chunk) > room {
		chunk = chunk[:room]
		c.truncated = true
	}
	c.buffer.Write(chunk)

	return len(p), nil
}

func (c *collector) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isBinary {
		return binaryPlaceholder
	}
	return c.buffer.String()
}

func (c *collector) Truncated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.truncated
}

// hasNUL reports whether b contains a NUL byte. UTF-16/32 output is recognised
// by its BOM when b is the start of the stream.
func hasNUL(b []byte, streamStart bool) bool {
	if streamStart && len(b) >= 2 {
		if (b[0] == 0xFF && b[1] == 0xFE) || (b[0] == 0xFE && b[1] == 0xFF) {
			return false
		}
		if len(b) >= 4 && b[0] == 0x00 && b[1] == 0x00 && b[2] == 0xFE && b[3] == 0xFF {
			return false
		}
	}
	return bytes.IndexByte(b, 0) >= 0
}
