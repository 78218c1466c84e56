package wrap

import (
	"sync"

	"github.com/ByLCY/labelwrap/fontspec"
)

type measureKey struct {
	text string
	font string
}

// CachingMeasurer memoizes widths by text and canonical font. Failed
// measurements are not cached. Safe for concurrent use.
type CachingMeasurer struct {
	next TextMeasurer

	mu     sync.Mutex
	widths map[measureKey]float64
}

var _ TextMeasurer = (*CachingMeasurer)(nil)

// NewCachingMeasurer wraps next with a width cache.
func NewCachingMeasurer(next TextMeasurer) *CachingMeasurer {
	return &CachingMeasurer{next: next, widths: map[measureKey]float64{}}
}

// Measure returns the cached width or asks the wrapped measurer.
func (c *CachingMeasurer) Measure(text string, font fontspec.Spec) (float64, error) {
	if c == nil || c.next == nil {
		return 0, ErrMeasurerUnavailable
	}
	key := measureKey{text: text, font: font.String()}
	c.mu.Lock()
	width, ok := c.widths[key]
	c.mu.Unlock()
	if ok {
		return width, nil
	}

	width, err := c.next.Measure(text, font)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	c.widths[key] = width
	c.mu.Unlock()
	return width, nil
}

// Len reports the number of cached widths.
func (c *CachingMeasurer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.widths)
}
