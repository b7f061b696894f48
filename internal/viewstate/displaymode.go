package viewstate

import "sync"

// DisplayModes maps an anchor to whether its unit is shown as text (true) or as
// the scanned image (false). Absent anchors show text.
type DisplayModes struct {
	mu    sync.RWMutex
	modes map[string]bool
}

// NewDisplayModes returns an empty store.
func NewDisplayModes() *DisplayModes {
	return &DisplayModes{modes: make(map[string]bool)}
}

// ShowText reports the mode for anchor, defaulting to true.
func (d *DisplayModes) ShowText(anchor string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if v, ok := d.modes[anchor]; ok {
		return v
	}
	return true
}

// Toggle flips the mode for anchor and returns the new value. The first toggle
// of an anchor always switches to image mode.
func (d *DisplayModes) Toggle(anchor string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	cur, ok := d.modes[anchor]
	if !ok {
		cur = true
	}
	d.modes[anchor] = !cur
	return !cur
}

// Len returns the number of anchors toggled at least once.
func (d *DisplayModes) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.modes)
}
