package viewstate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayModes_defaultShowsText(t *testing.T) {
	d := NewDisplayModes()
	assert.True(t, d.ShowText("hansard-ucapan-1"))
	assert.Equal(t, 0, d.Len())
}

func TestDisplayModes_firstToggleSwitchesToImage(t *testing.T) {
	d := NewDisplayModes()
	assert.False(t, d.Toggle("hansard-ucapan-1"))
	assert.False(t, d.ShowText("hansard-ucapan-1"))
}

func TestDisplayModes_toggleTwiceRestoresDefault(t *testing.T) {
	d := NewDisplayModes()
	d.Toggle("inquiry-jawapan-9")
	assert.True(t, d.Toggle("inquiry-jawapan-9"))
	assert.True(t, d.ShowText("inquiry-jawapan-9"))
}

func TestDisplayModes_independentPerAnchor(t *testing.T) {
	d := NewDisplayModes()
	d.Toggle("hansard-ucapan-1")
	assert.True(t, d.ShowText("hansard-ucapan-2"))
	assert.True(t, d.ShowText("inquiry-ucapan-1"))
	assert.False(t, d.ShowText("hansard-ucapan-1"))
}

func TestDisplayModes_unknownAnchorIsHarmless(t *testing.T) {
	d := NewDisplayModes()
	assert.NotPanics(t, func() { d.Toggle("no-such-anchor") })
	assert.Equal(t, 1, d.Len())
}

func TestDisplayModes_concurrentToggles(t *testing.T) {
	d := NewDisplayModes()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Toggle("hansard-ucapan-1")
		}()
	}
	wg.Wait()
	// an even number of flips returns to the default
	assert.True(t, d.ShowText("hansard-ucapan-1"))
}
