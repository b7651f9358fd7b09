package dispatcher

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxRunes keeps replies under the platform's 2000 character limit.
	DefaultMaxRunes         = 1900
	DefaultTruncationMarker = "..."
)

const (
	inventoryHeader = "Isi Gudang Saat Ini:\n"
	emptyInventory  = "Gudang kosong."
)

// Renderer formats replies that can grow with the inventory.
type Renderer struct {
	MaxRunes int
	Marker   string
}

// DefaultRenderer returns the renderer used when none is configured.
func DefaultRenderer() Renderer {
	return Renderer{MaxRunes: DefaultMaxRunes, Marker: DefaultTruncationMarker}
}

// Inventory renders one line per stocked item. Iteration stops as soon as the
// text is known to exceed MaxRunes, so large inventories are not fully built.
func (r Renderer) Inventory(stock iter.Seq2[string, int64]) string {
	var b strings.Builder
	b.WriteString(inventoryHeader)
	runes := utf8.RuneCountInString(inventoryHeader)
	lines := 0

	for item, qty := range stock {
		line := fmt.Sprintf("- **%s**: %d\n", item, qty)
		b.WriteString(line)
		runes += utf8.RuneCountInString(line)
		lines++
		if r.MaxRunes > 0 && runes > r.MaxRunes {
			break
		}
	}
	if lines == 0 {
		return emptyInventory
	}
	return r.Truncate(b.String())
}

// Truncate cuts s so that the result, marker included, is at most MaxRunes runes.
// A non-positive MaxRunes disables truncation.
func (r Renderer) Truncate(s string) string {
	if r.MaxRunes <= 0 || utf8.RuneCountInString(s) <= r.MaxRunes {
		return s
	}
	keep := r.MaxRunes - utf8.RuneCountInString(r.Marker)
	if keep < 0 {
		keep = 0
	}
	cut := 0
	for i := 0; i < keep; i++ {
		_, size := utf8.DecodeRuneInString(s[cut:])
		cut += size
	}
	return s[:cut] + r.Marker
}
