package inventory

import (
	"strconv"
	"strings"
)

// Locations is an insertion-ordered map from warehouse location code to
// on-hand quantity. Order matters: output serialization must be byte-stable
// across runs with identical input.
type Locations struct {
	codes []string
	qty   map[string]int
}

// NewLocations returns an empty location map.
func NewLocations() *Locations {
	return &Locations{qty: make(map[string]int)}
}

// Set records the quantity for a location code. Re-setting an existing code
// replaces its quantity (last write wins) without changing its position.
func (l *Locations) Set(code string, qty int) {
	if _, seen := l.qty[code]; !seen {
		l.codes = append(l.codes, code)
	}
	l.qty[code] = qty
}

// Get returns the quantity at a location code.
func (l *Locations) Get(code string) (int, bool) {
	qty, ok := l.qty[code]
	return qty, ok
}

// Codes returns the location codes in insertion order.
func (l *Locations) Codes() []string {
	return l.codes
}

// Len returns the number of distinct location codes.
func (l *Locations) Len() int {
	return len(l.codes)
}

// String serializes the map as "code:qty" pairs joined by ";" in insertion
// order, the format the reconciled output file carries.
func (l *Locations) String() string {
	if l == nil || len(l.codes) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, code := range l.codes {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(code)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(l.qty[code]))
	}
	return sb.String()
}
