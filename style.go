package pdfoutline

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StyleSignature identifies a typographic style by rounded size, font
// family and boldness.
type StyleSignature struct {
	Size int    `json:"size"`
	Font string `json:"font"`
	Bold bool   `json:"bold"`
}

// SignatureOf returns the style signature of a span. Sizes are rounded half
// to even so that 11.5 and 12.5 both land on 12. Font names are lowercased.
func SignatureOf(s Span) StyleSignature {
	return StyleSignature{
		Size: int(math.RoundToEven(s.Size)),
		Font: strings.ToLower(s.Font),
		Bold: s.Bold(),
	}
}

// String returns a compact representation such as "12/helvetica/bold".
func (s StyleSignature) String() string {
	weight := "regular"
	if s.Bold {
		weight = "bold"
	}
	return fmt.Sprintf("%d/%s/%s", s.Size, s.Font, weight)
}

// StyleFrequencyTable counts style signatures and remembers the order in
// which each signature was first seen.
type StyleFrequencyTable struct {
	counts map[StyleSignature]int
	order  []StyleSignature
}

// NewStyleFrequencyTable returns an empty table.
func NewStyleFrequencyTable() *StyleFrequencyTable {
	return &StyleFrequencyTable{counts: make(map[StyleSignature]int)}
}

// Add increments the count for sig.
func (t *StyleFrequencyTable) Add(sig StyleSignature) {
	if _, ok := t.counts[sig]; !ok {
		t.order = append(t.order, sig)
	}
	t.counts[sig]++
}

// Count returns how many times sig was added.
func (t *StyleFrequencyTable) Count(sig StyleSignature) int {
	return t.counts[sig]
}

// Len returns the number of distinct signatures.
func (t *StyleFrequencyTable) Len() int {
	return len(t.order)
}

// Signatures returns the distinct signatures in first-seen order.
func (t *StyleFrequencyTable) Signatures() []StyleSignature {
	out := make([]StyleSignature, len(t.order))
	copy(out, t.order)
	return out
}

// Level is a heading level. H1 is the outermost.
type Level int

// Heading levels.
const (
	H1 Level = iota + 1
	H2
	H3
)

// MaxLevel is the deepest heading level an outline may contain.
const MaxLevel = H3

// Valid reports whether l is one of H1, H2 or H3.
func (l Level) Valid() bool {
	return l >= H1 && l <= MaxLevel
}

// String returns the level label, e.g. "H2".
func (l Level) String() string {
	return "H" + strconv.Itoa(int(l))
}

// ParseLevel parses a label such as "H1" (case-insensitive).
func ParseLevel(s string) (Level, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "H") {
		return 0, Errorf(EINVALID, "invalid heading level %q", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || !Level(n).Valid() {
		return 0, Errorf(EINVALID, "invalid heading level %q", s)
	}
	return Level(n), nil
}

// MarshalJSON encodes the level as its label.
func (l Level) MarshalJSON() ([]byte, error) {
	if !l.Valid() {
		return nil, Errorf(EINVALID, "invalid heading level %d", int(l))
	}
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level label.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// HeadingStyleMap assigns heading levels to style signatures.
type HeadingStyleMap map[StyleSignature]Level
