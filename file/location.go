package file

import "fmt"

// Location is a byte range into the original program source.
type Location struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (loc Location) String() string {
	return fmt.Sprintf("[%d:%d]", loc.From, loc.To)
}

// Snippet returns the substring of source covered by loc, clamped to
// source's bounds so a slightly stale location never panics.
func (loc Location) Snippet(source string) string {
	from, to := loc.From, loc.To
	if from < 0 {
		from = 0
	}
	if to > len(source) {
		to = len(source)
	}
	if from > to {
		return ""
	}
	return source[from:to]
}
