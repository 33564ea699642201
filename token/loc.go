package token

import "fmt"

// Loc is an inclusive byte range into the source text.
type Loc struct {
	Start int
	End   int
}

// NewLoc returns the range [start, end].
func NewLoc(start, end int) Loc { return Loc{Start: start, End: end} }

// Valid reports whether the range is well formed.
func (l Loc) Valid() bool { return l.Start >= 0 && l.Start <= l.End }

// Contains reports whether o lies entirely inside l.
func (l Loc) Contains(o Loc) bool { return l.Start <= o.Start && o.End <= l.End }

// Merge returns the smallest range covering both l and o.
func (l Loc) Merge(o Loc) Loc {
	return Loc{Start: min(l.Start, o.Start), End: max(l.End, o.End)}
}

func (l Loc) String() string { return fmt.Sprintf("[%d,%d]", l.Start, l.End) }
