package export

import "fmt"

// DefaultPageLimit caps paginated fetch loops when the profile does not
// set one. Generous for real congregations, small enough to stop a buggy
// cursor from eating an API quota.
const DefaultPageLimit = 1000

// PageGuard bounds any paginated fetch loop. Sources with buggy cursors or
// absurd row counts otherwise loop forever; the guard turns that into a
// detectable phase error instead.
//
// Usage:
//
//	guard := emit.Guard()
//	for guard.Next() {
//	    ... fetch one page, break when the source is exhausted ...
//	}
//	if err := guard.Err(); err != nil {
//	    return err
//	}
type PageGuard struct {
	limit   int
	current int
	tripped bool
}

// NewPageGuard creates a guard allowing at most limit iterations.
func NewPageGuard(limit int) *PageGuard {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return &PageGuard{limit: limit}
}

// Next reports whether another iteration is allowed, tripping the guard
// when the cap is reached.
func (g *PageGuard) Next() bool {
	if g.current >= g.limit {
		g.tripped = true
		return false
	}
	g.current++
	return true
}

// Current returns the number of iterations taken. Used for diagnostics.
func (g *PageGuard) Current() int {
	return g.current
}

// Err returns a descriptive error if the guard tripped, else nil.
func (g *PageGuard) Err() error {
	if !g.tripped {
		return nil
	}
	return fmt.Errorf("page loop guard tripped after %d iterations (limit %d)", g.current, g.limit)
}
