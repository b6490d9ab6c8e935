package export

import "github.com/google/uuid"

// Progress is one coarse progress event, emitted after each logical unit
// of work (a page of API results, a parsed row). Total is 0 when the
// source does not expose a count up front.
type Progress struct {
	RunID   uuid.UUID
	Phase   string
	Done    int
	Total   int
	Message string
}
