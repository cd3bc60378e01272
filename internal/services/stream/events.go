// Package stream produces snapshot events consumed by the output renderers.
package stream

import (
	"github.com/temirov/codecat/internal/types"
)

type EventKind string

const (
	EventKindStart   EventKind = "start"
	EventKindTree    EventKind = "tree"
	EventKindFile    EventKind = "file"
	EventKindSummary EventKind = "summary"
	EventKindWarning EventKind = "warning"
	EventKindError   EventKind = "error"
	EventKindDone    EventKind = "done"
)

// Event is one step of a snapshot run. Root and Project are set on the
// start event and repeated on lifecycle events; file events carry Path.
type Event struct {
	Kind    EventKind
	Root    string
	Project string
	Path    string

	Tree    *types.TreeNode
	File    *types.FileSection
	Summary *SummaryEvent
	Message *LogEvent
	Err     *ErrorEvent
}

// SummaryEvent totals the aggregated files of a run.
type SummaryEvent struct {
	Files  int
	Bytes  int64
	Tokens int
	Model  string
}

type LogEvent struct {
	Level   string
	Message string
}

type ErrorEvent struct {
	Message string
}
