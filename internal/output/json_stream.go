package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/temirov/codecat/internal/services/stream"
	"github.com/temirov/codecat/internal/types"
	"github.com/temirov/codecat/internal/utils"
)

// jsonSnapshot is the document marshaled by the JSON renderer. The files
// slice is always present so consumers never see a null body.
type jsonSnapshot struct {
	Project     string                 `json:"project,omitempty"`
	Root        string                 `json:"root"`
	GeneratedAt string                 `json:"generatedAt"`
	Tree        *types.TreeNode        `json:"tree,omitempty"`
	Files       []*types.FileSection   `json:"files"`
	Summary     *types.SnapshotSummary `json:"summary,omitempty"`
}

// jsonStreamRenderer accumulates the snapshot document and marshals it once
// the stream completes.
type jsonStreamRenderer struct {
	destination io.Writer
	document    jsonSnapshot
}

// NewJSONRenderer returns the renderer for the JSON snapshot layout.
func NewJSONRenderer(destination io.Writer) Renderer {
	return &jsonStreamRenderer{
		destination: destination,
		document:    jsonSnapshot{Files: []*types.FileSection{}},
	}
}

func (renderer *jsonStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindStart:
		renderer.document.Project = event.Project
		renderer.document.Root = event.Root
		renderer.document.GeneratedAt = utils.FormatTimestamp(time.Now())
	case stream.EventKindTree:
		renderer.document.Tree = event.Tree
	case stream.EventKindFile:
		if event.File != nil {
			renderer.document.Files = append(renderer.document.Files, event.File)
		}
	case stream.EventKindSummary:
		if event.Summary != nil {
			renderer.document.Summary = &types.SnapshotSummary{
				TotalFiles:  event.Summary.Files,
				TotalSize:   utils.FormatFileSize(event.Summary.Bytes),
				TotalTokens: event.Summary.Tokens,
				Model:       event.Summary.Model,
			}
		}
	}
	return nil
}

func (renderer *jsonStreamRenderer) Flush() error {
	encoded, marshalError := json.MarshalIndent(renderer.document, jsonIndentPrefix, jsonIndentStep)
	if marshalError != nil {
		return marshalError
	}
	if _, writeError := renderer.destination.Write(encoded); writeError != nil {
		return writeError
	}
	_, writeError := io.WriteString(renderer.destination, "\n")
	return writeError
}
