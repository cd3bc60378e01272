package output

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/tools/txtar"

	"github.com/temirov/codecat/internal/services/stream"
	"github.com/temirov/codecat/internal/types"
)

// txtarStreamRenderer emits the snapshot as a txtar archive. The header and
// directory tree become the archive comment and every aggregated file becomes
// an archive entry named by its relative path.
type txtarStreamRenderer struct {
	destination io.Writer
	comment     bytes.Buffer
	archive     txtar.Archive
}

// NewTxtarRenderer returns the renderer for the txtar snapshot layout.
func NewTxtarRenderer(destination io.Writer) Renderer {
	return &txtarStreamRenderer{destination: destination}
}

func (renderer *txtarStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindStart:
		return renderer.writeHeader(event.Project, event.Root)
	case stream.EventKindTree:
		return renderer.writeTree(event.Root, event.Tree)
	case stream.EventKindFile:
		if event.File != nil {
			renderer.archive.Files = append(renderer.archive.Files, txtar.File{
				Name: event.File.Path,
				Data: []byte(event.File.Content),
			})
		}
	}
	return nil
}

func (renderer *txtarStreamRenderer) Flush() error {
	renderer.archive.Comment = renderer.comment.Bytes()
	_, writeError := renderer.destination.Write(txtar.Format(&renderer.archive))
	return writeError
}

func (renderer *txtarStreamRenderer) writeHeader(project string, root string) error {
	if project != "" {
		if _, err := fmt.Fprintf(&renderer.comment, projectHeaderFormat, project); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(&renderer.comment, rootHeaderFormat, root)
	return err
}

func (renderer *txtarStreamRenderer) writeTree(root string, node *types.TreeNode) error {
	if node == nil {
		return nil
	}
	if _, err := fmt.Fprintf(&renderer.comment, treeBannerFormat, root); err != nil {
		return err
	}
	WriteTree(&renderer.comment, node)
	return nil
}
