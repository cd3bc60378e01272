package output

import (
	"fmt"
	"io"

	"github.com/temirov/codecat/internal/services/stream"
	"github.com/temirov/codecat/internal/types"
)

// textStreamRenderer writes the classic plain-text snapshot: header lines,
// the directory tree banner, then one section per aggregated file.
type textStreamRenderer struct {
	destination io.Writer
}

// NewTextRenderer returns the renderer for the plain-text snapshot layout.
func NewTextRenderer(destination io.Writer) Renderer {
	return &textStreamRenderer{destination: destination}
}

func (renderer *textStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindStart:
		return renderer.writeHeader(event.Project, event.Root)
	case stream.EventKindTree:
		return renderer.writeTree(event.Root, event.Tree)
	case stream.EventKindFile:
		return renderer.writeFile(event.File)
	}
	return nil
}

func (renderer *textStreamRenderer) Flush() error {
	return nil
}

func (renderer *textStreamRenderer) writeHeader(project string, root string) error {
	if project != "" {
		if _, err := fmt.Fprintf(renderer.destination, projectHeaderFormat, project); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(renderer.destination, rootHeaderFormat, root)
	return err
}

func (renderer *textStreamRenderer) writeTree(root string, node *types.TreeNode) error {
	if node == nil {
		return nil
	}
	if _, err := fmt.Fprintf(renderer.destination, treeBannerFormat, root); err != nil {
		return err
	}
	WriteTree(renderer.destination, node)
	_, err := fmt.Fprintln(renderer.destination)
	return err
}

func (renderer *textStreamRenderer) writeFile(section *types.FileSection) error {
	if section == nil {
		return nil
	}
	WriteFileSection(renderer.destination, section)
	return nil
}
