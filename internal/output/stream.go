package output

import (
	"fmt"
	"io"

	"github.com/temirov/codecat/internal/services/stream"
	"github.com/temirov/codecat/internal/types"
)

// Renderer consumes snapshot events and writes one output format. Flush is
// called once after the final event and completes any buffered document.
type Renderer interface {
	Handle(event stream.Event) error
	Flush() error
}

// NewRenderer returns the Renderer for the requested format writing to
// destination.
func NewRenderer(format string, destination io.Writer) (Renderer, error) {
	switch format {
	case types.FormatText:
		return NewTextRenderer(destination), nil
	case types.FormatJSON:
		return NewJSONRenderer(destination), nil
	case types.FormatTxtar:
		return NewTxtarRenderer(destination), nil
	default:
		return nil, fmt.Errorf("unsupported output format '%s'", format)
	}
}
