// Package output renders snapshot events into the supported formats.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/codecat/internal/types"
)

const (
	jsonIndentPrefix = ""
	jsonIndentStep   = "  "

	separatorLine = "----------------------------------------"

	treeConnectorMiddle = "├── "
	treeConnectorLast   = "└── "
	treeIndentCarry     = "│   "
	treeIndentBlank     = "    "

	directorySuffix    = "/"
	excludedAnnotation = " [EXCLUDED]"

	projectHeaderFormat = "Project: %s\n"
	rootHeaderFormat    = "Root: %s\n"
	treeBannerFormat    = "\n--- Directory Tree: %s ---\n"
	fileHeaderFormat    = "File: %s\n"
	fileTrailerFormat   = "End of file: %s\n"
)

// WriteTree renders a directory tree to the provided writer. Directories
// carry a trailing slash; excluded ones gain the [EXCLUDED] annotation and
// have no children to render.
func WriteTree(writer io.Writer, node *types.TreeNode) {
	if node == nil {
		return
	}
	writeTreeEntry(writer, node, "", "")
}

// writeTreeEntry prints one tree line and recurses into children. lead is
// the fully assembled prefix of this line; indent is the prefix every child
// line starts from.
func writeTreeEntry(writer io.Writer, node *types.TreeNode, lead, indent string) {
	label := node.Name
	if node.Type != types.NodeTypeFile {
		label += directorySuffix
		if node.Excluded {
			label += excludedAnnotation
		}
	}
	fmt.Fprintf(writer, "%s%s\n", lead, label)

	for index, child := range node.Children {
		if child == nil {
			continue
		}
		connector, padding := treeConnectorMiddle, treeIndentCarry
		if index == len(node.Children)-1 {
			connector, padding = treeConnectorLast, treeIndentBlank
		}
		writeTreeEntry(writer, child, indent+connector, indent+padding)
	}
}

// WriteFileSection renders a single aggregated file to the provided writer.
// Content that does not end with a newline gains one so the trailer stays on
// its own line.
func WriteFileSection(writer io.Writer, section *types.FileSection) {
	if section == nil {
		return
	}
	fmt.Fprintf(writer, fileHeaderFormat, section.Path)
	content := section.Content
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	fmt.Fprint(writer, content)
	fmt.Fprintf(writer, fileTrailerFormat, section.Path)
	fmt.Fprintln(writer, separatorLine)
}

// FormatSummaryLine renders the aggregate totals of a completed run.
func FormatSummaryLine(summary *types.SnapshotSummary) string {
	if summary == nil {
		summary = &types.SnapshotSummary{}
	}
	noun := "files"
	if summary.TotalFiles == 1 {
		noun = "file"
	}
	var line strings.Builder
	fmt.Fprintf(&line, "Aggregated %d %s, %s", summary.TotalFiles, noun, summary.TotalSize)
	if summary.TotalTokens > 0 {
		fmt.Fprintf(&line, ", %d tokens", summary.TotalTokens)
	}
	if summary.Model != "" {
		fmt.Fprintf(&line, " (model: %s)", summary.Model)
	}
	return line.String()
}
