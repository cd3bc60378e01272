// Package types defines every cross-package data structure used by the codecat CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatText  = "text"
	FormatJSON  = "json"
	FormatTxtar = "txtar"
)

// TreeNode represents a node of the rendered directory tree. Excluded
// directories keep the flag set and never carry children.
type TreeNode struct {
	Path      string      `json:"path"`
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Excluded  bool        `json:"excluded,omitempty"`
	Size      string      `json:"size,omitempty"`
	SizeBytes int64       `json:"-"`
	Children  []*TreeNode `json:"children,omitempty"`
}

// FileSection represents one aggregated file in the snapshot body.
type FileSection struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Size      string `json:"size,omitempty"`
	SizeBytes int64  `json:"-"`
	Tokens    int    `json:"tokens,omitempty"`
	Model     string `json:"model,omitempty"`
	Content   string `json:"content"`
}

// SnapshotSummary captures aggregate information about the aggregated files.
type SnapshotSummary struct {
	TotalFiles  int    `json:"totalFiles"`
	TotalSize   string `json:"totalSize"`
	TotalTokens int    `json:"totalTokens,omitempty"`
	Model       string `json:"model,omitempty"`
}
