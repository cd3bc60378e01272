package stream

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/codecat/internal/tokenizer"
	"github.com/temirov/codecat/internal/types"
	"github.com/temirov/codecat/internal/utils"
	"github.com/temirov/codecat/internal/walk"
)

// SnapshotOptions configures one aggregation run. Root and OutputPath are
// absolute paths; OutputPath keeps the snapshot from aggregating itself.
type SnapshotOptions struct {
	Root         string
	Project      string
	Selection    walk.Selection
	OutputPath   string
	TokenCounter tokenizer.Counter
	TokenModel   string
}

// eventWriter delivers events to the consumer channel, honoring cancellation.
type eventWriter struct {
	ctx    context.Context
	events chan<- Event
}

func newEventWriter(ctx context.Context, events chan<- Event) *eventWriter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &eventWriter{ctx: ctx, events: events}
}

func (writer *eventWriter) emit(event Event) error {
	if writer.events == nil {
		return fmt.Errorf("stream: no event channel")
	}
	select {
	case <-writer.ctx.Done():
		return writer.ctx.Err()
	case writer.events <- event:
		return nil
	}
}

func (writer *eventWriter) warn(path, message string) {
	message = strings.TrimRight(message, "\n")
	if message == "" {
		return
	}
	_ = writer.emit(Event{
		Kind:    EventKindWarning,
		Path:    path,
		Message: &LogEvent{Level: "warning", Message: message},
	})
}

// runTotals accumulates the summary while file sections are emitted.
type runTotals struct {
	files  int
	bytes  int64
	tokens int
	model  string
}

func (totals *runTotals) record(section *types.FileSection) {
	totals.files++
	totals.bytes += section.SizeBytes
	totals.tokens += section.Tokens
	if totals.model == "" && section.Tokens > 0 {
		totals.model = section.Model
	}
}

func (totals *runTotals) event() *SummaryEvent {
	return &SummaryEvent{
		Files:  totals.files,
		Bytes:  totals.bytes,
		Tokens: totals.tokens,
		Model:  totals.model,
	}
}

// openDirectory is a tree node whose walk has started but not yet finished.
type openDirectory struct {
	node  *types.TreeNode
	depth int
}

// selectedFile queues a file for content emission after the tree is sent.
type selectedFile struct {
	absolutePath string
	relativePath string
	name         string
}

// StreamSnapshot walks the root, emits the assembled tree, then reads and
// emits every selected file in tree order. Unreadable files and directories
// are reported as warnings and skipped; a missing or unstattable root is
// fatal.
func StreamSnapshot(ctx context.Context, opts SnapshotOptions, out chan<- Event) error {
	if opts.Root == "" {
		return fmt.Errorf("stream: root path not set")
	}

	writer := newEventWriter(ctx, out)
	if err := writer.emit(Event{Kind: EventKindStart, Root: opts.Root, Project: opts.Project}); err != nil {
		return err
	}

	var openDirectories []*openDirectory
	var rootNode *types.TreeNode
	var queue []selectedFile

	walkOptions := walk.Options{
		Root:       opts.Root,
		Selection:  opts.Selection,
		OutputPath: opts.OutputPath,
		Warn: func(message string) {
			writer.warn(opts.Root, message)
		},
	}

	handler := func(event walk.Event) error {
		switch event.Kind {
		case walk.EventEnterDirectory:
			directory := event.Directory
			openDirectories = append(openDirectories, &openDirectory{
				node: &types.TreeNode{
					Path:     directory.Path,
					Name:     directory.Name,
					Type:     types.NodeTypeDirectory,
					Excluded: directory.Excluded,
				},
				depth: directory.Depth,
			})
			return nil
		case walk.EventFile:
			file := event.File
			if len(openDirectories) == 0 {
				return fmt.Errorf("stream: file %s reported outside any directory", file.Path)
			}
			current := openDirectories[len(openDirectories)-1]
			current.node.Children = append(current.node.Children, &types.TreeNode{
				Path:      file.Path,
				Name:      file.Name,
				Type:      types.NodeTypeFile,
				Size:      utils.FormatFileSize(file.SizeBytes),
				SizeBytes: file.SizeBytes,
			})
			if file.Selected {
				queue = append(queue, selectedFile{
					absolutePath: file.AbsolutePath,
					relativePath: file.Path,
					name:         file.Name,
				})
			}
			return nil
		case walk.EventLeaveDirectory:
			directory := event.Directory
			if len(openDirectories) == 0 {
				return fmt.Errorf("stream: directory stack underflow for %s", directory.Path)
			}
			finished := openDirectories[len(openDirectories)-1]
			if finished.depth != directory.Depth || finished.node.Path != directory.Path {
				return fmt.Errorf("stream: directory stack mismatch for %s", directory.Path)
			}
			finished.node.SizeBytes = directory.Summary.Bytes
			openDirectories = openDirectories[:len(openDirectories)-1]

			if len(openDirectories) == 0 {
				rootNode = finished.node
				return nil
			}
			enclosing := openDirectories[len(openDirectories)-1]
			enclosing.node.Children = append(enclosing.node.Children, finished.node)
			return nil
		default:
			return nil
		}
	}

	if walkErr := walk.Walk(walkOptions, handler); walkErr != nil {
		_ = writer.emit(Event{Kind: EventKindError, Root: opts.Root, Err: &ErrorEvent{Message: walkErr.Error()}})
		return walkErr
	}

	if rootNode != nil {
		if err := writer.emit(Event{Kind: EventKindTree, Root: opts.Root, Tree: rootNode}); err != nil {
			return err
		}
	}

	totals := &runTotals{}
	for _, file := range queue {
		section, readErr := loadFileSection(writer, opts, file)
		if readErr != nil {
			writer.warn(file.relativePath, fmt.Sprintf("Warning: skipping file %s: %v", file.relativePath, readErr))
			continue
		}
		totals.record(section)
		if err := writer.emit(Event{Kind: EventKindFile, Path: section.Path, File: section}); err != nil {
			return err
		}
	}

	if err := writer.emit(Event{Kind: EventKindSummary, Root: opts.Root, Summary: totals.event()}); err != nil {
		return err
	}
	return writer.emit(Event{Kind: EventKindDone, Root: opts.Root})
}

func loadFileSection(writer *eventWriter, opts SnapshotOptions, file selectedFile) (*types.FileSection, error) {
	fileBytes, readErr := os.ReadFile(file.absolutePath)
	if readErr != nil {
		return nil, readErr
	}

	section := &types.FileSection{
		Path:      file.relativePath,
		Name:      file.name,
		Size:      utils.FormatFileSize(int64(len(fileBytes))),
		SizeBytes: int64(len(fileBytes)),
		Content:   string(fileBytes),
	}

	if opts.TokenCounter != nil {
		countResult, tokenErr := tokenizer.CountBytes(opts.TokenCounter, fileBytes)
		if tokenErr != nil {
			writer.warn(file.relativePath, fmt.Sprintf("Warning: failed to count tokens for %s: %v", file.relativePath, tokenErr))
		} else if countResult.Counted {
			section.Tokens = countResult.Tokens
			section.Model = opts.TokenModel
		}
	}

	return section, nil
}
