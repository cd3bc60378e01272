// Package walk traverses a root directory and reports every entry the
// snapshot must know about: directories entered and left, excluded
// directories announced without descent, and files with their selection
// state. Entries are visited in os.ReadDir order so output is deterministic.
package walk

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/codecat/internal/utils"
)

type EventKind int

const (
	EventEnterDirectory EventKind = iota
	EventFile
	EventLeaveDirectory
)

// Summary accumulates per-directory totals reported on leave events.
type Summary struct {
	Files         int
	SelectedFiles int
	Bytes         int64
}

// DirectoryInfo describes a directory event. Path is relative to the walk
// root in slash form; the root itself reports ".".
type DirectoryInfo struct {
	Path     string
	Name     string
	Depth    int
	Excluded bool
	Summary  Summary
}

// FileInfo describes a file encountered during the walk.
type FileInfo struct {
	Path         string
	AbsolutePath string
	Name         string
	Depth        int
	SizeBytes    int64
	Selected     bool
}

type Event struct {
	Kind      EventKind
	Directory *DirectoryInfo
	File      *FileInfo
}

// Options configures a walk. OutputPath names the absolute path of the
// snapshot file itself; a matching file is skipped entirely so the snapshot
// never aggregates an earlier version of itself.
type Options struct {
	Root       string
	Selection  Selection
	OutputPath string
	Warn       func(message string)
}

type treeWalker struct {
	options Options
	handler func(Event) error
}

// Walk traverses options.Root and invokes handler for every event. A
// handler error aborts the walk; an unreadable directory is reported
// through Warn and rendered without children.
func Walk(options Options, handler func(Event) error) error {
	if handler == nil {
		return fmt.Errorf("walk handler is nil")
	}

	walker := treeWalker{options: options, handler: handler}
	if walker.options.Warn == nil {
		walker.options.Warn = func(string) {}
	}
	if walker.options.OutputPath != "" {
		walker.options.OutputPath = filepath.Clean(walker.options.OutputPath)
	}

	info, statErr := os.Stat(options.Root)
	if statErr != nil {
		return statErr
	}
	if !info.IsDir() {
		return fmt.Errorf("root path %s is not a directory", options.Root)
	}

	_, err := walker.walkDirectory(options.Root, 0)
	return err
}

// walkDirectory visits one directory. Enter and leave events always pair
// up: a directory whose listing fails is warned about and rendered empty.
// A non-nil error means the handler aborted the walk.
func (walker *treeWalker) walkDirectory(path string, depth int) (Summary, error) {
	enterEvent := DirectoryInfo{
		Path:  utils.RelativePathOrSelf(path, walker.options.Root),
		Name:  filepath.Base(path),
		Depth: depth,
	}
	if err := walker.handler(Event{Kind: EventEnterDirectory, Directory: &enterEvent}); err != nil {
		return Summary{}, err
	}

	entries, readErr := os.ReadDir(path)
	if readErr != nil {
		walker.options.Warn(fmt.Sprintf("Warning: skipping directory %s: %v", path, readErr))
		entries = nil
	}

	summary := Summary{}

	for _, entry := range entries {
		childPath := filepath.Join(path, entry.Name())
		relativePath := utils.RelativePathOrSelf(childPath, walker.options.Root)

		if entry.IsDir() {
			if walker.options.Selection.ExcludesDirectory(entry.Name()) {
				if err := walker.announceExcludedDirectory(relativePath, entry.Name(), depth+1); err != nil {
					return Summary{}, err
				}
				continue
			}
			childSummary, childErr := walker.walkDirectory(childPath, depth+1)
			if childErr != nil {
				return Summary{}, childErr
			}
			summary.Files += childSummary.Files
			summary.SelectedFiles += childSummary.SelectedFiles
			summary.Bytes += childSummary.Bytes
			continue
		}

		if walker.options.OutputPath != "" && filepath.Clean(childPath) == walker.options.OutputPath {
			continue
		}

		entryInfo, infoErr := entry.Info()
		if infoErr != nil {
			walker.options.Warn(fmt.Sprintf("Warning: unable to stat %s: %v", childPath, infoErr))
			continue
		}

		fileEvent := FileInfo{
			Path:         relativePath,
			AbsolutePath: childPath,
			Name:         entry.Name(),
			Depth:        depth + 1,
			SizeBytes:    entryInfo.Size(),
			Selected:     walker.options.Selection.IncludesFile(entry.Name()),
		}
		if err := walker.handler(Event{Kind: EventFile, File: &fileEvent}); err != nil {
			return Summary{}, err
		}
		summary.Files++
		summary.Bytes += entryInfo.Size()
		if fileEvent.Selected {
			summary.SelectedFiles++
		}
	}

	leaveEvent := enterEvent
	leaveEvent.Summary = summary
	if err := walker.handler(Event{Kind: EventLeaveDirectory, Directory: &leaveEvent}); err != nil {
		return Summary{}, err
	}

	return summary, nil
}

// announceExcludedDirectory emits the enter/leave pair for a directory that
// is rendered but never read.
func (walker *treeWalker) announceExcludedDirectory(relativePath string, name string, depth int) error {
	excludedEvent := DirectoryInfo{
		Path:     relativePath,
		Name:     name,
		Depth:    depth,
		Excluded: true,
	}
	if err := walker.handler(Event{Kind: EventEnterDirectory, Directory: &excludedEvent}); err != nil {
		return err
	}
	leaveEvent := excludedEvent
	return walker.handler(Event{Kind: EventLeaveDirectory, Directory: &leaveEvent})
}
