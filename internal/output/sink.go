package output

import (
	"bufio"
	"errors"
	"os"
)

// FileSink buffers writes to the snapshot file. Close flushes the buffer
// and closes the underlying file, reporting both errors when they occur.
type FileSink struct {
	file   *os.File
	writer *bufio.Writer
}

// NewFileSink creates (or truncates) the file at path and wraps it in a
// buffered writer.
func NewFileSink(path string) (*FileSink, error) {
	createdFile, createError := os.Create(path)
	if createError != nil {
		return nil, createError
	}
	return &FileSink{
		file:   createdFile,
		writer: bufio.NewWriter(createdFile),
	}, nil
}

func (sink *FileSink) Write(data []byte) (int, error) {
	return sink.writer.Write(data)
}

// Close flushes buffered data and closes the file.
func (sink *FileSink) Close() error {
	flushError := sink.writer.Flush()
	closeError := sink.file.Close()
	return errors.Join(flushError, closeError)
}
