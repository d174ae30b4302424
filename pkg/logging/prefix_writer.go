package logging

import (
	"bytes"
	"io"
)

// PrefixWriter wraps an io.Writer and adds a prefix to each complete line.
// Partial lines are held until their newline arrives or Flush is called.
type PrefixWriter struct {
	prefix  []byte
	writer  io.Writer
	pending bytes.Buffer
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{
		prefix: []byte(prefix),
		writer: w,
	}
}

// Write implements io.Writer.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			pw.pending.Write(p)
			break
		}

		pw.pending.Write(p[:i+1])
		if err := pw.emit(); err != nil {
			return 0, err
		}
		p = p[i+1:]
	}
	return n, nil
}

// Flush writes any partial line without waiting for a newline.
func (pw *PrefixWriter) Flush() error {
	if pw.pending.Len() == 0 {
		return nil
	}
	return pw.emit()
}

func (pw *PrefixWriter) emit() error {
	line := make([]byte, 0, len(pw.prefix)+pw.pending.Len())
	line = append(line, pw.prefix...)
	line = append(line, pw.pending.Bytes()...)
	pw.pending.Reset()

	_, err := pw.writer.Write(line)
	return err
}
