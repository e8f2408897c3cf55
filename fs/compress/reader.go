package compress

import (
	"io"

	"github.com/jmgilman/objfs/errors"
)

// sourceReader remembers the last non-EOF error returned by the raw stream
// so that lazyReader can tell transport failures from corrupt content.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

type lazyReader struct {
	name string
	raw  io.ReadCloser
	open Decompressor

	src    *sourceReader
	dec    io.ReadCloser
	err    error
	closed bool
}

func (l *lazyReader) Read(p []byte) (int, error) {
	if l.closed {
		return 0, errors.New(errors.CodeInternal, "read from closed stream")
	}
	if l.err != nil {
		return 0, l.err
	}

	if l.dec == nil {
		l.src = &sourceReader{r: l.raw}
		dec, err := l.open(l.src)
		if err != nil {
			l.err = l.translate(err)
			return 0, l.err
		}
		l.dec = dec
	}

	n, err := l.dec.Read(p)
	if err != nil && err != io.EOF {
		l.err = l.translate(err)
		return n, l.err
	}
	return n, err
}

func (l *lazyReader) translate(err error) error {
	if l.src.err != nil {
		return l.src.err
	}
	return errors.WrapWithContext(err, errors.CodeDecompressionFailed,
		"failed to decompress stream", map[string]interface{}{"name": l.name})
}

// Close releases the decompressor and the raw stream. Subsequent calls
// return nil. An error already returned by Read is not returned again.
func (l *lazyReader) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	var first error
	if l.dec != nil {
		// Decompressors replay their last read error on Close.
		if err := l.dec.Close(); err != nil && l.err == nil {
			first = err
		}
	}
	if err := l.raw.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
