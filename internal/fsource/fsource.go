// Package fsource provides file-backed byte-stream sources for batch
// sketch construction.
//
// Files are memory-mapped for reading where possible, with a sequential
// read-ahead hint on Linux, falling back to plain file reads for inputs
// that cannot be mapped (empty files, pipes, special files).
package fsource

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// File is an lzjd.Source over one filesystem path. The path doubles as
// the digest record name.
type File struct {
	path string
}

// New returns a source reading from path.
func New(path string) File {
	return File{path: path}
}

// Name returns the path the source was created with.
func (f File) Name() string {
	return f.path
}

// Open opens the file for sequential reading. The returned reader is
// mmap-backed when the file is mappable.
func (f File) Open() (io.ReadCloser, error) {
	fd, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	stat, err := fd.Stat()
	if err != nil {
		return nil, errors.Join(err, fd.Close())
	}
	fadviseSequential(int(fd.Fd()), 0, stat.Size())
	if stat.Size() == 0 {
		// mmap rejects zero-length mappings.
		return fd, nil
	}
	mm, err := mmap.Map(fd, mmap.RDONLY, 0)
	if err != nil {
		// Unmappable input; plain reads still work.
		return fd, nil
	}
	return &mmapReader{Reader: bytes.NewReader(mm), mm: mm, fd: fd}, nil
}

// mmapReader serves reads from a mapping and releases it on Close.
type mmapReader struct {
	*bytes.Reader
	mm mmap.MMap
	fd *os.File
}

func (r *mmapReader) Close() error {
	return errors.Join(r.mm.Unmap(), r.fd.Close())
}
