package sshwrap

import (
	"io"
	"os"
	"path/filepath"

	"github.com/NetAngels/openssh-wrapper/internal/errors"
)

// Source is one file to transfer: either an existing filesystem path
// or an in-memory/stream payload. Stream sources are materialized into
// a temporary directory before scp sees them; that directory lives
// only for the duration of the enclosing Copy call.
type Source struct {
	path   string
	reader io.Reader
	name   string
}

// PathSource references an existing local file or directory by path.
// Existence is checked by scp itself, not here.
func PathSource(path string) Source {
	return Source{path: path}
}

// StreamSource wraps a reader whose contents should be transferred.
// When name is non-empty its basename becomes the file name on the
// remote side; otherwise an anonymous unique name is used.
func StreamSource(r io.Reader, name string) Source {
	return Source{reader: r, name: name}
}

// IsPath reports whether the source references a filesystem path.
func (s Source) IsPath() bool {
	return s.path != ""
}

// PathSources is a convenience for the common all-paths case.
func PathSources(paths ...string) []Source {
	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = PathSource(p)
	}
	return sources
}

// materializeSources resolves sources to local file paths. Path
// sources pass through unchanged; stream sources are fully read into a
// lazily created temporary directory. The directory path is returned
// (empty when no stream source existed) and the caller owns removing
// it. On error any directory created so far is removed before
// returning.
func materializeSources(sources []Source) (paths []string, tmpDir string, err error) {
	defer func() {
		if err != nil && tmpDir != "" {
			os.RemoveAll(tmpDir)
			tmpDir = ""
		}
	}()

	for _, src := range sources {
		switch {
		case src.path != "":
			paths = append(paths, src.path)

		case src.reader != nil:
			if tmpDir == "" {
				tmpDir, err = os.MkdirTemp("", "sshwrap-")
				if err != nil {
					return nil, tmpDir, errors.WrapWithCode(err, errors.ErrTransfer,
						"Couldn't create a temporary directory for stream sources", "")
				}
			}
			var f *os.File
			if src.name != "" {
				f, err = os.Create(filepath.Join(tmpDir, filepath.Base(src.name)))
			} else {
				f, err = os.CreateTemp(tmpDir, "source-")
			}
			if err != nil {
				return nil, tmpDir, errors.WrapWithCode(err, errors.ErrTransfer,
					"Couldn't materialize a stream source", "")
			}
			_, err = io.Copy(f, src.reader)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return nil, tmpDir, errors.WrapWithCode(err, errors.ErrTransfer,
					"Couldn't write stream source "+filepath.Base(f.Name()), "")
			}
			paths = append(paths, f.Name())

		default:
			return nil, tmpDir, errors.New(errors.ErrValidation,
				"Source has neither a path nor a stream",
				"Build sources with PathSource or StreamSource")
		}
	}
	return paths, tmpDir, nil
}
