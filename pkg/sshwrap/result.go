package sshwrap

import "strings"

// Result holds the outcome of one remote command execution. Stdout and
// Stderr are opaque byte sequences with surrounding whitespace
// trimmed; no character set is assumed. A nonzero ExitCode is data,
// not an error — remote commands legitimately return nonzero for
// reasons that have nothing to do with the connection.
type Result struct {
	// Command is the text that was written to the interpreter's stdin.
	Command string
	// Stdout is the captured standard output.
	Stdout []byte
	// Stderr is the captured standard error.
	Stderr []byte
	// ExitCode is the remote command's exit code.
	ExitCode int
}

// Success reports whether the remote command exited zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Text decodes Stdout as UTF-8, replacing invalid sequences rather
// than failing.
func (r *Result) Text() string {
	return lossyDecode(r.Stdout)
}

// ErrText decodes Stderr the same way Text decodes Stdout.
func (r *Result) ErrText() string {
	return lossyDecode(r.Stderr)
}

// String returns the decoded standard output.
func (r *Result) String() string {
	return r.Text()
}

func lossyDecode(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
