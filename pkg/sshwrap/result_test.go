package sshwrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultText(t *testing.T) {
	r := &Result{Stdout: []byte("hello"), Stderr: []byte("warn")}

	assert.Equal(t, "hello", r.Text())
	assert.Equal(t, "warn", r.ErrText())
	assert.Equal(t, "hello", r.String())
}

func TestResultTextInvalidUTF8(t *testing.T) {
	// Invalid sequences are replaced, never a decode failure.
	r := &Result{Stdout: []byte{'o', 'k', 0xff, 0xfe}}

	text := r.Text()
	assert.Contains(t, text, "ok")
	assert.True(t, len(text) > 2)
}

func TestResultSuccess(t *testing.T) {
	assert.True(t, (&Result{ExitCode: 0}).Success())
	assert.False(t, (&Result{ExitCode: 1}).Success())
	assert.False(t, (&Result{ExitCode: 127}).Success())
}
