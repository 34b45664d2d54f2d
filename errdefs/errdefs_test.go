package errdefs

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsKindAndCause(t *testing.T) {
	err := error(Transport("read", "0xB1 FRAME_MODE", io.ErrUnexpectedEOF))

	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "read 0xB1 FRAME_MODE: transport error: unexpected EOF", err.Error())
}

func TestErrorWithoutCause(t *testing.T) {
	err := New(ErrBacklog, "dispatch", "", nil)

	assert.True(t, errors.Is(err, ErrBacklog))
	assert.Equal(t, "dispatch: processing backlog", err.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrValidation, KindOf(Validation("set", "EMISSIVITY", "value %d out of range", 300)))
	assert.Equal(t, ErrState, KindOf(State("read", "reader not started")))
	assert.Nil(t, KindOf(io.EOF))
	assert.Nil(t, KindOf(nil))
}
