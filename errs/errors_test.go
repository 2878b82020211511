package errs

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailedError_Builder(t *testing.T) {
	inner := New("db.Connect").Msg("connection refused")
	outer := New("server.Start").Err(inner).Msg("startup failed")

	assert.Equal(t, "startup failed", outer.Error())
	assert.Equal(t, Op("server.Start"), outer.Op())
	require.NotNil(t, outer.Cause())
	assert.Equal(t, "connection refused", outer.Cause().Error())
}

func TestDetailedError_EmptyMessageFallsBack(t *testing.T) {
	withCause := New("a.B").Err(stderrs.New("boom"))
	assert.Equal(t, "boom", withCause.Error())

	bare := New("a.B")
	assert.Equal(t, "a.B", bare.Error())
}

func TestDetailedError_Errorf(t *testing.T) {
	root := stderrs.New("disk full")
	err := New("store.Write").Errorf("write failed: %w", root)

	assert.Equal(t, "write failed: disk full", err.Error())
	assert.Same(t, root, err.Cause())
	assert.True(t, stderrs.Is(err, root))
}

func TestDetailedError_StdlibInterop(t *testing.T) {
	inner := New("db.Connect").Msg("connection refused")
	wrapped := fmt.Errorf("outer: %w", inner)

	var d *DetailedError
	require.True(t, stderrs.As(wrapped, &d))
	assert.Equal(t, Op("db.Connect"), d.Op())

	// AsDetailedError must not unwrap: the plain fmt layer is not detailed.
	_, ok := AsDetailedError(wrapped)
	assert.False(t, ok)
	_, ok = AsDetailedError(inner)
	assert.True(t, ok)
}
