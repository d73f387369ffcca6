package cli

import (
	"bytes"
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterruptHandlerCancelsContext(t *testing.T) {
	var buf bytes.Buffer
	handler := NewInterruptHandler(&buf)

	ctx := handler.HandleInterrupts(context.Background())
	require.NoError(t, ctx.Err())
	assert.False(t, handler.WasInterrupted())

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not canceled after signal")
	}

	assert.True(t, handler.WasInterrupted())
	assert.Contains(t, buf.String(), "Submission interrupted")
}

func TestInterruptHandlerDefaultWriter(t *testing.T) {
	handler := NewInterruptHandler(nil)
	assert.NotNil(t, handler.writer)
}
