package ctxutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanceled(t *testing.T) {
	t.Run("live context returns nil", func(t *testing.T) {
		assert.NoError(t, Canceled(context.Background()))
	})

	t.Run("canceled context returns context.Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := Canceled(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
