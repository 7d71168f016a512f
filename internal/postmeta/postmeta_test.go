package postmeta

import (
	"context"
	"testing"

	"github.com/darkkaiser/convertkit-admin/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore(store.NewMemoryStore())

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
	assert.True(t, got.UsesDefaultForm())

	require.NoError(t, s.Save(ctx, 1, Settings{Form: "2765139", Tag: "20"}))
	got, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, got.UsesDefaultForm())
	assert.Equal(t, int64(2765139), got.FormID())

	require.NoError(t, s.Delete(ctx, 1))
	got, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, FormDefault, got.Form)
}

func TestSettings_FormID(t *testing.T) {
	tests := []struct {
		form string
		want int64
	}{
		{FormDefault, 0},
		{FormNone, 0},
		{"123", 123},
		{"abc", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Settings{Form: tt.form}.FormID(), tt.form)
	}
}
