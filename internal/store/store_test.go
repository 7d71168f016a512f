package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/darkkaiser/convertkit-admin/internal/store"
	"github.com/darkkaiser/convertkit-admin/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return store.NewMemoryStore()
	})
}

func TestFileStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := store.NewFileStore(t.TempDir())
		require.NoError(t, err)
		return s
	})
}

func TestFileKV_Layout(t *testing.T) {
	dir := t.TempDir()
	kv, err := store.NewFileKV(dir)
	require.NoError(t, err)

	require.NoError(t, kv.Save("option/_wp_convertkit_settings", []byte(`{"api_key":"x"}`)))
	require.NoError(t, kv.Save("postmeta/12/_wp_convertkit_post_meta", []byte(`{}`)))

	data, err := os.ReadFile(filepath.Join(dir, "option", "_wp_convertkit_settings.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"api_key":"x"}`, string(data))

	keys, err := kv.Keys("postmeta/")
	require.NoError(t, err)
	assert.Equal(t, []string{"postmeta/12/_wp_convertkit_post_meta"}, keys)

	keys, err = kv.Keys("post/")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileKV_PathTraversal(t *testing.T) {
	kv, err := store.NewFileKV(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../escape", "option/../../etc/passwd", "option//x", ""} {
		_, err := kv.Load(key)
		assert.ErrorIs(t, err, store.ErrPathTraversalDetected, key)
		assert.ErrorIs(t, kv.Save(key, []byte("{}")), store.ErrPathTraversalDetected, key)
	}

	// 세그먼트 내부의 구분자는 이스케이프되어 디렉토리를 벗어나지 않는다.
	require.NoError(t, kv.Save(`option/a\b`, []byte("{}")))
	data, err := kv.Load(`option/a\b`)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Form Trigger: Shortcode", "form-trigger-shortcode"},
		{"  Hello,   World!  ", "hello-world"},
		{"ConvertKit 폼 테스트", "convertkit-폼-테스트"},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, store.Slugify(tt.in), tt.in)
	}
}
