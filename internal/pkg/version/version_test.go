package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrich(t *testing.T) {
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })

	t.Run("주입된 값이 없으면 VCS 정보를 사용한다", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "f25b8bf0123456"},
					{Key: "vcs.time", Value: "2025-12-05T11:30:00Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			}, true
		}

		bi := enrich(Info{})
		assert.Equal(t, unknown, bi.Version)
		assert.Equal(t, "f25b8bf0123456", bi.Commit)
		assert.Equal(t, "2025-12-05T11:30:00Z", bi.BuildDate)
		assert.True(t, bi.DirtyBuild)
		assert.Equal(t, runtime.Version(), bi.GoVersion)
		assert.Contains(t, bi.String(), "unknown+dirty (commit: f25b8bf")
	})

	t.Run("주입된 값이 우선한다", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "other"}}}, true
		}

		bi := enrich(Info{Version: "v1.2.0", Commit: "abc"})
		assert.Equal(t, "v1.2.0", bi.Version)
		assert.Equal(t, "abc", bi.Commit)
		assert.Equal(t, "v1.2.0", bi.ToFields()["version"])
	})

	t.Run("빌드 정보를 읽을 수 없는 경우", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

		bi := enrich(Info{})
		assert.Equal(t, unknown, bi.Version)
		assert.Equal(t, unknown, bi.Commit)
		assert.Equal(t, unknown, bi.BuildDate)
	})
}

func TestGet(t *testing.T) {
	bi := Get()
	assert.NotEmpty(t, bi.Version)
	assert.Equal(t, runtime.GOOS, bi.OS)
}
