package hook

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(s string) Action {
	return func(w io.Writer, _ Event) error {
		_, err := fmt.Fprint(w, s)
		return err
	}
}

func TestRegistry_Order(t *testing.T) {
	r := NewRegistry()
	r.Add(AdminNotices, DefaultPriority, write("b"))
	r.Add(AdminNotices, 5, write("a"))
	r.Add(AdminNotices, DefaultPriority, write("c"))

	var sb strings.Builder
	require.NoError(t, r.Do(&sb, AdminNotices, Event{}))
	assert.Equal(t, "abc", sb.String())
	assert.True(t, r.Has(AdminNotices))
	assert.False(t, r.Has(SettingsRenderAfter))
}

func TestRegistry_DoUnknownIsNoop(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, NewRegistry().Do(&sb, "missing", Event{}))
	assert.Empty(t, sb.String())
}

func TestRegistry_StopsOnError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Add(SettingsRenderBefore, 1, func(io.Writer, Event) error { return boom })
	r.Add(SettingsRenderBefore, 2, write("never"))

	var sb strings.Builder
	assert.ErrorIs(t, r.Do(&sb, SettingsRenderBefore, Event{}), boom)
	assert.Empty(t, sb.String())
}

func TestRegistry_EventContext(t *testing.T) {
	r := NewRegistry()
	r.Add(AdminNotices, DefaultPriority, func(w io.Writer, e Event) error {
		assert.NotNil(t, e.Ctx, "Ctx가 비어 있으면 Background로 채워져야 한다")
		_, err := io.WriteString(w, e.Screen)
		return err
	})

	var sb strings.Builder
	require.NoError(t, r.Do(&sb, AdminNotices, Event{Screen: "dashboard"}))
	assert.Equal(t, "dashboard", sb.String())
}
