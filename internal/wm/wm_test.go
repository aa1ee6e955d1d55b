package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.i3wm.org/i3/v4"

	"i3-last/internal/event"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   i3.Event
		want event.Event
		ok   bool
	}{
		{
			name: "focus",
			in:   &i3.WindowEvent{Change: "focus", Container: i3.Node{ID: 94251}},
			want: event.Focus(94251),
			ok:   true,
		},
		{
			name: "close",
			in:   &i3.WindowEvent{Change: "close", Container: i3.Node{ID: 7}},
			want: event.Close(7),
			ok:   true,
		},
		{
			name: "title change is dropped",
			in:   &i3.WindowEvent{Change: "title", Container: i3.Node{ID: 7}},
		},
		{
			name: "new window is dropped",
			in:   &i3.WindowEvent{Change: "new", Container: i3.Node{ID: 8}},
		},
		{
			name: "workspace event is dropped",
			in:   &i3.WorkspaceEvent{Change: "focus"},
		},
		{
			name: "nil",
			in:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalize(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDetectSession(t *testing.T) {
	t.Run("sway", func(t *testing.T) {
		t.Setenv("SWAYSOCK", "/run/user/1000/sway-ipc.sock")
		t.Setenv("I3SOCK", "/run/user/1000/i3/ipc-socket")
		assert.Equal(t, session{name: "sway", socket: "/run/user/1000/sway-ipc.sock"}, detectSession())
	})

	t.Run("i3 socket", func(t *testing.T) {
		t.Setenv("SWAYSOCK", "")
		t.Setenv("I3SOCK", "/run/user/1000/i3/ipc-socket")
		assert.Equal(t, session{name: "i3", socket: "/run/user/1000/i3/ipc-socket"}, detectSession())
	})

	t.Run("fallback", func(t *testing.T) {
		t.Setenv("SWAYSOCK", "")
		t.Setenv("I3SOCK", "")
		assert.Equal(t, session{name: "i3"}, detectSession())
	})
}
