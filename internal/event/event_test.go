package event_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/wildpost/wildpost/internal/event"
)

func TestEvent_DedupKey(t *testing.T) {
	e := event.Event{ID: "c1", Stream: event.StreamContact}
	if got, want := e.DedupKey(), "contacts_c1"; got != want {
		t.Errorf("DedupKey() = %q, want %q", got, want)
	}
}

func TestEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		evt     event.Event
		wantErr error
	}{
		{
			name: "valid",
			evt:  event.Event{ID: "r1", Stream: event.StreamPartRequest},
		},
		{
			name:    "missing id",
			evt:     event.Event{Stream: event.StreamContact},
			wantErr: event.ErrMissingID,
		},
		{
			name:    "unknown stream",
			evt:     event.Event{ID: "x1", Stream: "harvests"},
			wantErr: event.ErrUnknownStream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.evt.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "shorter than limit", in: "hello", max: 10, want: "hello"},
		{name: "exact limit", in: "hello", max: 5, want: "hello"},
		{name: "over limit", in: "hello world", max: 5, want: "hello"},
		{name: "zero limit", in: "hello", max: 0, want: ""},
		{name: "multibyte", in: "質問があります", max: 2, want: "質問"},
		{name: "empty", in: "", max: 5, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := event.Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncate_LongBodyStaysWithinPushLimit(t *testing.T) {
	body := strings.Repeat("あ", 200)
	got := event.Truncate(body, event.PushBodyLimit)
	if n := len([]rune(got)); n > event.PushBodyLimit {
		t.Errorf("truncated body has %d runes, want <= %d", n, event.PushBodyLimit)
	}
}
