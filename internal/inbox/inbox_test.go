package inbox

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/wildpost/wildpost/internal/event"
)

func TestSubmitAssignsStreamPrefixedID(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)

	cases := []struct {
		stream event.Stream
		prefix string
	}{
		{event.StreamContact, "ct_"},
		{event.StreamAllowRequest, "ar_"},
		{event.StreamPartRequest, "pr_"},
	}

	for _, tc := range cases {
		sub, err := svc.Submit(context.Background(), tc.stream, json.RawMessage(`{}`))
		if err != nil {
			t.Fatalf("submit %s: %v", tc.stream, err)
		}
		if !strings.HasPrefix(sub.ID, tc.prefix) {
			t.Errorf("stream %s: id %q missing prefix %q", tc.stream, sub.ID, tc.prefix)
		}
		if sub.CreatedAt.IsZero() {
			t.Errorf("stream %s: created_at not set", tc.stream)
		}
	}

	if got := len(repo.All()); got != len(cases) {
		t.Errorf("expected %d stored records, got %d", len(cases), got)
	}
}

func TestSubmitRejectsUnknownStream(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	_, err := svc.Submit(context.Background(), event.Stream("orders"), json.RawMessage(`{}`))
	if err != event.ErrUnknownStream {
		t.Fatalf("expected ErrUnknownStream, got %v", err)
	}
}

func TestSubmissionEventCarriesPayloadVerbatim(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	payload := json.RawMessage(`{"name":"田中","message":"質問があります"}`)
	sub, err := svc.Submit(context.Background(), event.StreamContact, payload)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	evt := sub.Event()
	if evt.ID != sub.ID || evt.Stream != event.StreamContact {
		t.Errorf("unexpected envelope: %+v", evt)
	}
	if string(evt.Payload) != string(payload) {
		t.Errorf("payload altered: %s", evt.Payload)
	}
	if err := evt.Validate(); err != nil {
		t.Errorf("envelope should validate: %v", err)
	}
}
