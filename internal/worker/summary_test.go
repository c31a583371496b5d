package worker_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildpost/wildpost/internal/event"
	"github.com/wildpost/wildpost/internal/notification"
	"github.com/wildpost/wildpost/internal/worker"
)

func mustPayload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestSummarize_Contact(t *testing.T) {
	tests := []struct {
		name     string
		payload  event.ContactPayload
		wantBody string
	}{
		{
			name:     "name and message",
			payload:  event.ContactPayload{Name: "田中", Message: "質問があります"},
			wantBody: "田中：質問があります",
		},
		{
			name:     "anonymous",
			payload:  event.ContactPayload{Message: "質問があります"},
			wantBody: "質問があります",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := worker.Summarize(event.Event{
				ID:      "c1",
				Stream:  event.StreamContact,
				Payload: mustPayload(t, tt.payload),
			})
			require.NoError(t, err)
			assert.Equal(t, notification.TypeContact, s.Type)
			assert.Equal(t, "問い合わせが届きました", s.Title)
			assert.Equal(t, tt.wantBody, s.Body)
			assert.Equal(t, "/admin/contacts", s.URL)
			assert.Equal(t, "c1", s.Data["contactId"])
		})
	}
}

func TestSummarize_AllowRequest(t *testing.T) {
	s, err := worker.Summarize(event.Event{
		ID:      "r1",
		Stream:  event.StreamAllowRequest,
		Payload: mustPayload(t, event.AllowRequestPayload{Email: "a@b.com", Note: "猟師仲間です"}),
	})
	require.NoError(t, err)
	assert.Equal(t, notification.TypeAllowRequest, s.Type)
	assert.Equal(t, "許可申請が届きました", s.Title)
	assert.Equal(t, "a@b.com：猟師仲間です", s.Body)
	assert.Equal(t, "/admin/allowed", s.URL)
	assert.Equal(t, "r1", s.Data["requestId"])
}

func TestSummarize_PartRequest(t *testing.T) {
	tests := []struct {
		name     string
		payload  event.PartRequestPayload
		wantBody string
	}{
		{
			name:     "full request",
			payload:  event.PartRequestPayload{Animal: "鹿", Part: "ロース", Grams: 500},
			wantBody: "鹿 ロース / 500g",
		},
		{
			name:     "part only",
			payload:  event.PartRequestPayload{Part: "モモ"},
			wantBody: "モモ",
		},
		{
			name:     "empty request",
			payload:  event.PartRequestPayload{},
			wantBody: "(内容なし)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := worker.Summarize(event.Event{
				ID:      "p1",
				Stream:  event.StreamPartRequest,
				Payload: mustPayload(t, tt.payload),
			})
			require.NoError(t, err)
			assert.Equal(t, notification.TypePartRequest, s.Type)
			assert.Equal(t, "部位リクエストが届きました", s.Title)
			assert.Equal(t, tt.wantBody, s.Body)
			assert.Equal(t, "/admin/requestlist", s.URL)
		})
	}
}

func TestSummarize_MalformedPayload(t *testing.T) {
	for _, stream := range []event.Stream{
		event.StreamContact,
		event.StreamAllowRequest,
		event.StreamPartRequest,
	} {
		_, err := worker.Summarize(event.Event{
			ID: "x1", Stream: stream, Payload: []byte(`{broken`),
		})
		assert.ErrorIs(t, err, worker.ErrMalformedEvent, "stream %s", stream)
	}
}
