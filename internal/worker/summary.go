package worker

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wildpost/wildpost/internal/event"
	"github.com/wildpost/wildpost/internal/notification"
)

// Japanese admin-console titles, one per stream.
const (
	titleContact      = "問い合わせが届きました"
	titleAllowRequest = "許可申請が届きました"
	titlePartRequest  = "部位リクエストが届きました"
)

// Admin-console paths the notifications link to.
const (
	urlContacts    = "/admin/contacts"
	urlAllowed     = "/admin/allowed"
	urlRequestList = "/admin/requestlist"
)

// bodyEmpty is shown when a source record carries no displayable text.
const bodyEmpty = "(内容なし)"

// Summary is the human-readable digest of one source event, shared by the
// in-app record and the push payload.
type Summary struct {
	Type  notification.Type
	Title string
	Body  string
	URL   string

	// Data carries extra push payload entries beyond title/body.
	Data map[string]string
}

// Summarize extracts the display summary for an event. The returned body is
// untruncated; callers apply their own display budget.
func Summarize(evt event.Event) (Summary, error) {
	switch evt.Stream {
	case event.StreamContact:
		return summarizeContact(evt)
	case event.StreamAllowRequest:
		return summarizeAllowRequest(evt)
	case event.StreamPartRequest:
		return summarizePartRequest(evt)
	}
	return Summary{}, event.ErrUnknownStream
}

func summarizeContact(evt event.Event) (Summary, error) {
	var p event.ContactPayload
	if err := json.Unmarshal(evt.Payload, &p); err != nil {
		return Summary{}, fmt.Errorf("%w: contact %s: %v", ErrMalformedEvent, evt.ID, err)
	}

	body := p.Message
	if p.Name != "" {
		body = p.Name + "：" + body
	}

	return Summary{
		Type:  notification.TypeContact,
		Title: titleContact,
		Body:  body,
		URL:   urlContacts,
		Data: map[string]string{
			"url":       urlContacts,
			"contactId": evt.ID,
		},
	}, nil
}

func summarizeAllowRequest(evt event.Event) (Summary, error) {
	var p event.AllowRequestPayload
	if err := json.Unmarshal(evt.Payload, &p); err != nil {
		return Summary{}, fmt.Errorf("%w: allow request %s: %v", ErrMalformedEvent, evt.ID, err)
	}

	body := p.Email
	if p.Note != "" {
		body += "：" + p.Note
	}

	return Summary{
		Type:  notification.TypeAllowRequest,
		Title: titleAllowRequest,
		Body:  body,
		URL:   urlAllowed,
		Data: map[string]string{
			"url":       urlAllowed,
			"requestId": evt.ID,
		},
	}, nil
}

func summarizePartRequest(evt event.Event) (Summary, error) {
	var p event.PartRequestPayload
	if err := json.Unmarshal(evt.Payload, &p); err != nil {
		return Summary{}, fmt.Errorf("%w: part request %s: %v", ErrMalformedEvent, evt.ID, err)
	}

	var parts []string
	if p.Animal != "" {
		parts = append(parts, p.Animal)
	}
	if p.Part != "" {
		parts = append(parts, p.Part)
	}
	body := strings.Join(parts, " ")
	if p.Grams > 0 {
		body = fmt.Sprintf("%s / %dg", body, p.Grams)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = bodyEmpty
	}

	return Summary{
		Type:  notification.TypePartRequest,
		Title: titlePartRequest,
		Body:  body,
		URL:   urlRequestList,
		Data: map[string]string{
			"url":       urlRequestList,
			"requestId": evt.ID,
		},
	}, nil
}
