package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davidrendon/identia-backend/internal/events"
)

type fakeRelay struct {
	emails []string // "to|subject|text"
	sms    []string // "to|body"
	err    error
}

func (f *fakeRelay) SendEmail(_ context.Context, to, subject, text string) error {
	if f.err != nil {
		return f.err
	}
	f.emails = append(f.emails, to+"|"+subject+"|"+text)
	return nil
}

func (f *fakeRelay) SendSMS(_ context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sms = append(f.sms, to+"|"+body)
	return nil
}

func newTestProcessor(relay *fakeRelay) *Processor {
	log := zap.NewNop()
	registry := NewRegistry()
	registry.Register(NewUserRegisteredHandler(relay, log))
	registry.Register(NewOTPRequestedHandler(relay, log))
	registry.Register(NewPasswordChangedHandler(relay, log))
	return NewProcessor(registry, log)
}

func payload(t *testing.T, evt events.Event) []byte {
	t.Helper()
	raw, err := json.Marshal(evt)
	require.NoError(t, err)
	return raw
}

func TestProcessUserRegistered(t *testing.T) {
	relay := &fakeRelay{}
	proc := newTestProcessor(relay)

	err := proc.Process(context.Background(), payload(t, events.Event{
		Type:  events.TypeUserRegistered,
		Email: "a@x.com",
		Name:  "Ana",
		Phone: "+573001112233",
	}))
	require.NoError(t, err)

	require.Len(t, relay.emails, 1)
	assert.Contains(t, relay.emails[0], "a@x.com")
	assert.Contains(t, relay.emails[0], "Ana")
	require.Len(t, relay.sms, 1)
	assert.Contains(t, relay.sms[0], "+573001112233")
}

func TestProcessUserRegisteredWithoutPhone(t *testing.T) {
	relay := &fakeRelay{}
	proc := newTestProcessor(relay)

	err := proc.Process(context.Background(), payload(t, events.Event{
		Type:  events.TypeUserRegistered,
		Email: "a@x.com",
		Name:  "Ana",
	}))
	require.NoError(t, err)
	assert.Len(t, relay.emails, 1)
	assert.Empty(t, relay.sms)
}

func TestProcessOTPRequestedCarriesCode(t *testing.T) {
	relay := &fakeRelay{}
	proc := newTestProcessor(relay)

	err := proc.Process(context.Background(), payload(t, events.Event{
		Type:  events.TypeOTPRequested,
		Email: "a@x.com",
		Code:  "483920",
	}))
	require.NoError(t, err)

	require.Len(t, relay.emails, 1)
	assert.Contains(t, relay.emails[0], "483920")
}

func TestProcessPasswordChanged(t *testing.T) {
	relay := &fakeRelay{}
	proc := newTestProcessor(relay)

	err := proc.Process(context.Background(), payload(t, events.Event{
		Type:  events.TypePasswordChanged,
		Email: "a@x.com",
	}))
	require.NoError(t, err)
	require.Len(t, relay.emails, 1)
	assert.Contains(t, relay.emails[0], "a@x.com")
}

func TestProcessUnknownTypeIsSkipped(t *testing.T) {
	relay := &fakeRelay{}
	proc := newTestProcessor(relay)

	err := proc.Process(context.Background(), payload(t, events.Event{
		Type:  "user.promoted",
		Email: "a@x.com",
	}))
	assert.NoError(t, err)
	assert.Empty(t, relay.emails)
}

func TestProcessMalformedPayload(t *testing.T) {
	proc := newTestProcessor(&fakeRelay{})
	assert.Error(t, proc.Process(context.Background(), []byte("{not json")))
}

func TestProcessRelayFailure(t *testing.T) {
	relay := &fakeRelay{err: errors.New("relay down")}
	proc := newTestProcessor(relay)

	err := proc.Process(context.Background(), payload(t, events.Event{
		Type:  events.TypeOTPRequested,
		Email: "a@x.com",
		Code:  "483920",
	}))
	assert.Error(t, err)
}
