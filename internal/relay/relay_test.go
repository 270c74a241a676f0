package relay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-webhook-secret"

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func validBody(appointmentID string) []byte {
	b, _ := json.Marshal(WebhookEvent{
		Event: EventAppointmentCreated,
		Data: AppointmentData{
			AppointmentID: appointmentID,
			CustomerEmail: "ana@example.com",
			CustomerPhone: "+5511999990000",
			DateTime:      "2026-09-15T14:00:00Z",
			ServiceName:   "Oil change",
		},
	})
	return b
}

func newTestHandler(t *testing.T, channels []Channel) *Handler {
	t.Helper()
	svc := NewService(ServiceConfig{
		Secret:   testSecret,
		Channels: channels,
		Logger:   zerolog.Nop(),
	})
	return NewHandler(svc, zerolog.Nop())
}

func postWebhook(h *Handler, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/appointments", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body["ok"])
}

func TestHandleAppointmentAccepted(t *testing.T) {
	h := newTestHandler(t, nil)
	body := validBody("apt_001")

	rec := postWebhook(h, body, sign(body))

	require.Equal(t, http.StatusAccepted, rec.Code)
	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Accepted)
	assert.False(t, result.Duplicated)
	assert.Equal(t, map[string]string{
		"email":                 StatusSent,
		"whatsapp":              StatusSent,
		"calendar":              StatusCreated,
		"workshop_notification": StatusSent,
	}, result.ChannelStatus)
}

func TestHandleAppointmentDuplicate(t *testing.T) {
	h := newTestHandler(t, nil)
	body := validBody("apt_dup")

	first := postWebhook(h, body, sign(body))
	require.Equal(t, http.StatusAccepted, first.Code)

	second := postWebhook(h, body, sign(body))
	require.Equal(t, http.StatusAccepted, second.Code)

	var result Result
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &result))
	assert.True(t, result.Accepted)
	assert.True(t, result.Duplicated)
	assert.Nil(t, result.ChannelStatus)
}

func TestHandleAppointmentRejectsBadSignature(t *testing.T) {
	h := newTestHandler(t, nil)
	body := validBody("apt_002")

	tests := []struct {
		name      string
		signature string
	}{
		{"missing header", ""},
		{"wrong prefix", "md5=abcdef"},
		{"not hex", "sha256=zzzz"},
		{"wrong digest", "sha256=" + hex.EncodeToString(make([]byte, 32))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postWebhook(h, body, tt.signature)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestHandleAppointmentRejectsBadPayload(t *testing.T) {
	h := newTestHandler(t, nil)

	missingPhone, _ := json.Marshal(WebhookEvent{
		Event: EventAppointmentCreated,
		Data: AppointmentData{
			AppointmentID: "apt_003",
			CustomerEmail: "ana@example.com",
			DateTime:      "2026-09-15T14:00:00Z",
		},
	})
	wrongEvent, _ := json.Marshal(WebhookEvent{
		Event: "appointment.cancelled",
		Data: AppointmentData{
			AppointmentID: "apt_004",
			CustomerEmail: "ana@example.com",
			CustomerPhone: "+5511999990000",
			DateTime:      "2026-09-15T14:00:00Z",
		},
	})

	tests := []struct {
		name string
		body []byte
	}{
		{"malformed json", []byte("{not json")},
		{"missing required field", missingPhone},
		{"unexpected event type", wrongEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postWebhook(h, tt.body, sign(tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

type failingChannel struct {
	name string
}

func (c *failingChannel) Name() string          { return c.name }
func (c *failingChannel) SuccessStatus() string { return StatusSent }
func (c *failingChannel) Dispatch(context.Context, AppointmentData) error {
	return errors.New("downstream unavailable")
}

func TestDispatchAllSettled(t *testing.T) {
	channels := append(DefaultChannels(zerolog.Nop()), &failingChannel{name: "sms"})
	svc := NewService(ServiceConfig{Secret: testSecret, Channels: channels, Logger: zerolog.Nop()})

	result, err := svc.Process(context.Background(), validBody("apt_mixed"))
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, result.ChannelStatus["sms"])
	assert.Equal(t, StatusSent, result.ChannelStatus["email"])
	assert.Equal(t, StatusCreated, result.ChannelStatus["calendar"])
	assert.Len(t, result.ChannelStatus, 5)
}
