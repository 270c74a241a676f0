package relay

import "errors"

// EventAppointmentCreated is the only event type the relay accepts.
const EventAppointmentCreated = "appointment.created"

// SignatureHeader carries the HMAC signature of the raw request body.
const SignatureHeader = "x-webhook-signature"

// Channel status values.
const (
	StatusSent    = "sent"
	StatusCreated = "created"
	StatusFailed  = "failed"
)

// Relay errors.
var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
)

// AppointmentData holds the appointment fields required for dispatch.
type AppointmentData struct {
	AppointmentID string `json:"appointmentId"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	DateTime      string `json:"dateTime"`
	ServiceName   string `json:"serviceName,omitempty"`
	WorkshopName  string `json:"workshopName,omitempty"`
}

// WebhookEvent is the inbound webhook envelope.
type WebhookEvent struct {
	Event string          `json:"event"`
	Data  AppointmentData `json:"data"`
}

// Validate checks that the event carries all required fields.
func (e *WebhookEvent) Validate() error {
	if e.Event != EventAppointmentCreated {
		return ErrInvalidPayload
	}
	d := e.Data
	if d.AppointmentID == "" || d.CustomerEmail == "" || d.CustomerPhone == "" || d.DateTime == "" {
		return ErrInvalidPayload
	}
	return nil
}

// Result is the outcome of processing one webhook delivery.
type Result struct {
	Accepted      bool              `json:"accepted"`
	Duplicated    bool              `json:"duplicated"`
	ChannelStatus map[string]string `json:"channelStatus"`
}
