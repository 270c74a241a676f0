package relay

import (
	"context"

	"github.com/rs/zerolog"
)

// Channel delivers an appointment event to one notification target.
type Channel interface {
	Name() string
	// SuccessStatus is the status reported when dispatch succeeds,
	// "sent" or "created" depending on the channel semantics.
	SuccessStatus() string
	Dispatch(ctx context.Context, data AppointmentData) error
}

// logChannel is a fire-and-forget stub that logs the dispatch instead
// of calling a real integration.
type logChannel struct {
	name          string
	successStatus string
	logger        zerolog.Logger
}

func (c *logChannel) Name() string          { return c.name }
func (c *logChannel) SuccessStatus() string { return c.successStatus }

func (c *logChannel) Dispatch(_ context.Context, data AppointmentData) error {
	c.logger.Info().
		Str("channel", c.name).
		Str("appointment_id", data.AppointmentID).
		Str("customer_email", data.CustomerEmail).
		Str("date_time", data.DateTime).
		Msg("dispatching appointment notification")
	return nil
}

// DefaultChannels returns the standard set of logging-stub channels.
func DefaultChannels(logger zerolog.Logger) []Channel {
	return []Channel{
		&logChannel{name: "email", successStatus: StatusSent, logger: logger},
		&logChannel{name: "whatsapp", successStatus: StatusSent, logger: logger},
		&logChannel{name: "calendar", successStatus: StatusCreated, logger: logger},
		&logChannel{name: "workshop_notification", successStatus: StatusSent, logger: logger},
	}
}
