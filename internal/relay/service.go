package relay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Service verifies, deduplicates and dispatches webhook deliveries.
type Service struct {
	secret   []byte
	channels []Channel
	logger   zerolog.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

// ServiceConfig holds the dependencies for the relay service.
type ServiceConfig struct {
	Secret   string
	Channels []Channel
	Logger   zerolog.Logger
}

// NewService creates a new relay service.
func NewService(cfg ServiceConfig) *Service {
	channels := cfg.Channels
	if channels == nil {
		channels = DefaultChannels(cfg.Logger)
	}
	return &Service{
		secret:   []byte(cfg.Secret),
		channels: channels,
		logger:   cfg.Logger,
		seen:     make(map[string]struct{}),
	}
}

// VerifySignature checks the sha256 HMAC of the raw body against the
// signature header value, expected as "sha256=<hex>".
func (s *Service) VerifySignature(body []byte, header string) error {
	hexSig, ok := strings.CutPrefix(header, "sha256=")
	if !ok || hexSig == "" {
		return ErrInvalidSignature
	}
	got, err := hex.DecodeString(hexSig)
	if err != nil {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}

// Process parses, validates and dispatches one webhook delivery. The
// signature must already be verified. Repeated deliveries of the same
// appointment are detected and reported without re-dispatching.
func (s *Service) Process(ctx context.Context, body []byte) (*Result, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, ErrInvalidPayload
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, dup := s.seen[event.Data.AppointmentID]; dup {
		s.mu.Unlock()
		s.logger.Info().
			Str("appointment_id", event.Data.AppointmentID).
			Msg("duplicate webhook delivery, skipping dispatch")
		return &Result{Accepted: true, Duplicated: true}, nil
	}
	s.seen[event.Data.AppointmentID] = struct{}{}
	s.mu.Unlock()

	return &Result{
		Accepted:      true,
		Duplicated:    false,
		ChannelStatus: s.dispatchAll(ctx, event.Data),
	}, nil
}

// dispatchAll fans out to every channel concurrently. Each channel is
// attempted regardless of the others' outcome.
func (s *Service) dispatchAll(ctx context.Context, data AppointmentData) map[string]string {
	statuses := make(map[string]string, len(s.channels))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, ch := range s.channels {
		wg.Add(1)
		go func(ch Channel) {
			defer wg.Done()

			status := ch.SuccessStatus()
			if err := ch.Dispatch(ctx, data); err != nil {
				s.logger.Error().Err(err).
					Str("channel", ch.Name()).
					Str("appointment_id", data.AppointmentID).
					Msg("channel dispatch failed")
				status = StatusFailed
			}

			mu.Lock()
			statuses[ch.Name()] = status
			mu.Unlock()
		}(ch)
	}
	wg.Wait()

	return statuses
}
