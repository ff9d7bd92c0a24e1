// Package alertwatch consumes transient alert messages from a broker and
// turns them into TOO submissions.
package alertwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"swifttoo"
)

// Alert is the broker message shape: a transient event with a position and
// enough context to justify a follow-up request.
type Alert struct {
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	RA        float64   `json:"ra"`
	Dec       float64   `json:"dec"`
	Magnitude float64   `json:"magnitude,omitempty"`
	Detector  string    `json:"detector,omitempty"`
	EventTime time.Time `json:"event_time"`
	Comment   string    `json:"comment,omitempty"`
}

// Submitter is the slice of the API client the watcher needs.
type Submitter interface {
	SubmitTOO(ctx context.Context, req *swifttoo.TOORequest) (*swifttoo.Status, error)
}

// Mapper converts an alert into a submission. Returning nil skips the alert.
type Mapper func(Alert) *swifttoo.TOORequest

// Watcher reads alerts from Kafka and submits the mapped requests.
type Watcher struct {
	reader    *kafka.Reader
	submitter Submitter
	mapper    Mapper
	logger    *slog.Logger
}

// Config wires a Watcher to its broker and client.
type Config struct {
	Brokers   []string
	GroupID   string
	Topic     string
	Submitter Submitter
	Mapper    Mapper
	Logger    *slog.Logger
}

func New(cfg Config) (*Watcher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("alert watcher needs at least one broker")
	}
	if cfg.Submitter == nil {
		return nil, fmt.Errorf("alert watcher needs a submitter")
	}
	mapper := cfg.Mapper
	if mapper == nil {
		mapper = DefaultMapper
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.Topic,
		}),
		submitter: cfg.Submitter,
		mapper:    mapper,
		logger:    logger,
	}, nil
}

// Run consumes alerts until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.reader.Close()
	for {
		m, err := w.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Warn("alert read error", slog.Any("error", err))
			continue
		}

		alert, err := decodeAlert(m.Value)
		if err != nil {
			w.logger.Warn("alert decode error",
				slog.String("topic", m.Topic),
				slog.Int64("offset", m.Offset),
				slog.Any("error", err),
			)
			continue
		}
		w.logger.Info("alert consumed",
			slog.String("topic", m.Topic),
			slog.Int64("offset", m.Offset),
			slog.String("name", alert.Name),
			slog.String("type", alert.Type),
		)

		if err := w.handle(ctx, alert); err != nil {
			w.logger.Warn("alert submission failed", slog.String("name", alert.Name), slog.Any("error", err))
		}
	}
}

func (w *Watcher) handle(ctx context.Context, alert Alert) error {
	req := w.mapper(alert)
	if req == nil {
		w.logger.Debug("alert skipped", slog.String("name", alert.Name))
		return nil
	}
	status, err := w.submitter.SubmitTOO(ctx, req)
	if err != nil {
		return err
	}
	w.logger.Info("alert submitted",
		slog.String("name", alert.Name),
		slog.Int("jobNumber", status.JobNumber),
		slog.String("state", string(status.State)),
	)
	return nil
}

func decodeAlert(raw []byte) (Alert, error) {
	var alert Alert
	if err := json.Unmarshal(raw, &alert); err != nil {
		return Alert{}, fmt.Errorf("decode alert: %w", err)
	}
	if strings.TrimSpace(alert.Name) == "" {
		return Alert{}, fmt.Errorf("alert has no name")
	}
	return alert, nil
}

// DefaultMapper builds a standard follow-up request: a single XRT visit to
// localize and characterize the transient.
func DefaultMapper(alert Alert) *swifttoo.TOORequest {
	req := swifttoo.NewTOORequest()
	req.SourceName = strings.TrimSpace(alert.Name)
	req.SourceType = strings.TrimSpace(alert.Type)
	req.RA = alert.RA
	req.Dec = alert.Dec
	req.ObsType = swifttoo.ObsLightCurve
	req.Exposure = 2000
	req.ExpTimePerVisit = 2000
	req.ExpTimeJust = "2 ks to constrain the X-ray flux of a new transient"
	req.ScienceJust = strings.TrimSpace("Follow-up of broker alert. " + alert.Comment)
	if alert.Magnitude > 0 {
		req.OptMag = alert.Magnitude
	}
	if strings.EqualFold(alert.Type, "GRB") {
		if alert.EventTime.IsZero() || strings.TrimSpace(alert.Detector) == "" {
			return nil
		}
		trigger := swifttoo.Time{Time: alert.EventTime.UTC()}
		req.GRBTriggerTime = &trigger
		req.GRBDetector = alert.Detector
		req.Urgency = 2
	}
	return req
}
