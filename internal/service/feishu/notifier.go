package feishu

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"MomentumReport/internal/domain/models"
	domsvc "MomentumReport/internal/domain/service"
	xhttp "MomentumReport/pkg/http"
	"MomentumReport/pkg/logger"
)

// Formats accepted by WithFormat.
const (
	FormatCard = "card"
	FormatText = "text"
	FormatPost = "post"
)

const defaultTimeout = 30 * time.Second

// Notifier posts payloads to a custom-bot webhook. Each delivery is exactly one request.
type Notifier struct {
	webhookURL string
	format     string
	timeout    time.Duration
	http       *xhttp.Client
	log        *logger.Logger
}

// Option configures Notifier.
type Option func(*Notifier)

// WithFormat selects card, text or post messages for DeliverReport.
// Unknown formats keep the card default.
func WithFormat(format string) Option {
	return func(n *Notifier) {
		switch format {
		case FormatText, FormatPost:
			n.format = format
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.timeout = d
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(n *Notifier) {
		n.log = l
	}
}

// New creates a notifier for webhookURL.
func New(webhookURL string, opts ...Option) *Notifier {
	n := &Notifier{
		webhookURL: webhookURL,
		format:     FormatCard,
		timeout:    defaultTimeout,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.http = xhttp.NewClient(xhttp.WithTimeout(n.timeout))
	return n
}

// webhookAck is the acknowledgement body. Older endpoints answer with StatusCode, newer with code.
type webhookAck struct {
	Code       *int `json:"code"`
	StatusCode *int `json:"StatusCode"`
}

func (a webhookAck) ok() bool {
	return (a.Code != nil && *a.Code == 0) || (a.StatusCode != nil && *a.StatusCode == 0)
}

// Deliver posts payload once. It returns a *models.DeliveryError on any failure.
func (n *Notifier) Deliver(ctx context.Context, payload *NotificationPayload) error {
	resp, err := n.http.Do(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     n.webhookURL,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    payload,
	})
	if err != nil {
		return &models.DeliveryError{Kind: models.DeliveryTransport, Message: "request failed", Err: err}
	}

	if !resp.OK() {
		return &models.DeliveryError{
			Kind:    models.DeliveryTransport,
			Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Body),
		}
	}

	var ack webhookAck
	if err := json.Unmarshal(resp.Body, &ack); err != nil {
		return &models.DeliveryError{
			Kind:    models.DeliveryTransport,
			Message: fmt.Sprintf("non-JSON response: %s", resp.Body),
			Err:     err,
		}
	}

	if !ack.ok() {
		return &models.DeliveryError{
			Kind:    models.DeliveryProtocol,
			Message: fmt.Sprintf("webhook returned error: %s", resp.Body),
		}
	}
	return nil
}

// DeliverReport builds the configured payload for doc and delivers it.
func (n *Notifier) DeliverReport(ctx context.Context, doc *models.ReportDocument, rendered string) error {
	var payload *NotificationPayload
	switch n.format {
	case FormatText:
		payload = BuildTextPayload(Title(doc), rendered)
	case FormatPost:
		payload = BuildPostPayload(Title(doc), rendered)
	default:
		payload = BuildPayload(doc)
	}

	start := time.Now()
	err := n.Deliver(ctx, payload)
	if err != nil {
		n.log.Warn("Webhook delivery failed",
			logger.String("date", doc.Date),
			logger.String("format", n.format),
			logger.Error(err))
		return err
	}

	n.log.Info("Webhook delivery succeeded",
		logger.String("date", doc.Date),
		logger.String("format", n.format),
		logger.Duration("took", time.Since(start)))
	return nil
}

var _ domsvc.Notifier = (*Notifier)(nil)
