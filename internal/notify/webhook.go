package notify

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workouts"
	"github.com/2beens/liftlog/pkg"
)

const (
	messageHeader       = "Workout Updates:"
	dedupeKeyPrefix     = "liftlog::notify::"
	defaultDedupeWindow = 2 * time.Minute

	OutcomeSent      = "sent"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

type webhookImage struct {
	URL string `json:"url"`
}

type webhookEmbed struct {
	Image webhookImage `json:"image"`
}

type webhookPayload struct {
	Content string         `json:"content"`
	Embeds  []webhookEmbed `json:"embeds,omitempty"`
}

type WebhookNotifierParams struct {
	WebhookURL    string
	GroupImageURL string
	Participants  []config.Participant
	// DedupeWindow defaults to two minutes
	DedupeWindow   time.Duration
	HttpClient     *http.Client
	RedisClient    *redis.Client
	MetricsManager *metrics.Manager
}

// WebhookNotifier posts a chat message describing a batch of workout updates.
type WebhookNotifier struct {
	webhookURL     string
	groupImageURL  string
	participants   map[string]config.Participant
	dedupeWindow   time.Duration
	httpClient     *http.Client
	redisClient    *redis.Client
	metricsManager *metrics.Manager
}

func NewWebhookNotifier(params WebhookNotifierParams) *WebhookNotifier {
	participants := make(map[string]config.Participant, len(params.Participants))
	for _, p := range params.Participants {
		participants[p.Name] = p
	}

	dedupeWindow := params.DedupeWindow
	if dedupeWindow <= 0 {
		dedupeWindow = defaultDedupeWindow
	}

	httpClient := params.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &WebhookNotifier{
		webhookURL:     params.WebhookURL,
		groupImageURL:  params.GroupImageURL,
		participants:   participants,
		dedupeWindow:   dedupeWindow,
		httpClient:     httpClient,
		redisClient:    params.RedisClient,
		metricsManager: params.MetricsManager,
	}
}

func (n *WebhookNotifier) Enabled() bool {
	return n.webhookURL != ""
}

// NotifyUpdates is a no-op without a webhook URL, or when the same message was sent within the dedupe window.
func (n *WebhookNotifier) NotifyUpdates(ctx context.Context, updates []workouts.Entry) (err error) {
	if !n.Enabled() || len(updates) == 0 {
		return nil
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "notify.webhook.updates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("updates.count", len(updates)))

	payload := n.buildPayload(updates)

	if n.isDuplicate(ctx, payload.Content) {
		log.Debugf("skipping duplicate workout notification for %d updates", len(updates))
		n.countOutcome(OutcomeDuplicate)
		return nil
	}

	if err := n.post(ctx, payload); err != nil {
		n.countOutcome(OutcomeFailed)
		n.releaseDedupe(ctx, payload.Content)
		return err
	}

	n.countOutcome(OutcomeSent)
	return nil
}

// buildPayload renders the message text and picks the embed image.
func (n *WebhookNotifier) buildPayload(updates []workouts.Entry) webhookPayload {
	lines := make([]string, 0, len(updates))
	mentioned := make(map[string]bool)
	for _, u := range updates {
		lines = append(lines, n.describe(u))
		mentioned[u.User] = true
	}

	payload := webhookPayload{
		Content: messageHeader + "\n\n" + strings.Join(lines, "\n\n"),
	}

	var imageURL string
	switch len(mentioned) {
	case 0:
	case 1:
		for user := range mentioned {
			imageURL = n.participant(user).ImageURL
		}
	default:
		imageURL = n.groupImageURL
	}
	if imageURL != "" {
		payload.Embeds = []webhookEmbed{{Image: webhookImage{URL: imageURL}}}
	}

	return payload
}

func (n *WebhookNotifier) describe(u workouts.Entry) string {
	p := n.participant(u.User)
	unit := workouts.UnitFor(u.Exercise)
	if u.PreviousValue == nil {
		return fmt.Sprintf("**%s** just logged %s **%s** at **%s %s**!",
			p.DisplayName, p.Pronoun, u.Exercise, pkg.FormatNumber(u.Value), unit)
	}
	return fmt.Sprintf("**%s** just increased %s **%s** from **%s %s** to **%s %s**!",
		p.DisplayName, p.Pronoun, u.Exercise,
		pkg.FormatNumber(*u.PreviousValue), unit,
		pkg.FormatNumber(u.Value), unit,
	)
}

// participant falls back to the raw user label and "their" for users missing from config.
func (n *WebhookNotifier) participant(user string) config.Participant {
	p, ok := n.participants[user]
	if !ok {
		p = config.Participant{Name: user}
	}
	if p.DisplayName == "" {
		p.DisplayName = user
	}
	if p.Pronoun == "" {
		p.Pronoun = "their"
	}
	return p
}

// isDuplicate sets a short lived marker for the message content. Redis failures never block a send.
func (n *WebhookNotifier) isDuplicate(ctx context.Context, content string) bool {
	if n.redisClient == nil {
		return false
	}

	set, err := n.redisClient.SetNX(ctx, dedupeKey(content), 1, n.dedupeWindow).Result()
	if err != nil {
		log.Warnf("notification dedupe marker: %s", err)
		return false
	}
	return !set
}

// releaseDedupe drops the marker of a failed send so a retry is not mistaken for a duplicate.
func (n *WebhookNotifier) releaseDedupe(ctx context.Context, content string) {
	if n.redisClient == nil {
		return
	}
	if err := n.redisClient.Del(ctx, dedupeKey(content)).Err(); err != nil {
		log.Warnf("release notification dedupe marker: %s", err)
	}
}

func dedupeKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return dedupeKeyPrefix + hex.EncodeToString(sum[:])
}

func (n *WebhookNotifier) post(ctx context.Context, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", pkg.ContentType.JSON)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook responded %d: %s", resp.StatusCode, pkg.BytesToString(respBody))
	}
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

func (n *WebhookNotifier) countOutcome(outcome string) {
	if n.metricsManager == nil {
		return
	}
	n.metricsManager.CounterNotifications.WithLabelValues(outcome).Inc()
}
