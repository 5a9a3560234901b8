// Package relay sequences the per-message pipeline: filter inbound
// events, extract the token record, resolve the pair address, and
// dispatch the webhook notification. Messages are consumed from a
// single channel by one worker, so processing never overlaps no matter
// how the transport delivers updates.
package relay

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/rayjaywolf/telegram-userbot/internal/audit"
	"github.com/rayjaywolf/telegram-userbot/internal/extract"
)

// Relay runs the extraction, enrichment, and notification stages for
// messages from the monitored chat.
type Relay struct {
	log      *slog.Logger
	audit    *audit.Log
	resolver PairResolver
	notifier Notifier

	// targetChat is 0 until the transport resolves the monitored chat;
	// every event is dropped before that.
	targetChat atomic.Int64
}

// New creates a relay. SetTarget must be called before any message can
// pass the chat filter.
func New(log *slog.Logger, auditLog *audit.Log, resolver PairResolver, notifier Notifier) *Relay {
	return &Relay{
		log:      log.With("component", "relay"),
		audit:    auditLog,
		resolver: resolver,
		notifier: notifier,
	}
}

// SetTarget records the resolved identifier of the monitored chat.
func (r *Relay) SetTarget(chatID int64) {
	r.targetChat.Store(chatID)
}

// Run consumes messages until ctx is cancelled or the channel closes.
// Every failure past the filter stage is contained to its message; the
// loop itself only stops with the context.
func (r *Relay) Run(ctx context.Context, messages <-chan Message) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.Handle(ctx, msg)
		}
	}
}

// Handle runs the pipeline for a single message. Non-matching events
// are ignored without a log entry; everything after the filter is
// audited.
func (r *Relay) Handle(ctx context.Context, msg Message) {
	target := r.targetChat.Load()
	if target == 0 || msg.Outgoing || msg.Text == "" || msg.ChatID != target {
		return
	}

	r.audit.Appendf("MESSAGE RECEIVED: %s", truncate(msg.Text, 80))

	info, err := extract.Parse(msg.Text)
	if err != nil {
		r.log.Debug("message did not match token pattern", "error", err)
		r.audit.Appendf("NO TOKEN MATCH: %v", err)
		return
	}
	r.audit.Appendf("TOKEN DETECTED: $%s (%s)", info.TokenName, info.ContractAddress)

	pair, err := r.resolver.ResolvePair(ctx, info.ContractAddress)
	if err != nil {
		r.log.Warn("skipping notification, pair lookup failed",
			"contract", info.ContractAddress, "error", err)
		r.audit.Appendf("NO PAIR FOUND: %s", info.ContractAddress)
		return
	}

	if err := r.notifier.Notify(ctx, info, pair); err != nil {
		r.log.Error("webhook dispatch failed", "token", info.TokenName, "error", err)
		r.audit.Appendf("WEBHOOK ERROR: %v", err)
		return
	}

	r.log.Info("notification sent", "token", info.TokenName, "pair", pair)
	r.audit.Appendf("NOTIFICATION SENT: $%s", info.TokenName)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
