// Package discord posts token notifications to a Discord webhook as
// rich embed cards.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rayjaywolf/telegram-userbot/internal/extract"
)

const (
	embedColor    = 0x00D26A
	authorIconURL = "https://cryptologos.cc/logos/solana-sol-logo.png"

	photonURL      = "https://photon-sol.tinyastro.io/en/lp/%s"
	dexscreenerURL = "https://dexscreener.com/solana/%s"
	solscanURL     = "https://solscan.io/token/%s"

	// statWidth aligns the stat values into one column inside the
	// monospaced block.
	statWidth = 12
)

// Webhook dispatches embed cards to a single configured webhook URL.
type Webhook struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewWebhook creates a webhook sender. A nil httpClient falls back to
// http.DefaultClient.
func NewWebhook(url string, httpClient *http.Client, log *slog.Logger) *Webhook {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Webhook{
		url:        url,
		httpClient: httpClient,
		log:        log.With("component", "discord"),
	}
}

// Notify builds the token card and posts it to the webhook. It is a
// no-op when info or pairAddress is absent. A failed send is returned
// for logging but is never fatal to the caller's loop, and is not
// retried.
func (w *Webhook) Notify(ctx context.Context, info *extract.TokenInfo, pairAddress string) error {
	if info == nil || pairAddress == "" {
		w.log.Debug("skipping notification, incomplete arguments")
		return nil
	}

	payload := WebhookPayload{
		Embeds: []Embed{BuildEmbed(info, pairAddress)},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	w.log.Debug("notification dispatched", "token", info.TokenName)
	return nil
}

// BuildEmbed renders the fixed-schema card for one token record: header
// naming the symbol, the contract address in a monospaced block, a
// column-aligned stats section, and three templated links.
func BuildEmbed(info *extract.TokenInfo, pairAddress string) Embed {
	stats := strings.Join([]string{
		statLine("Price:", info.Price),
		statLine("Market Cap:", info.MarketCap),
		statLine("Holders:", info.Holders),
		statLine("Top 10:", info.Top10Concentration),
	}, "\n")

	links := strings.Join([]string{
		fmt.Sprintf("[Photon]("+photonURL+")", pairAddress),
		fmt.Sprintf("[DexScreener]("+dexscreenerURL+")", pairAddress),
		fmt.Sprintf("[Solscan]("+solscanURL+")", info.ContractAddress),
	}, " • ")

	return Embed{
		Author: &EmbedAuthor{
			Name:    fmt.Sprintf("New Token: $%s", info.TokenName),
			IconURL: authorIconURL,
		},
		Description: fmt.Sprintf("```%s```", info.ContractAddress),
		Color:       embedColor,
		Fields: []EmbedField{
			{Name: "📊 Stats", Value: fmt.Sprintf("```%s```", stats)},
			{Name: "🔗 Links", Value: links},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func statLine(label, value string) string {
	return fmt.Sprintf("%-*s %s", statWidth, label, value)
}
