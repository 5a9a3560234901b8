package discord

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayjaywolf/telegram-userbot/internal/extract"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testInfo() *extract.TokenInfo {
	return &extract.TokenInfo{
		TokenName:          "FOO",
		ContractAddress:    "Abc123Def456Ghi789Jkl012Mno345Pqr678St",
		Price:              "$0.002",
		MarketCap:          "$500k",
		Holders:            "120",
		Top10Concentration: "12.5%",
	}
}

func TestNotify_PostsEmbed(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		captured, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL, srv.Client(), testLogger())
	info := testInfo()

	require.NoError(t, hook.Notify(context.Background(), info, "P1"))
	require.NotEmpty(t, captured)

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal(captured, &payload))
	require.Len(t, payload.Embeds, 1)

	embed := payload.Embeds[0]
	assert.Equal(t, embedColor, embed.Color)
	require.NotNil(t, embed.Author)
	assert.Equal(t, "New Token: $FOO", embed.Author.Name)
	assert.Contains(t, embed.Description, info.ContractAddress)

	require.Len(t, embed.Fields, 2)
	stats, links := embed.Fields[0], embed.Fields[1]
	assert.Contains(t, stats.Value, "$0.002")
	assert.Contains(t, stats.Value, "$500k")
	assert.Contains(t, stats.Value, "120")
	assert.Contains(t, stats.Value, "12.5%")
	assert.Contains(t, links.Value, "P1")
	assert.Contains(t, links.Value, info.ContractAddress)

	_, err := time.Parse(time.RFC3339, embed.Timestamp)
	assert.NoError(t, err)
}

func TestNotify_NoOpWithoutArguments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("webhook must not be called")
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL, srv.Client(), testLogger())

	assert.NoError(t, hook.Notify(context.Background(), nil, "P1"))
	assert.NoError(t, hook.Notify(context.Background(), testInfo(), ""))
}

func TestNotify_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL, srv.Client(), testLogger())

	err := hook.Notify(context.Background(), testInfo(), "P1")
	require.Error(t, err)
}

func TestBuildEmbed_LinksAndAlignment(t *testing.T) {
	embed := BuildEmbed(testInfo(), "P1")

	links := embed.Fields[1].Value
	assert.Contains(t, links, "https://photon-sol.tinyastro.io/en/lp/P1")
	assert.Contains(t, links, "https://dexscreener.com/solana/P1")
	assert.Contains(t, links, "https://solscan.io/token/Abc123Def456Ghi789Jkl012Mno345Pqr678St")

	stats := embed.Fields[0].Value
	for _, line := range strings.Split(strings.Trim(stats, "`"), "\n") {
		label := line[:statWidth]
		assert.Len(t, label, statWidth, "labels are padded to a fixed column width")
	}
}
