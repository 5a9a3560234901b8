package relay

import (
	"context"

	"github.com/rayjaywolf/telegram-userbot/internal/extract"
)

// Message is one inbound chat event as delivered by the transport.
type Message struct {
	Text     string
	Outgoing bool
	ChatID   int64
}

// PairResolver resolves a contract address to a DEX pair address.
type PairResolver interface {
	ResolvePair(ctx context.Context, contractAddress string) (string, error)
}

// Notifier dispatches a formatted notification for one token record.
type Notifier interface {
	Notify(ctx context.Context, info *extract.TokenInfo, pairAddress string) error
}
