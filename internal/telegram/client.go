// Package telegram wraps the MTProto client: user-account
// authorization, session persistence, target chat resolution, and the
// update subscription feeding the relay.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"

	"github.com/rayjaywolf/telegram-userbot/internal/audit"
	"github.com/rayjaywolf/telegram-userbot/internal/config"
	"github.com/rayjaywolf/telegram-userbot/internal/relay"
)

// Client owns the Telegram connection for one run. Incoming channel and
// chat messages are converted to relay messages and pushed onto the
// messages channel; filtering and processing happen in the relay worker.
type Client struct {
	cfg        *config.Config
	log        *slog.Logger
	audit      *audit.Log
	auth       auth.UserAuthenticator
	client     *telegram.Client
	messages   chan<- relay.Message
	onResolved func(chatID int64)
}

// NewClient builds the MTProto client. onResolved is invoked once the
// target chat username has been resolved at startup.
func NewClient(
	cfg *config.Config,
	authenticator auth.UserAuthenticator,
	auditLog *audit.Log,
	log *slog.Logger,
	zapLog *zap.Logger,
	messages chan<- relay.Message,
	onResolved func(chatID int64),
) *Client {
	c := &Client{
		cfg:        cfg,
		log:        log.With("component", "telegram"),
		audit:      auditLog,
		auth:       authenticator,
		messages:   messages,
		onResolved: onResolved,
	}

	dispatcher := tg.NewUpdateDispatcher()
	dispatcher.OnNewChannelMessage(func(ctx context.Context, _ tg.Entities, u *tg.UpdateNewChannelMessage) error {
		c.deliver(ctx, u.Message)
		return nil
	})
	dispatcher.OnNewMessage(func(ctx context.Context, _ tg.Entities, u *tg.UpdateNewMessage) error {
		c.deliver(ctx, u.Message)
		return nil
	})

	c.client = telegram.NewClient(cfg.TelegramAPIID, cfg.TelegramAPIHash, telegram.Options{
		SessionStorage: NewEnvSessionStorage(cfg, auditLog, log),
		UpdateHandler:  dispatcher,
		Logger:         zapLog,
	})
	return c
}

// Run connects, authorizes the user account, resolves the target chat,
// and listens for updates until the context is cancelled. A chat
// resolution failure is fatal for the run: the client disconnects and
// Run returns the error without resubscribing.
func (c *Client) Run(ctx context.Context) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		flow := auth.NewFlow(c.auth, auth.SendCodeOptions{})
		if err := c.client.Auth().IfNecessary(ctx, flow); err != nil {
			return fmt.Errorf("authorization failed: %w", err)
		}

		self, err := c.client.Self(ctx)
		if err != nil {
			return fmt.Errorf("fetching own user failed: %w", err)
		}
		c.log.Info("logged in", "user_id", self.ID, "username", self.Username)

		chatID, err := c.resolveTarget(ctx)
		if err != nil {
			c.audit.Appendf("FATAL: could not resolve chat %q: %v", c.cfg.TargetChat, err)
			return fmt.Errorf("resolving target chat %q: %w", c.cfg.TargetChat, err)
		}
		c.onResolved(chatID)
		c.log.Info("listening for messages", "chat", c.cfg.TargetChat, "chat_id", chatID)
		c.audit.Appendf("LISTENING: %s (%d)", c.cfg.TargetChat, chatID)

		<-ctx.Done()
		return ctx.Err()
	})
}

func (c *Client) deliver(ctx context.Context, m tg.MessageClass) {
	msg, ok := m.(*tg.Message)
	if !ok {
		return
	}
	out := relay.Message{
		Text:     msg.Message,
		Outgoing: msg.Out,
		ChatID:   peerID(msg.PeerID),
	}
	select {
	case c.messages <- out:
	case <-ctx.Done():
	}
}

func (c *Client) resolveTarget(ctx context.Context) (int64, error) {
	username := strings.TrimPrefix(c.cfg.TargetChat, "@")
	resolved, err := c.client.API().ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: username,
	})
	if err != nil {
		return 0, err
	}

	for _, chat := range resolved.Chats {
		switch v := chat.(type) {
		case *tg.Channel:
			return v.ID, nil
		case *tg.Chat:
			return v.ID, nil
		}
	}
	for _, user := range resolved.Users {
		if v, ok := user.(*tg.User); ok {
			return v.ID, nil
		}
	}
	return 0, fmt.Errorf("no usable peer in resolution response")
}

func peerID(p tg.PeerClass) int64 {
	switch v := p.(type) {
	case *tg.PeerChannel:
		return v.ChannelID
	case *tg.PeerChat:
		return v.ChatID
	case *tg.PeerUser:
		return v.UserID
	}
	return 0
}
