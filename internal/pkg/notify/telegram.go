// Package notify reports failed scrape weeks to an operator channel.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Min interval between messages to the same chat to stay under the Telegram
// rate limit (~30/min per chat).
const sendInterval = 2 * time.Second

// TelegramNotifier sends failure alerts for weeks the backfill could not
// scrape. A nil *TelegramNotifier is valid and drops all messages, so callers
// don't branch on whether notifications are configured.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time
}

func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	if token == "" || chatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false
	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// NotifyWeekFailed reports one failed (season, week) with the upstream error.
func (n *TelegramNotifier) NotifyWeekFailed(season, week int, err error) {
	if n == nil {
		return
	}
	text := fmt.Sprintf("Odds scrape failed: season %d week %d\n%v", season, week, err)
	n.send(text)
}

func (n *TelegramNotifier) send(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if since := time.Since(n.lastSend); since < sendInterval {
		time.Sleep(sendInterval - since)
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Failed to send telegram notification", "error", err)
		return
	}
	n.lastSend = time.Now()
}
