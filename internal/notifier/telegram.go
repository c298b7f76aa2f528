package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/hof-votes/internal/ballot"
	"github.com/pfrederiksen/hof-votes/internal/logger"
)

const (
	telegramAPIBaseURL = "https://api.telegram.org/bot"
	telegramTimeout    = 10 * time.Second

	// MaxTelegramLength is the Bot API limit for message text
	MaxTelegramLength = 4096
)

// TelegramNotifier sends ballot summaries to a Telegram chat through the Bot API
type TelegramNotifier struct {
	botToken   string
	chatID     string
	apiBaseURL string
	httpClient *http.Client
}

// NewTelegramNotifier creates a notifier from TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID
func NewTelegramNotifier() (*TelegramNotifier, error) {
	return newTelegramNotifier(os.Getenv("TELEGRAM_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID"), telegramAPIBaseURL)
}

func newTelegramNotifier(botToken, chatID, apiBaseURL string) (*TelegramNotifier, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	return &TelegramNotifier{
		botToken:   botToken,
		chatID:     chatID,
		apiBaseURL: apiBaseURL,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
	}, nil
}

// Notify sends one message summarizing the ballot
func (n *TelegramNotifier) Notify(b ballot.Ballot, top int) error {
	if err := n.sendMessage(truncate(summary(b, top), MaxTelegramLength)); err != nil {
		return fmt.Errorf("failed to send Telegram message for %d ballot: %w", b.Year, err)
	}
	return nil
}

func (n *TelegramNotifier) sendMessage(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message text is required")
	}

	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"disable_web_page_preview": true,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	url := fmt.Sprintf("%s%s/sendMessage", n.apiBaseURL, n.botToken)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	logger.Debug("Telegram message sent", logger.Fields{"chat_id": n.chatID, "length": len(text)})
	return nil
}
