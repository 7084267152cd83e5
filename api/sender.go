package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Sender delivers one text message to one Telegram chat.
type Sender struct {
	apiURL    string
	token     string
	chatID    string
	parseMode string
	client    *http.Client
	log       *zap.Logger
}

// NewSender builds a Sender. An empty parseMode sends plain text.
func NewSender(apiURL, token, chatID, parseMode string, timeout time.Duration, log *zap.Logger) *Sender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Sender{
		apiURL:    apiURL,
		token:     token,
		chatID:    chatID,
		parseMode: parseMode,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// APIResponse is the Bot API envelope; only the fields we report on are decoded.
type APIResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
	Result      struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
}

// Send makes exactly one sendMessage call. It does not retry.
func (s *Sender) Send(ctx context.Context, text string) error {
	data, err := json.Marshal(sendMessageRequest{
		ChatID:                s.chatID,
		Text:                  text,
		ParseMode:             s.parseMode,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := s.apiURL + "/bot" + s.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", redact(err, s.token))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", redact(err, s.token))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var apiResp APIResponse
	decodeErr := json.Unmarshal(body, &apiResp)

	if resp.StatusCode >= 400 {
		if decodeErr == nil && apiResp.Description != "" {
			return fmt.Errorf("API error (%d): %s", resp.StatusCode, apiResp.Description)
		}
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if !apiResp.OK {
		return fmt.Errorf("API error: %s", apiResp.Description)
	}

	s.log.Debug("telegram accepted message", zap.Int64("message_id", apiResp.Result.MessageID))
	return nil
}

// Notify sends text and reports whether it was delivered. Failures are logged
// here and never returned, so the caller can treat delivery as best effort.
func (s *Sender) Notify(ctx context.Context, text string) bool {
	if err := s.Send(ctx, text); err != nil {
		s.log.Error("failed to send message to telegram", zap.String("chat_id", s.chatID), zap.Error(err))
		return false
	}
	s.log.Info("message sent to telegram successfully", zap.String("chat_id", s.chatID))
	return true
}

// redactedError hides the bot token, which net/http embeds in *url.Error.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }

func redact(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), token, "<redacted>"), err: err}
}
