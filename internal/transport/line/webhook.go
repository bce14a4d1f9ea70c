// Package line is the webhook glue to the LINE messaging transport:
// signature verification, event parsing, and the reply client.
package line

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"ragbot/internal/helper"
	"ragbot/internal/models"
)

// Responder produces the reply text for one inbound message.
type Responder interface {
	HandleMessage(ctx context.Context, msg models.Inbound) string
}

// Handler verifies and dispatches LINE webhook callbacks.
type Handler struct {
	channelSecret string
	responder     Responder
	client        *Client
}

func NewHandler(channelSecret string, responder Responder, client *Client) *Handler {
	return &Handler{channelSecret: channelSecret, responder: responder, client: client}
}

type webhookRequest struct {
	Events []event `json:"events"`
}

type event struct {
	Type       string `json:"type"`
	ReplyToken string `json:"replyToken"`
	Source     struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID, _ := helper.GenerateUUID()
	logger := log.With().Str("request_id", reqID).Logger()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read webhook body")
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if !ValidateSignature(h.channelSecret, body, r.Header.Get("X-Line-Signature")) {
		logger.Warn().Msg("Webhook signature verification failed")
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	var req webhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Error().Err(err).Msg("Failed to parse webhook body")
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// events are independent; one failure must not abort the batch
	for _, ev := range req.Events {
		if ev.Type != "message" || ev.Message.Type != "text" {
			continue
		}
		reply := h.responder.HandleMessage(r.Context(), models.Inbound{
			UserID:    ev.Source.UserID,
			MessageID: ev.Message.ID,
			Text:      ev.Message.Text,
		})
		if err := h.client.Reply(r.Context(), ev.ReplyToken, reply); err != nil {
			logger.Error().Err(err).Str("user", ev.Source.UserID).Msg("Failed to send reply")
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// ValidateSignature checks the X-Line-Signature header: base64 of the
// HMAC-SHA256 over the raw request body, keyed with the channel secret.
func ValidateSignature(channelSecret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
