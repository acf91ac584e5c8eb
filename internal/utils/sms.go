package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"github.com/goccy/go-json"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/observability"
	"github.com/credimed/app-leads/internal/utils/httpclient"
	"go.uber.org/zap"
)

type smsRequest struct {
	To       string `json:"to"`
	From     string `json:"from"`
	Body     string `json:"body"`
	Channel  string `json:"channel"`
	ClientID string `json:"client_id,omitempty"`
}

type smsResponse struct {
	MessageID  string `json:"message_id"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

var e164Regex = regexp.MustCompile(`^\+[0-9]{10,15}$`)

// SendSMS delivers a text message through the configured SMS gateway. The
// phone must already be in E.164 form.
func SendSMS(ctx context.Context, phone string, body string) error {
	logger := logging.Logger.With(
		zap.String("phone", observability.MaskPhone(phone)),
		zap.String("operation", "send_sms"),
	)

	if !config.AppConfig.SMSEnabled {
		logger.Info("SMS gateway is disabled, skipping send")
		return nil
	}

	if !e164Regex.MatchString(phone) {
		return fmt.Errorf("invalid phone number format: %s", observability.MaskPhone(phone))
	}

	msgReq := smsRequest{
		To:      phone,
		From:    config.AppConfig.SMSSenderID,
		Body:    body,
		Channel: "sms",
	}

	jsonBody, err := json.Marshal(msgReq)
	if err != nil {
		return fmt.Errorf("failed to marshal SMS request: %w", err)
	}

	url := fmt.Sprintf("%s/messages", config.AppConfig.SMSBaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+config.AppConfig.SMSAPIKey)
	req.Header.Set("Content-Type", "application/json")

	client := httpclient.GetGlobalPool().Get()
	defer httpclient.GetGlobalPool().Put(client)

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("failed to send SMS request", zap.Error(err))
		return fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read SMS response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		var smsResp smsResponse
		if err := json.Unmarshal(respBody, &smsResp); err == nil && smsResp.Message != "" {
			return fmt.Errorf("SMS gateway rejected message: %s", smsResp.Message)
		}
		return fmt.Errorf("SMS request failed with status: %d", resp.StatusCode)
	}

	logger.Info("SMS sent")
	return nil
}
