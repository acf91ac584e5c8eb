package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/observability"
	"github.com/credimed/app-leads/internal/utils/httpclient"
	"go.uber.org/zap"
)

type mailRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// RenderTemplate substitutes {{placeholder}} markers in a template body
func RenderTemplate(body string, vars map[string]string) string {
	for key, value := range vars {
		body = strings.ReplaceAll(body, "{{"+key+"}}", value)
	}
	return body
}

// SendEmail delivers a rendered message through the configured mail relay
func SendEmail(ctx context.Context, to, subject, html string) error {
	logger := logging.Logger.With(
		zap.String("to", observability.MaskEmail(to)),
		zap.String("operation", "send_email"),
	)

	if !config.AppConfig.MailEnabled {
		logger.Info("mail relay is disabled, skipping send")
		return nil
	}

	msgReq := mailRequest{
		To:      to,
		From:    config.AppConfig.MailFrom,
		Subject: subject,
		HTML:    html,
	}

	jsonBody, err := json.Marshal(msgReq)
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	url := fmt.Sprintf("%s/send", config.AppConfig.MailBaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+config.AppConfig.MailAPIKey)
	req.Header.Set("Content-Type", "application/json")

	client := httpclient.GetGlobalPool().Get()
	defer httpclient.GetGlobalPool().Put(client)

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("failed to send mail request", zap.Error(err))
		return fmt.Errorf("failed to send mail request: %w", err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		logger.Warn("failed to drain mail response body", zap.Error(err))
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mail request failed with status: %d", resp.StatusCode)
	}

	logger.Info("email sent")
	return nil
}
