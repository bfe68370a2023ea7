package mail

import (
	"backend/identity-platform/app/internal/config"
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type DefaultMailClient struct {
	httpClient *resty.Client
	config     config.MailConfig
	logger     *zap.Logger
}

func NewMailClient(httpClient *resty.Client, cfg config.MailConfig, logger *zap.Logger) MailClient {
	if cfg.UseMock {
		return &MockMailClient{logger: logger}
	}
	return &DefaultMailClient{
		httpClient: httpClient,
		config:     cfg,
		logger:     logger,
	}
}

func (c *DefaultMailClient) Send(ctx context.Context, message Message) (SendResult, error) {
	if message.Sender == "" {
		message.Sender = c.config.Sender
	}

	url := fmt.Sprintf("%s/send", c.config.BaseAPI)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.config.ApiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(url)

	if err != nil {
		c.logger.Error("failed to send email",
			zap.String("recipient", message.Recipient),
			zap.Error(err))
		return SendResult{}, err
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		c.logger.Warn("Non-2xx response from mail provider",
			zap.String("recipient", message.Recipient),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("response", string(resp.Body())),
		)
		return SendResult{}, fmt.Errorf("mail provider returned status %d", resp.StatusCode())
	}

	var result SendResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		c.logger.Error("failed to unmarshal mail provider response",
			zap.String("recipient", message.Recipient),
			zap.Error(err))
		return SendResult{}, err
	}

	return result, nil
}

// MockMailClient logs the message instead of sending it. Used in local and
// test environments where no provider is reachable.
type MockMailClient struct {
	logger *zap.Logger
}

func (c *MockMailClient) Send(_ context.Context, message Message) (SendResult, error) {
	c.logger.Info("mock email send",
		zap.String("recipient", message.Recipient),
		zap.String("subject", message.Subject))
	return SendResult{MessageID: "mock", Status: "sent"}, nil
}
