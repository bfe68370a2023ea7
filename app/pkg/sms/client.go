package sms

import (
	"backend/identity-platform/app/internal/config"
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type DefaultSmsClient struct {
	httpClient *resty.Client
	config     config.SmsConfig
	logger     *zap.Logger
}

func NewSmsClient(httpClient *resty.Client, cfg config.SmsConfig, logger *zap.Logger) SmsClient {
	if cfg.UseMock {
		return &MockSmsClient{logger: logger}
	}
	return &DefaultSmsClient{
		httpClient: httpClient,
		config:     cfg,
		logger:     logger,
	}
}

func (c *DefaultSmsClient) Send(ctx context.Context, message Message) (SendResult, error) {
	if message.Sender == "" {
		message.Sender = c.config.Sender
	}

	url := fmt.Sprintf("%s/messages", c.config.BaseAPI)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.config.ApiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(url)

	if err != nil {
		c.logger.Error("failed to send sms",
			zap.String("recipient", message.Recipient),
			zap.Error(err))
		return SendResult{}, err
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		c.logger.Warn("Non-2xx response from sms gateway",
			zap.String("recipient", message.Recipient),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("response", string(resp.Body())),
		)
		return SendResult{}, fmt.Errorf("sms gateway returned status %d", resp.StatusCode())
	}

	var result SendResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		c.logger.Error("failed to unmarshal sms gateway response",
			zap.String("recipient", message.Recipient),
			zap.Error(err))
		return SendResult{}, err
	}

	return result, nil
}

// MockSmsClient logs the message instead of sending it. Used in local and
// test environments where no gateway is reachable.
type MockSmsClient struct {
	logger *zap.Logger
}

func (c *MockSmsClient) Send(_ context.Context, message Message) (SendResult, error) {
	c.logger.Info("mock sms send",
		zap.String("recipient", message.Recipient),
		zap.String("body", message.Body))
	return SendResult{MessageID: "mock", Status: "sent"}, nil
}
