package sms_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/identity-platform/app/internal/config"
	"backend/identity-platform/app/pkg/sms"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultSmsClient_Send(t *testing.T) {
	var received sms.Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sms.SendResult{MessageID: "msg-1", Status: "sent"})
	}))
	defer server.Close()

	client := sms.NewSmsClient(resty.New(), config.SmsConfig{
		BaseAPI: server.URL,
		ApiKey:  "test-key",
		Sender:  "identity",
	}, zap.NewNop())

	result, err := client.Send(context.Background(), sms.Message{
		Recipient: "13800138000",
		Body:      "your code is 123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", result.MessageID)
	assert.Equal(t, "sent", result.Status)
	// Sender defaults from config when unset on the message
	assert.Equal(t, "identity", received.Sender)
	assert.Equal(t, "13800138000", received.Recipient)
}

func TestDefaultSmsClient_Send_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := sms.NewSmsClient(resty.New(), config.SmsConfig{
		BaseAPI: server.URL,
		ApiKey:  "test-key",
	}, zap.NewNop())

	_, err := client.Send(context.Background(), sms.Message{Recipient: "13800138000"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestMockSmsClient_Send(t *testing.T) {
	client := sms.NewSmsClient(nil, config.SmsConfig{UseMock: true}, zap.NewNop())

	result, err := client.Send(context.Background(), sms.Message{Recipient: "13800138000"})
	require.NoError(t, err)
	assert.Equal(t, "sent", result.Status)
}
