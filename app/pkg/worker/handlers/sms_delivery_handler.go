package handlers

import (
	"backend/identity-platform/app/database/constant/delivery"
	"backend/identity-platform/app/database/entity"
	"backend/identity-platform/app/pkg/sms"
	"backend/identity-platform/app/pkg/verification"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type SmsDeliveryHandler struct {
	verifier  verification.Verifier
	smsClient sms.SmsClient
	logger    *zap.Logger
}

func NewSmsDeliveryHandler(verifier verification.Verifier, smsClient sms.SmsClient, logger *zap.Logger) *SmsDeliveryHandler {
	return &SmsDeliveryHandler{
		verifier:  verifier,
		smsClient: smsClient,
		logger:    logger.With(zap.String("handler", "sms_delivery")),
	}
}

func (h *SmsDeliveryHandler) Handle(ctx context.Context, job *entity.DeliveryJob) error {
	code, err := h.verifier.PeekCode(ctx, job.CodeKey)
	if err != nil {
		if errors.Is(err, verification.ErrCodeExpired) {
			// The code expired in redis before the job ran. Nothing to send.
			h.logger.Warn("Verification code expired before delivery",
				zap.String("job_id", job.ID.String()))
			return nil
		}
		return err
	}

	result, err := h.smsClient.Send(ctx, sms.Message{
		Recipient: job.Recipient,
		Body:      fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code),
	})
	if err != nil {
		return err
	}

	h.logger.Info("Verification SMS sent",
		zap.String("job_id", job.ID.String()),
		zap.String("message_id", result.MessageID))

	return nil
}

func (h *SmsDeliveryHandler) GetChannel() delivery.Channel {
	return delivery.Sms
}
