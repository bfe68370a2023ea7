package handlers

import (
	"backend/identity-platform/app/database/constant/delivery"
	"backend/identity-platform/app/database/entity"
	"backend/identity-platform/app/pkg/mail"
	"backend/identity-platform/app/pkg/verification"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type EmailDeliveryHandler struct {
	verifier   verification.Verifier
	mailClient mail.MailClient
	logger     *zap.Logger
}

func NewEmailDeliveryHandler(verifier verification.Verifier, mailClient mail.MailClient, logger *zap.Logger) *EmailDeliveryHandler {
	return &EmailDeliveryHandler{
		verifier:   verifier,
		mailClient: mailClient,
		logger:     logger.With(zap.String("handler", "email_delivery")),
	}
}

func (h *EmailDeliveryHandler) Handle(ctx context.Context, job *entity.DeliveryJob) error {
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

	result, err := h.mailClient.Send(ctx, mail.Message{
		Recipient: job.Recipient,
		Subject:   "Your verification code",
		Body:      fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code),
	})
	if err != nil {
		return err
	}

	h.logger.Info("Verification email sent",
		zap.String("job_id", job.ID.String()),
		zap.String("message_id", result.MessageID))

	return nil
}

func (h *EmailDeliveryHandler) GetChannel() delivery.Channel {
	return delivery.Email
}
