package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/mvillagran/securedocs/internal/mail"
	pkglogger "github.com/mvillagran/securedocs/pkg/logger"
)

// AWSSESSender delivers mail.Messages through AWS SES.
type AWSSESSender struct {
	sesClient   *ses.Client
	fromAddress string
	logger      *slog.Logger
}

// NewAWSSESSender creates an SES-backed mail.Sender.
func NewAWSSESSender(region, fromAddress string, logger *slog.Logger) (*AWSSESSender, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESSender{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		logger:      logger,
	}, nil
}

// Send delivers a single message via SES.
func (s *AWSSESSender) Send(ctx context.Context, msg mail.Message) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(msg.Subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(msg.HTMLBody),
				},
				Text: &types.Content{
					Data: aws.String(msg.TextBody),
				},
			},
		},
	}

	result, err := s.sesClient.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email accepted by SES",
		slog.String("to", pkglogger.SanitizedEmail(msg.To)),
		slog.String("message_id", *result.MessageId))

	return nil
}

// NewPasswordMessage builds the credential-rotation notification. The
// plaintext secret exists only here and in the provider payload.
func NewPasswordMessage(to, name, secret string) mail.Message {
	subject := fmt.Sprintf("Hola %s 👋 Olvidaste tu contraseña en SECURE DOCS", name)

	htmlBody := fmt.Sprintf(`<h1>Crear nueva contraseña</h1>
<p>Tu nueva contraseña es: <strong>%s</strong></p>
<p><strong>Por favor, cámbiela después de iniciar sesión</strong></p>`, secret)

	textBody := fmt.Sprintf(`Crear nueva contraseña

Tu nueva contraseña es: %s

Por favor, cámbiela después de iniciar sesión.
`, secret)

	return mail.Message{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}
