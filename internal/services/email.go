package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
)

// EmailService handles email operations
type EmailService struct {
	// SMTP configuration
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	fromEmail    string

	// AWS SES configuration
	sesClient *ses.SES
	useSES    bool
}

// NewEmailService creates a new email service, preferring SES over SMTP
func NewEmailService() (*EmailService, error) {
	emailService := &EmailService{}

	awsRegion := os.Getenv("AWS_REGION")
	awsAccessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	awsSecretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	sesFromEmail := os.Getenv("SES_FROM_EMAIL")

	if awsRegion != "" && awsAccessKey != "" && awsSecretKey != "" && sesFromEmail != "" {
		sess, err := session.NewSession(&aws.Config{
			Region:      aws.String(awsRegion),
			Credentials: credentials.NewStaticCredentials(awsAccessKey, awsSecretKey, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}

		emailService.sesClient = ses.New(sess)
		emailService.fromEmail = sesFromEmail
		emailService.useSES = true
		return emailService, nil
	}

	// Fallback to SMTP configuration
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPassword := os.Getenv("SMTP_PASSWORD")
	fromEmail := os.Getenv("FROM_EMAIL")

	if smtpHost == "" || smtpPort == "" || smtpUser == "" || smtpPassword == "" || fromEmail == "" {
		return nil, fmt.Errorf("email service not configured. Set either AWS SES credentials (AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, SES_FROM_EMAIL) or SMTP credentials (SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD, FROM_EMAIL)")
	}

	emailService.smtpHost = smtpHost
	emailService.smtpPort = smtpPort
	emailService.smtpUser = smtpUser
	emailService.smtpPassword = smtpPassword
	emailService.fromEmail = fromEmail
	emailService.useSES = false

	return emailService, nil
}

// SendEmail sends an email using SES or SMTP
func (s *EmailService) SendEmail(to []string, subject, body string) error {
	if s.useSES {
		return s.sendEmailWithSES(to, subject, body)
	}
	return s.sendEmailWithSMTP(to, subject, body)
}

func (s *EmailService) sendEmailWithSES(to []string, subject, body string) error {
	if s.sesClient == nil {
		return fmt.Errorf("SES client not configured")
	}

	var toAddresses []*string
	for _, addr := range to {
		toAddresses = append(toAddresses, aws.String(addr))
	}

	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: toAddresses,
		},
		Message: &ses.Message{
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(body),
				},
			},
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
		},
		Source: aws.String(s.fromEmail),
	}

	_, err := s.sesClient.SendEmail(input)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}

	return nil
}

func (s *EmailService) sendEmailWithSMTP(to []string, subject, body string) error {
	if s.smtpHost == "" {
		return fmt.Errorf("SMTP service not configured")
	}

	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.fromEmail, to[0], subject, body)

	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)

	err := smtp.SendMail(s.smtpHost+":"+s.smtpPort, auth, s.fromEmail, to, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}

	return nil
}

// SendPasswordResetEmail sends a password reset email to the user
func (s *EmailService) SendPasswordResetEmail(email, userName, resetToken string) error {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, resetToken)

	subject := "Restablecimiento de contraseña - Fogón"
	body := s.renderPasswordResetTemplate(userName, resetURL)

	return s.SendEmail([]string{email}, subject, body)
}

func (s *EmailService) renderPasswordResetTemplate(userName, resetURL string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Restablecimiento de contraseña</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #E65100; color: white; text-align: center; padding: 20px; border-radius: 8px 8px 0 0; }
        .content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 8px 8px; }
        .button { display: inline-block; padding: 12px 24px; background-color: #E65100; color: white; text-decoration: none; border-radius: 4px; margin: 20px 0; }
        .footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Restablecimiento de contraseña</h1>
        </div>
        <div class="content">
            <p>Hola %s,</p>
            <p>Recibimos una solicitud para restablecer la contraseña de tu cuenta en Fogón.</p>
            <p>Para crear una nueva contraseña, haz clic en el botón de abajo:</p>
            <a href="%s" class="button">Restablecer contraseña</a>
            <p><strong>Este enlace expira en 1 hora.</strong></p>
            <p>Si no solicitaste este restablecimiento, puedes ignorar este correo. Tu contraseña actual seguirá siendo válida.</p>
            <p>Si el botón no funciona, copia y pega el siguiente enlace en tu navegador:</p>
            <p style="word-break: break-all; color: #666;">%s</p>
        </div>
        <div class="footer">
            <p>Este es un correo automático. Por favor, no respondas.</p>
        </div>
    </div>
</body>
</html>
`, userName, resetURL, resetURL)
}

// SendLowStockAlert sends a low stock alert to the tenant's contact email
func (s *EmailService) SendLowStockAlert(tenantName, tenantEmail string, items []map[string]interface{}) error {
	subject := fmt.Sprintf("Alerta de inventario bajo - %s", tenantName)
	body, err := s.renderLowStockTemplate(items)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}
	return s.SendEmail([]string{tenantEmail}, subject, body)
}

func (s *EmailService) renderLowStockTemplate(items []map[string]interface{}) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .header { background-color: #FF9800; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; }
        .product { background-color: #fff3cd; border: 1px solid #ffeaa7; padding: 10px; margin: 10px 0; border-radius: 5px; }
        .product-name { font-weight: bold; color: #e17055; }
        .stock-info { color: #666; }
        .footer { background-color: #f1f1f1; padding: 20px; text-align: center; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Alerta de inventario bajo</h1>
        <p>{{.Date}}</p>
    </div>

    <div class="content">
        <p>Los siguientes insumos están por debajo de su umbral mínimo:</p>

        {{range .Items}}
        <div class="product">
            <div class="product-name">{{.Name}}</div>
            <div class="stock-info">
                Existencia actual: {{.Quantity}} {{.Unit}}<br>
                Umbral mínimo: {{.Threshold}} {{.Unit}}
            </div>
        </div>
        {{end}}

        <p><strong>Recomendación:</strong> reabastece estos insumos lo antes posible.</p>
    </div>

    <div class="footer">
        <p>Esta es una alerta automática de tu sistema de inventario.</p>
    </div>
</body>
</html>
`

	t, err := template.New("low_stock").Parse(tmpl)
	if err != nil {
		return "", err
	}

	data := map[string]interface{}{
		"Date":  time.Now().Format("02/01/2006"),
		"Items": items,
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
