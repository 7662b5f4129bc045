package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/dsp-hub/workforce-manager/backend/internal/config"
	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
	"github.com/dsp-hub/workforce-manager/backend/internal/expo"
)

// queueMessage mirrors domain.QueueMessage but keeps the payload raw so it
// can be decoded per type.
type queueMessage struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

func main() {
	/**********************************************
	 * Logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * Configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * SMTP client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("unable to create the mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// Make sure the mail server is actually reachable before consuming
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("unable to connect to the mail server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Expo push client
	 **********************************************/
	pushClient := expo.NewPushClient(cfg.Expo.PushURL, time.Duration(cfg.Expo.RequestTimeout)*time.Second)

	/**********************************************
	 * RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("unable to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("unable to open a channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"notifications_queue",
		true,  // durable
		false, // do not auto-delete when the api is the only peer
		false, // not exclusive
		false, // wait for the broker to confirm the declaration
		nil,
	)
	if err != nil {
		logger.Error("unable to declare the queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // let the broker pick a consumer tag
		false, // manual acks so a failed delivery can be requeued
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("unable to consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("message received", slog.String("message", string(msg.Body)))

				queueMsg := queueMessage{}
				if err := json.Unmarshal(msg.Body, &queueMsg); err != nil {
					logger.Error("unable to decode the message", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				switch queueMsg.Type {
				case "create_user", "reset_password", "change_email", "publish_report":
					if err := sendMail(cfg, client, queueMsg); err != nil {
						logger.Error("unable to send the email", slog.String("error", err.Error()))
						_ = msg.Nack(false, true) // requeue so the mail is not lost
						continue
					}
				case "shift_assigned", "decision_published":
					if err := sendPush(ctx, pushClient, queueMsg); err != nil {
						// Expo tokens go stale when the app is reinstalled;
						// requeueing would loop forever, so drop the message.
						logger.Error("unable to send the push notification", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
				default:
					logger.Error("unsupported message type", slog.String("type", queueMsg.Type))
					_ = msg.Nack(false, false)
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for messages... (press CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down notify worker...")
	cancel()
	wg.Wait()
	slog.Info("notify worker stopped cleanly")
}

func sendMail(cfg *config.Config, client *mail.Client, queueMsg queueMessage) error {
	m := mail.NewMsg()
	if err := m.From(cfg.Email.SMTP.Username); err != nil {
		return fmt.Errorf("unable to set the sender: %w", err)
	}
	if err := m.To(queueMsg.To); err != nil {
		return fmt.Errorf("unable to set the recipient: %w", err)
	}

	var (
		templateFile string
		subject      string
		data         any
	)
	switch queueMsg.Type {
	case "create_user":
		templateFile = "./templates/new_account_email.html"
		subject = "DSP Workforce Manager - Your account"
		data = &domain.CreateUserMailData{}
	case "reset_password":
		templateFile = "./templates/reset_password_otp_email.html"
		subject = "DSP Workforce Manager - Reset your password"
		data = &domain.ResetPasswordMailData{}
	case "change_email":
		templateFile = "./templates/change_email_email.html"
		subject = "DSP Workforce Manager - Confirm your new email"
		data = &domain.ChangeEmailMailData{}
	case "publish_report":
		templateFile = "./templates/publish_report_email.html"
		subject = "DSP Workforce Manager - Availability decisions published"
		data = &domain.PublishReportMailData{}
	}

	if err := json.Unmarshal(queueMsg.Data, data); err != nil {
		return fmt.Errorf("unable to decode the mail data: %w", err)
	}
	tmpl, err := template.ParseFiles(templateFile)
	if err != nil {
		return fmt.Errorf("unable to parse the mail template: %w", err)
	}
	if err := m.SetBodyHTMLTemplate(tmpl, data); err != nil {
		return fmt.Errorf("unable to set the mail body: %w", err)
	}
	m.Subject(subject)

	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("unable to send the mail: %w", err)
	}
	return nil
}

func sendPush(ctx context.Context, client *expo.PushClient, queueMsg queueMessage) error {
	pushMsg := expo.PushMessage{To: queueMsg.To}

	switch queueMsg.Type {
	case "shift_assigned":
		data := domain.ShiftAssignedPushData{}
		if err := json.Unmarshal(queueMsg.Data, &data); err != nil {
			return fmt.Errorf("unable to decode the push data: %w", err)
		}
		pushMsg.Title = "New availability request"
		pushMsg.Body = fmt.Sprintf("%s, you have been offered the %s shift on %s.", data.EmployeeName, data.ShiftName, data.Day)
		pushMsg.Data = map[string]any{"day": data.Day.String(), "dsp_code": data.DSPCode}
	case "decision_published":
		data := domain.DecisionPushData{}
		if err := json.Unmarshal(queueMsg.Data, &data); err != nil {
			return fmt.Errorf("unable to decode the push data: %w", err)
		}
		switch data.Decision {
		case domain.DecisionAccepted:
			pushMsg.Title = "Shift confirmed"
			pushMsg.Body = fmt.Sprintf("%s, your %s shift on %s has been accepted.", data.EmployeeName, data.ShiftName, data.Day)
		default:
			pushMsg.Title = "Shift declined"
			pushMsg.Body = fmt.Sprintf("%s, your %s shift on %s has been rejected.", data.EmployeeName, data.ShiftName, data.Day)
		}
		pushMsg.Data = map[string]any{"day": data.Day.String(), "dsp_code": data.DSPCode}
	}

	return client.Send(ctx, pushMsg)
}
