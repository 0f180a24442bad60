package notify

import (
	"context"
	"errors"
	"fmt"

	"snowday/internal/domain/entity"
	"snowday/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the slice of the SES client the notifier needs.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESNotifier struct {
	api  SESAPI
	from string
	log  logger.Logger
}

func NewSESClient(ctx context.Context, region string) (*ses.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return ses.NewFromConfig(cfg), nil
}

func NewSESNotifier(api SESAPI, from string, log logger.Logger) *SESNotifier {
	return &SESNotifier{
		api:  api,
		from: from,
		log:  log.With(map[string]interface{}{"component": "ses_notifier"}),
	}
}

// Notify sends one email per recipient and returns how many were accepted.
// A failed recipient does not stop the others.
func (n *SESNotifier) Notify(ctx context.Context, recipients []entity.Recipient, subject, body string) (int, error) {
	var (
		sent int
		errs []error
	)
	for _, r := range recipients {
		out, err := n.api.SendEmail(ctx, n.buildInput(r, subject, body))
		if err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", r.Email, err))
			continue
		}
		sent++
		n.log.Debug("email sent", map[string]interface{}{"to": r.Email, "message_id": aws.ToString(out.MessageId)})
	}
	return sent, errors.Join(errs...)
}

func (n *SESNotifier) buildInput(r entity.Recipient, subject, body string) *ses.SendEmailInput {
	greeting := "Hi,"
	if r.Name != "" {
		greeting = fmt.Sprintf("Hi %s,", r.Name)
	}
	return &ses.SendEmailInput{
		Source: aws.String(n.from),
		Destination: &types.Destination{
			ToAddresses: []string{r.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(greeting + "\n\n" + body), Charset: aws.String("UTF-8")},
			},
		},
	}
}
