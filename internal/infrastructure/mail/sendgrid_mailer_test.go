package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-admin.backend/internal/config"
	"crm-admin.backend/internal/domain/entities"
)

type stubSendClient struct {
	resp *rest.Response
	err  error
	got  *sgmail.SGMailV3
}

func (s *stubSendClient) SendWithContext(_ context.Context, email *sgmail.SGMailV3) (*rest.Response, error) {
	s.got = email
	return s.resp, s.err
}

func newTestMessage() *entities.MailMessage {
	return &entities.MailMessage{
		ToName:    "Sam",
		ToEmail:   "sam@x.com",
		Subject:   "Welcome",
		PlainText: "hello",
		HTML:      "<p>hello</p>",
	}
}

func TestSendGridMailer_Send(t *testing.T) {
	stub := &stubSendClient{resp: &rest.Response{StatusCode: 202}}
	m := &SendGridMailer{client: stub, from: sgmail.NewEmail("CRM", "no-reply@x.com")}

	require.NoError(t, m.Send(context.Background(), newTestMessage()))
	require.NotNil(t, stub.got)
	assert.Equal(t, "Welcome", stub.got.Subject)
	assert.Equal(t, "no-reply@x.com", stub.got.From.Address)
	require.Len(t, stub.got.Personalizations, 1)
	assert.Equal(t, "sam@x.com", stub.got.Personalizations[0].To[0].Address)
}

func TestSendGridMailer_Failures(t *testing.T) {
	from := sgmail.NewEmail("CRM", "no-reply@x.com")

	m := &SendGridMailer{client: &stubSendClient{err: errors.New("network")}, from: from}
	assert.ErrorContains(t, m.Send(context.Background(), newTestMessage()), "network")

	m = &SendGridMailer{client: &stubSendClient{resp: &rest.Response{StatusCode: 401}}, from: from}
	assert.ErrorContains(t, m.Send(context.Background(), newTestMessage()), "status 401")
}

func TestNewMailer(t *testing.T) {
	_, isLog := NewMailer(config.MailConfig{}).(LogMailer)
	assert.True(t, isLog)

	_, isSendGrid := NewMailer(config.MailConfig{SendGridAPIKey: "SG.x", FromEmail: "a@x.com"}).(*SendGridMailer)
	assert.True(t, isSendGrid)

	assert.NoError(t, LogMailer{}.Send(context.Background(), newTestMessage()))
}
