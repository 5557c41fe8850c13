package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func newTestSender(d dialer) *SMTPSender {
	return &SMTPSender{from: "no-reply@salesflow.local", signupURL: "http://app.local/sign-up", appName: "SalesFlow", dialer: d}
}

func TestSendInvitation_ArmaMensaje(t *testing.T) {
	d := &fakeDialer{}
	res, err := newTestSender(d).SendInvitation(context.Background(), "new@acme.com")
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"new@acme.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Invitación a SalesFlow"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "http://app.local/sign-up")

	assert.Equal(t, "smtp", res.Provider)
	assert.Equal(t, "sent", res.Status)
}

func TestSendInvitation_ErrorSMTP(t *testing.T) {
	d := &fakeDialer{err: errors.New("connection refused")}
	_, err := newTestSender(d).SendInvitation(context.Background(), "new@acme.com")
	assert.ErrorContains(t, err, "connection refused")
}

func TestSendInvitation_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &fakeDialer{}
	_, err := newTestSender(d).SendInvitation(ctx, "new@acme.com")
	assert.Error(t, err)
	assert.Empty(t, d.sent)
}
