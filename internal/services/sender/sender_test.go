package services

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/account-service/internal/lib/smtp"
)

type TransportMock struct {
	mock.Mock
}

func (m *TransportMock) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *TransportMock) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type ClientMock struct {
	mock.Mock
	data bytes.Buffer
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func (m *ClientMock) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *ClientMock) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *ClientMock) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return nopWriteCloser{&m.data}, nil
}

func (m *ClientMock) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *ClientMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSenderService_Send(t *testing.T) {
	transport := new(TransportMock)
	client := new(ClientMock)

	transport.On("GetSMTPUser").Return("mailer@example.com")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", "mailer@example.com").Return(nil).Once()
	client.On("Rcpt", "a@b.com").Return(nil).Once()
	client.On("Data").Return(nil, nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()

	svc := NewSenderService(newNoopLogger(), transport)

	err := svc.Send("a@b.com", "Reset", "follow the link")
	require.NoError(t, err)

	msg := client.data.String()
	assert.Contains(t, msg, "To: a@b.com")
	assert.Contains(t, msg, "Subject: Reset")
	assert.Contains(t, msg, "follow the link")

	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestSenderService_Send_ConnectFailure(t *testing.T) {
	transport := new(TransportMock)
	transport.On("GetSMTPUser").Return("mailer@example.com")
	transport.On("Connect").Return(nil, errors.New("dial tcp: refused")).Once()

	svc := NewSenderService(newNoopLogger(), transport)

	err := svc.Send("a@b.com", "Reset", "body")
	assert.Error(t, err)
	transport.AssertExpectations(t)
}

func TestSenderService_Send_RcptFailure(t *testing.T) {
	transport := new(TransportMock)
	client := new(ClientMock)

	transport.On("GetSMTPUser").Return("mailer@example.com")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", "mailer@example.com").Return(nil).Once()
	client.On("Rcpt", "bad@b.com").Return(errors.New("mailbox unavailable")).Once()
	client.On("Close").Return(nil).Once()

	svc := NewSenderService(newNoopLogger(), transport)

	err := svc.Send("bad@b.com", "Reset", "body")
	assert.Error(t, err)
	client.AssertExpectations(t)
}
