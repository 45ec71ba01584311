package mailer

import "errors"

var (
	ErrSendFailed     = errors.New("mailer: failed to send email")
	ErrInvalidConfig  = errors.New("mailer: invalid config")
	ErrInvalidMessage = errors.New("mailer: invalid message")
)
