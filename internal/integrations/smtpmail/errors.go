package smtpmail

import "errors"

var (
	// ErrSend возвращается, если SMTP-сервер не принял письмо
	ErrSend = errors.New("smtpmail: failed to send message")
)
