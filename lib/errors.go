package lib

import "errors"

var (
	ErrConnection      = errors.New("cannot connect to server")
	ErrAuthentication  = errors.New("authentication failure")
	ErrMailbox         = errors.New("cannot select mailbox")
	ErrNotSelected     = errors.New("mailbox not selected")
	ErrFetch           = errors.New("cannot fetch message")
	ErrMessageNotFound = errors.New("message not found")
	ErrInvalidDays     = errors.New("number of days must be a non-negative integer")
)
