// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Sentinel errors for common rejection cases. These enable callers to detect
// specific conditions via errors.Is/As while keeping messages consistent.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Error is an application failure: the server responded, but with a non-2xx
// status and (usually) a JSON body carrying a human-readable message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return e.Message
}

// Unwrap maps well-known statuses onto sentinels so errors.Is works.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// TransportError is a network-level failure: the request never completed and
// no response was received. It never implies anything about session validity.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err (or anything it wraps) is a transport
// failure rather than an application rejection.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// newError builds an Error from a response status and raw body. FastAPI puts
// the message under "detail"; older handlers used "message". Either works.
func newError(statusCode int, body []byte) *Error {
	msg := gjson.GetBytes(body, "detail").String()
	if msg == "" {
		msg = gjson.GetBytes(body, "message").String()
	}
	return &Error{StatusCode: statusCode, Message: msg}
}
