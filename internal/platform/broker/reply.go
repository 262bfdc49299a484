package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
)

// Error codes carried on command replies. The gateway maps them onto its
// own HTTP surface.
const (
	CodeValidation          = "VALIDATION"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeDuplicateEmail      = "DUPLICATE_EMAIL"
	CodeUpstreamTimeout     = "UPSTREAM_TIMEOUT"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeConfiguration       = "CONFIGURATION"
	CodeInternal            = "INTERNAL"
)

// ErrorReply is the payload of a failed command.
type ErrorReply struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Respond replies to a request message with a JSON payload.
func Respond(msg *nats.Msg, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return msg.Respond(data)
}

// RespondError replies to a request message with a structured failure.
func RespondError(msg *nats.Msg, code string, err error) error {
	return Respond(msg, ErrorReply{Code: code, Error: err.Error()})
}
