package responses

import pkgerrors "github.com/angelmondragon/museum-cart/pkg/errors"

// Envelope wraps every successful answer of the cart API.
type Envelope struct {
	Data any `json:"data"`
}

// ErrorEnvelope wraps a failed answer.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody is the public part of a typed error. Details holds per-field
// messages and is only filled for codes whose metadata allows it.
type ErrorBody struct {
	Code    pkgerrors.Code `json:"code"`
	Message string         `json:"message"`
	Details any            `json:"details,omitempty"`
}
