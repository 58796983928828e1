package store

import (
	"errors"

	"github.com/boettcherbikes/wiki-cli/internal/api"
)

// FailureKind classifies why a backend interaction failed.
type FailureKind int

const (
	// FailureTransport covers connectivity problems and server-side errors.
	FailureTransport FailureKind = iota
	// FailureDecode covers responses that arrived but could not be parsed.
	FailureDecode
	// FailureAuth covers rejected or expired credentials.
	FailureAuth
)

func (k FailureKind) String() string {
	switch k {
	case FailureDecode:
		return "decode"
	case FailureAuth:
		return "auth"
	default:
		return "transport"
	}
}

// Notice is a single user-facing failure report. A store holds at most one
// at a time; newer failures replace older ones.
type Notice struct {
	Kind    FailureKind
	Message string
}

// Classify maps a client error to a notice. Auth rejections are detected
// from the HTTP status, decode failures from the error type, and everything
// else is treated as a transport problem.
func Classify(err error) *Notice {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsAuthRejected() {
			return &Notice{Kind: FailureAuth, Message: apiErr.Message}
		}
		return &Notice{Kind: FailureTransport, Message: apiErr.Message}
	}

	var decodeErr *api.DecodeError
	if errors.As(err, &decodeErr) {
		return &Notice{Kind: FailureDecode, Message: "unexpected response from server"}
	}

	return &Notice{Kind: FailureTransport}
}
