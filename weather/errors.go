package weather

import (
	"errors"
	"net"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to provider errors.
const (
	CodeNetwork = "NETWORK_ERROR"
	CodeHTTP    = "HTTP_ERROR"
	CodeDecode  = "DECODE_ERROR"
)

// User facing messages returned by MapError.
const (
	MessageNetwork = "Network problems"
	MessageHTTP    = "Failed to load data"
	MessageUnknown = "Unknown error"
)

// MapError converts an error from the weather stack into a message for end users.
func MapError(err error) string {
	if err == nil {
		return ""
	}

	var ge *goerrors.Error
	if errors.As(err, &ge) {
		switch ge.TextCode {
		case CodeNetwork:
			return MessageNetwork
		case CodeHTTP:
			return MessageHTTP
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return MessageNetwork
	}

	return MessageUnknown
}

// IsNotFound reports whether err was caused by an unknown city.
func IsNotFound(err error) bool {
	var ge *goerrors.Error
	return errors.As(err, &ge) && ge.Category == goerrors.CategoryNotFound
}
