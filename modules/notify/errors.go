package notify

import "errors"

var (
	// ErrDeliveryFailed indicates a notification could not be delivered:
	// the endpoint answered non-2xx or the request failed outright.
	ErrDeliveryFailed = errors.New("notification delivery failed")
	// ErrInvalidEndpoint indicates the dispatcher endpoint URL is unusable.
	ErrInvalidEndpoint = errors.New("invalid notification endpoint URL")
)

var (
	errUnknownType   = errors.New("unknown notification type")
	errMalformedData = errors.New("malformed notification data")
)
