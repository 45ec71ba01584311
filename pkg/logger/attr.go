package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Event records a notification event kind under the key "event".
func Event(kind string) slog.Attr {
	if kind == "" {
		return slog.Attr{}
	}
	return slog.String("event", kind)
}

// PaymentMethod records a payment method under the key "payment_method".
func PaymentMethod(method string) slog.Attr {
	if method == "" {
		return slog.Attr{}
	}
	return slog.String("payment_method", method)
}

// Tier records a funding tier name under the key "tier".
func Tier(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("tier", name)
}
