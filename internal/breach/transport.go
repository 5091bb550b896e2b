package breach

import "context"

// Transport fetches the candidate suffix list for a hash prefix from a
// k-anonymity range service. Implementations receive only the 5-character
// prefix and must return the raw response body of a successful lookup.
// Failures should be reported as *ProviderError so they can be categorized.
type Transport interface {
	FetchRange(ctx context.Context, prefix string) ([]byte, error)
}

// TransportFunc adapts a plain function to Transport.
type TransportFunc func(ctx context.Context, prefix string) ([]byte, error)

// FetchRange calls f(ctx, prefix).
func (f TransportFunc) FetchRange(ctx context.Context, prefix string) ([]byte, error) {
	return f(ctx, prefix)
}
