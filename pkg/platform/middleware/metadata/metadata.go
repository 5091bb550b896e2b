package metadata

import (
	"context"
	"net"
	"net/http"

	"github.com/mssola/useragent"
)

type contextKeyClient struct{}

// Client describes the caller of a request. It never carries request bodies.
type Client struct {
	IP      string
	Browser string
	Bot     bool
	Mobile  bool
}

// ClientMetadata extracts the client address and a parsed User-Agent and
// adds them to the context. Apply it after any real-IP rewriting.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithClient(r.Context(), ClientFromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientFromContext retrieves the client set by ClientMetadata.
func ClientFromContext(ctx context.Context) Client {
	if c, ok := ctx.Value(contextKeyClient{}).(Client); ok {
		return c
	}
	return Client{}
}

// WithClient injects client metadata into a context.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, contextKeyClient{}, c)
}

// ClientFromRequest parses the caller from r.
func ClientFromRequest(r *http.Request) Client {
	c := Client{IP: remoteIP(r.RemoteAddr)}

	raw := r.Header.Get("User-Agent")
	if raw == "" {
		return c
	}
	ua := useragent.New(raw)
	c.Browser, _ = ua.Browser()
	c.Bot = ua.Bot()
	c.Mobile = ua.Mobile()
	return c
}

func remoteIP(addr string) string {
	if addr == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
