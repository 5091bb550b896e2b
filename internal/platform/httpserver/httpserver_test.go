package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"passguard/internal/platform/config"
)

func TestNew(t *testing.T) {
	h := http.NewServeMux()
	srv := New(config.Server{Addr: ":0", WriteTimeout: 7 * time.Second}, h)

	assert.Equal(t, ":0", srv.Addr)
	assert.Same(t, h, srv.Handler)
	assert.Equal(t, 7*time.Second, srv.WriteTimeout)
	assert.Equal(t, readHeaderTimeout, srv.ReadHeaderTimeout)
	assert.Equal(t, readTimeout, srv.ReadTimeout)
	assert.Equal(t, idleTimeout, srv.IdleTimeout)
}
