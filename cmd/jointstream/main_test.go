// cmd/jointstream/main_test.go
package main

import (
	"bytes"
	"net"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_CallerIsCallSite(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "info")

	level.Info(logger).Log("msg", "hello")
	level.Info(log.With(logger, "component", "link")).Log("msg", "scoped")

	out := buf.String()
	assert.Contains(t, out, "caller=main_test.go:")
	assert.NotContains(t, out, "caller=level.go")
	assert.Contains(t, out, "component=link")
}

func TestNewLogger_Filter(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn")

	level.Info(logger).Log("msg", "dropped")
	level.Warn(logger).Log("msg", "kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestLanURLs(t *testing.T) {
	addrs := []net.Addr{
		&net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)},
		&net.IPNet{IP: net.ParseIP("192.168.0.10"), Mask: net.CIDRMask(24, 32)},
		&net.IPNet{IP: net.ParseIP("::1"), Mask: net.CIDRMask(128, 128)},
		&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
		&net.IPNet{IP: net.ParseIP("2001:db8::5"), Mask: net.CIDRMask(64, 128)},
		&net.IPAddr{IP: net.ParseIP("10.0.0.1")},
	}

	assert.Equal(t, []string{
		"http://192.168.0.10:3000",
		"http://[2001:db8::5]:3000",
	}, lanURLs(addrs, 3000))

	assert.Empty(t, lanURLs(nil, 3000))
}
