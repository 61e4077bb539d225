// cmd/jointstream/main.go
package main

import (
	"context"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-redis/redis/v8"

	"github.com/tamzrod/jointstream/internal/config"
	"github.com/tamzrod/jointstream/internal/link"
	lmodbus "github.com/tamzrod/jointstream/internal/link/modbus"
	"github.com/tamzrod/jointstream/internal/publish"
	"github.com/tamzrod/jointstream/internal/sampler"
	"github.com/tamzrod/jointstream/internal/server"
	"github.com/tamzrod/jointstream/internal/status"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	logger := newLogger(os.Stderr, "info")

	// --------------------
	// Load + validate config
	// --------------------

	var cfgPath string
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		level.Error(logger).Log("msg", "config load failed", "path", cfgPath, "err", err)
		return 1
	}
	if err := config.Validate(cfg); err != nil {
		level.Error(logger).Log("msg", "config validation failed", "err", err)
		return 1
	}
	config.Normalize(cfg)

	logger = newLogger(os.Stderr, cfg.Log.Level)
	level.Info(logger).Log(
		"msg", "configuration loaded",
		"plc", net.JoinHostPort(cfg.Device.Host, strconv.Itoa(cfg.Device.Port)),
		"unit_id", cfg.Device.UnitID,
		"http_port", cfg.Server.Port,
		"redis", cfg.Redis.Addr != "",
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Device link + status feed
	// --------------------

	hub := status.NewHub(status.FromState(link.State{}, cfg.Device.MaxAttempts))

	mgr, err := lmodbus.Build(cfg.Device, func(tr link.Transition) {
		hub.Publish(status.FromTransition(tr, cfg.Device.MaxAttempts))
	}, logger)
	if err != nil {
		level.Error(logger).Log("msg", "link build failed", "err", err)
		return 1
	}

	// A failed first connect is not fatal: streaming cycles keep dialing up to the cap.
	if err := mgr.Connect(ctx); err != nil {
		level.Warn(logger).Log("msg", "initial PLC connect failed", "kind", link.Kind(err), "err", err)
	}

	// --------------------
	// Sampling + fan-out
	// --------------------

	smp, err := sampler.New(mgr, nil)
	if err != nil {
		level.Error(logger).Log("msg", "sampler build failed", "err", err)
		return 1
	}

	reg, err := sampler.NewRegistry(smp, sampler.RegistryConfig{
		MinInterval: time.Duration(cfg.Sampling.MinIntervalMs) * time.Millisecond,
		Logger:      logger,
	})
	if err != nil {
		level.Error(logger).Log("msg", "registry build failed", "err", err)
		return 1
	}

	// ---- optional redis sink ----
	var (
		sink        *publish.Sink
		redisClient redis.UniversalClient
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = publish.NewRedisClient(cfg.Redis.Addr)
		if err != nil {
			level.Error(logger).Log("msg", "redis client failed", "err", err)
			return 1
		}
		sink, err = publish.NewSink(redisClient, publish.Config{
			Channel:  cfg.Redis.Channel,
			Interval: time.Duration(cfg.Redis.IntervalMs) * time.Millisecond,
			Logger:   logger,
		})
		if err != nil {
			level.Error(logger).Log("msg", "redis sink failed", "err", err)
			return 1
		}
		if err := sink.Start(reg); err != nil {
			level.Error(logger).Log("msg", "redis sink attach failed", "err", err)
			return 1
		}
	}

	// --------------------
	// HTTP
	// --------------------

	srv, err := server.New(server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		StaticDir:       cfg.Server.StaticDir,
		DefaultInterval: time.Duration(cfg.Sampling.IntervalMs) * time.Millisecond,
		Logger:          logger,
	}, server.Deps{
		Link:          mgr,
		Sampler:       smp,
		Subscriptions: reg,
		Status:        hub,
	})
	if err != nil {
		level.Error(logger).Log("msg", "server build failed", "err", err)
		return 1
	}

	if addrs, err := net.InterfaceAddrs(); err == nil {
		if urls := lanURLs(addrs, cfg.Server.Port); len(urls) > 0 {
			level.Info(logger).Log("msg", "reachable on LAN", "urls", strings.Join(urls, ","))
		}
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Start() }()

	code := 0
	select {
	case <-ctx.Done():
		level.Info(logger).Log("msg", "shutting down")
	case err := <-serveErr:
		if err != nil {
			level.Error(logger).Log("msg", "HTTP server failed", "err", err)
			code = 1
		}
	}

	// --------------------
	// Ordered shutdown: subscribers, HTTP, device session
	// --------------------

	if sink != nil {
		if err := sink.Stop(); err != nil {
			level.Warn(logger).Log("msg", "redis sink detach", "err", err)
		}
		_ = redisClient.Close()
	}
	reg.Close()
	hub.Publish(status.Snapshot{Connected: false, Message: status.MessageClosed})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "HTTP shutdown", "err", err)
	}

	if err := mgr.Close(); err != nil {
		level.Warn(logger).Log("msg", "device session close", "err", err)
	}
	hub.Close()

	level.Info(logger).Log("msg", "stopped")
	return code
}

// newLogger builds the process logger. The level filter sits below the
// caller valuer so caller reports the logging call site.
func newLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, levelOption(lvl))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)
	return logger
}

// lanURLs lists http URLs for every non-loopback unicast interface address.
func lanURLs(addrs []net.Addr, port int) []string {
	var urls []string
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipnet.IP
		if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() || ip.IsMulticast() {
			continue
		}
		urls = append(urls, "http://"+net.JoinHostPort(ip.String(), strconv.Itoa(port)))
	}
	return urls
}

// levelOption maps a normalized log level to a go-kit filter option.
func levelOption(lvl string) level.Option {
	switch lvl {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
