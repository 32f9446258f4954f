package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seekerror/logw"
	"github.com/tobagin/draughts-core/pkg/protocol"
	"github.com/tobagin/draughts-core/pkg/server"
)

var (
	addr              = flag.String("addr", ":8443", "Listen address")
	dbDir             = flag.String("db-dir", "", "Badger directory for durable stats and completed games; empty disables persistence")
	sweep             = flag.Duration("sweep", 5*time.Second, "Keepalive/disconnect-grace/inactivity sweep interval")
	requiredVersion   = flag.String("required-version", protocol.RequiredVersion, "Minimum client version accepted on the first frame")
	inactivityTimeout = flag.Duration("inactivity-timeout", server.DefaultInactivityLimit, "Untimed-room inactivity watchdog")
	gracePeriod       = flag.Duration("grace-period", server.DefaultDisconnectGrace, "Disconnect grace window before a seat is forfeited")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: relay [options]

RELAY is the draughts-core authoritative two-player WebSocket relay.
It never validates move legality; each client computes and trusts its own
rule engine. The server's job is matchmaking, transport, and clock timing.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	var store *server.Store
	if *dbDir != "" {
		s, err := server.NewStore(*dbDir)
		if err != nil {
			logw.Exitf(ctx, "Failed to open store at %v: %v", *dbDir, err)
		}
		defer s.Close()
		store = s
	}

	srv := server.NewServer(store,
		server.WithRequiredVersion(*requiredVersion),
		server.WithInactivityLimit(*inactivityTimeout),
		server.WithDisconnectGrace(*gracePeriod),
	)

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	go srv.Run(sweepCtx, *sweep)

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: srv.Routes(),
	}

	go func() {
		logw.Infof(ctx, "Relay %v listening on %v", server.Version, httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logw.Exitf(ctx, "Relay server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logw.Infof(ctx, "Shutting down")
	cancelSweep()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logw.Errorf(ctx, "Shutdown error: %v", err)
	}
}
