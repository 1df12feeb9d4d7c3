//go:build !tinygo

package main

import (
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"ember/emberos/apps"
	"ember/emberos/hostlink"
	"ember/emberos/kernel"
	"ember/emberos/proto"
	"ember/emberos/services/logger"
	"ember/emberos/tasks/cellmon"
	"ember/emberos/wwan"
	"ember/hal"
	"ember/internal/buildinfo"
)

// envelopeSlack covers CBOR framing overhead on top of the payload cap.
const envelopeSlack = 128

func main() {
	queueCap := flag.Int("queue", hostlink.DefaultQueueCapacity, "Outbound queue capacity.")
	scanMs := flag.Uint64("scan-ms", 250, "Milliseconds between cell scans.")
	runFor := flag.Duration("run", 0, "Stop after this duration (0 = run until interrupted).")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
		With().Timestamp().Str("side", "host").Logger()
	log.Info().Str("build", buildinfo.Short()).Msg("emberos starting")

	h := hal.New()
	k := kernel.New()
	ctx := k.NewContext()

	link := hostlink.New(hostlink.Config{
		QueueCapacity: *queueCap,
		Diag:          h.Logger(),
	})
	registry := apps.NewRegistry(ctx)
	mgr := wwan.NewManager(h.Modem(), registry)

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	k.Go(logger.New(link, logEP.Restrict(kernel.RightRecv)))

	evEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	appID := registry.Load("cellmon", evEP.Restrict(kernel.RightSend))
	k.Go(cellmon.New(cellmon.Config{
		Manager:       mgr,
		Link:          link,
		Log:           logEP.Restrict(kernel.RightSend),
		Events:        evEP.Restrict(kernel.RightRecv),
		AppID:         appID,
		IntervalTicks: *scanMs,
	}))

	go func() {
		for range h.Time().Ticks() {
			k.Tick()
		}
	}()

	// The host side: a dedicated thread repeatedly blocking on GetMessage,
	// the way the real host drains the link over RPC.
	pollerDone := make(chan struct{})
	go func(log zerolog.Logger) {
		defer close(pollerDone)
		buf := make([]byte, proto.MaxHostMessageBytes+envelopeSlack)
		for {
			n, status := link.GetMessage(buf)
			switch status {
			case hostlink.StatusShuttingDown:
				log.Info().Msg("link shutting down; poller exiting")
				return
			case hostlink.StatusError:
				log.Error().Msg("failed to drain message")
				continue
			}
			env, err := proto.DecodeEnvelope(buf[:n])
			if err != nil {
				log.Error().Err(err).Msg("bad envelope")
				continue
			}
			switch env.Type {
			case proto.HostMsgLog:
				log.Info().Uint32("app", env.AppID).Msg(string(env.Payload))
			case proto.HostMsgCellReport:
				logCellReport(log, env)
			default:
				log.Warn().Uint32("type", env.Type).Msg("unhandled host message")
			}
		}
	}(log.With().Str("side", "poller").Logger())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	if *runFor > 0 {
		select {
		case <-sig:
		case <-time.After(*runFor):
		}
	} else {
		<-sig
	}

	res := link.Shutdown()
	log.Info().Str("result", res.String()).Msg("host link shutdown")

	select {
	case <-pollerDone:
	case <-time.After(time.Second):
		log.Warn().Msg("poller did not exit")
	}
}

func logCellReport(log zerolog.Logger, env proto.Envelope) {
	cookie, errCode, cells, ok := proto.DecodeCellInfoRespPayload(env.Payload)
	if !ok {
		log.Error().Uint32("app", env.AppID).Msg("bad cell report payload")
		return
	}
	ev := log.Info().
		Uint32("app", env.AppID).
		Uint32("cookie", cookie).
		Int("cells", len(cells))
	if errCode != 0 {
		ev = ev.Uint8("error", errCode)
	}
	for _, c := range cells {
		if c.Registered {
			ev = ev.Int8("serving_dbm", c.SignalDbm)
			break
		}
	}
	ev.Msg("cell report")
}
