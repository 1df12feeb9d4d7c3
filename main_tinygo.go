//go:build tinygo && baremetal

package main

import (
	"ember/emberos/apps"
	"ember/emberos/hostlink"
	"ember/emberos/kernel"
	"ember/emberos/services/logger"
	"ember/emberos/tasks/cellmon"
	"ember/emberos/wwan"
	"ember/hal"
)

func main() {
	h := hal.New()
	k := kernel.New()
	ctx := k.NewContext()

	// No RPC transport is wired on the reference board yet, so nothing
	// drains GetMessage; outbound messages are dropped once the queue
	// fills, which is the producer-side contract anyway.
	link := hostlink.New(hostlink.Config{Diag: h.Logger()})
	registry := apps.NewRegistry(ctx)
	mgr := wwan.NewManager(h.Modem(), registry)

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	k.Go(logger.New(link, logEP.Restrict(kernel.RightRecv)))

	evEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	appID := registry.Load("cellmon", evEP.Restrict(kernel.RightSend))
	k.Go(cellmon.New(cellmon.Config{
		Manager: mgr,
		Link:    link,
		Log:     logEP.Restrict(kernel.RightSend),
		Events:  evEP.Restrict(kernel.RightRecv),
		AppID:   appID,
	}))

	led := h.LED()
	var tick uint64
	for tick = range h.Time().Ticks() {
		k.Tick()
		if tick%1000 == 0 {
			led.High()
		} else if tick%1000 == 500 {
			led.Low()
		}
	}
}
