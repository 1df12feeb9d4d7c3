// Package cellmon is a nanoapp that periodically samples the cell
// environment and reports it to the host.
package cellmon

import (
	"fmt"

	"ember/emberos/hostlink"
	"ember/emberos/kernel"
	"ember/emberos/proto"
	"ember/emberos/services/logger"
	"ember/emberos/wwan"
)

// Config assembles a cell monitor task.
type Config struct {
	Manager *wwan.Manager
	Link    *hostlink.HostLink
	// Log is the send capability for the log service endpoint.
	Log kernel.Capability
	// Events is the receive capability for this app's event endpoint.
	Events kernel.Capability
	// AppID is the instance ID assigned by the registry.
	AppID uint32
	// IntervalTicks between scans; minimum 1.
	IntervalTicks uint64
	// TimeoutTicks bounds the wait for a scan result; minimum 1.
	TimeoutTicks uint64
}

// Task drives scan requests and forwards results to the host.
type Task struct {
	cfg Config
}

// New creates a cell monitor task.
func New(cfg Config) *Task {
	if cfg.IntervalTicks == 0 {
		cfg.IntervalTicks = 1000
	}
	if cfg.TimeoutTicks == 0 {
		cfg.TimeoutTicks = 100
	}
	return &Task{cfg: cfg}
}

func (t *Task) Run(ctx *kernel.Context) {
	if t.cfg.Manager == nil || t.cfg.Link == nil {
		return
	}
	if t.cfg.Manager.Capabilities()&wwan.CapCellInfo == 0 {
		logger.LogLine(ctx, t.cfg.Log, "cellmon: platform has no cell info support")
		return
	}

	cookie := uint32(0)
	for {
		cookie++
		if t.cfg.Manager.RequestCellInfo(t.cfg.AppID, cookie) {
			if msg, ok := t.awaitEvent(ctx); ok {
				t.report(ctx, msg, cookie)
			} else {
				logger.LogLine(ctx, t.cfg.Log,
					fmt.Sprintf("cellmon: no result for cookie %d", cookie))
			}
		} else {
			logger.LogLine(ctx, t.cfg.Log, "cellmon: scan rejected")
		}
		ctx.WaitTick(ctx.NowTick() + t.cfg.IntervalTicks - 1)
	}
}

func (t *Task) awaitEvent(ctx *kernel.Context) (kernel.Message, bool) {
	deadline := ctx.NowTick() + t.cfg.TimeoutTicks
	for {
		if msg, ok := ctx.TryRecv(t.cfg.Events); ok {
			return msg, true
		}
		if ctx.NowTick() >= deadline {
			return kernel.Message{}, false
		}
		ctx.BlockOnTick()
	}
}

func (t *Task) report(ctx *kernel.Context, msg kernel.Message, want uint32) {
	if proto.Kind(msg.Kind) != proto.MsgCellInfoResp {
		return
	}
	cookie, errCode, cells, ok := proto.DecodeCellInfoRespPayload(msg.Payload())
	if !ok || cookie != want {
		logger.LogLine(ctx, t.cfg.Log, "cellmon: bad result event")
		return
	}
	if errCode != 0 {
		logger.LogLine(ctx, t.cfg.Log,
			fmt.Sprintf("cellmon: scan failed with code %d", errCode))
		return
	}

	out := &hostlink.MessageToHost{
		AppID:        t.cfg.AppID,
		HostEndpoint: proto.HostEndpointBroadcast,
		MessageType:  proto.HostMsgCellReport,
		Payload:      append([]byte(nil), msg.Payload()...),
	}
	if !t.cfg.Link.SendMessage(out) {
		logger.LogLine(ctx, t.cfg.Log,
			fmt.Sprintf("cellmon: dropped report with %d cells", len(cells)))
	}
}
