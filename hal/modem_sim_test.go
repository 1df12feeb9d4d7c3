//go:build !tinygo

package hal

import (
	"testing"
	"time"
)

func TestSimModemDeliversScriptedResults(t *testing.T) {
	script := []CellInfoResult{
		{Cells: []CellInfo{{Type: CellTypeLTE, Registered: true, SignalDbm: -60}}},
		{Error: CellErrorTransient},
	}
	m := newSimModem(SimModemConfig{Latency: time.Millisecond, Script: script})

	results := make(chan CellInfoResult, 4)
	m.SetResultHandler(func(res CellInfoResult) { results <- res })

	for i := 0; i < 3; i++ {
		if !m.RequestCellInfo() {
			t.Fatalf("scan %d: expected request accepted", i)
		}
		select {
		case res := <-results:
			want := script[i%len(script)]
			if res.Error != want.Error || len(res.Cells) != len(want.Cells) {
				t.Fatalf("scan %d: unexpected result %+v", i, res)
			}
		case <-time.After(time.Second):
			t.Fatalf("scan %d: no result delivered", i)
		}
	}
}

func TestSimModemRejectsOverlappingScan(t *testing.T) {
	m := newSimModem(SimModemConfig{Latency: 50 * time.Millisecond})

	results := make(chan CellInfoResult, 1)
	m.SetResultHandler(func(res CellInfoResult) { results <- res })

	if !m.RequestCellInfo() {
		t.Fatal("expected first scan accepted")
	}
	if m.RequestCellInfo() {
		t.Fatal("expected overlapping scan rejected")
	}

	select {
	case <-results:
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
	if !m.RequestCellInfo() {
		t.Fatal("expected scan after completion accepted")
	}
}

func TestSimModemRequiresHandler(t *testing.T) {
	m := newSimModem(SimModemConfig{})
	if m.RequestCellInfo() {
		t.Fatal("expected request without a handler to be rejected")
	}
}
