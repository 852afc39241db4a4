package replay

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/realmquest/internal/adventure"
	"github.com/vovakirdan/realmquest/internal/config"
	"github.com/vovakirdan/realmquest/internal/core"
)

func testHeader() Header {
	return Header{
		GameID:   adventure.GameID,
		TickRate: 10,
		ScreenW:  80,
		ScreenH:  24,
		Player:   "Lydia",
		Race:     "nord",
		Class:    "rogue",
	}
}

func runIDs() adventure.Option {
	n := 0
	return adventure.WithRunIDs(func() string {
		n++
		return fmt.Sprintf("run-%d", n)
	})
}

func newGame(t *testing.T, h Header) *adventure.Game {
	t.Helper()
	cfg := config.DefaultQuestConfig()
	cp, err := adventure.LookupClass(cfg, h.Class)
	if err != nil {
		t.Fatalf("LookupClass: %v", err)
	}
	g := adventure.NewWithConfig(cfg, runIDs())
	g.SetProfile(adventure.Profile{Name: h.Player, Race: h.Race, Class: cp})
	return g
}

var script = map[int][]core.Action{
	3:  {core.ActionRight},
	4:  {core.ActionRight},
	8:  {core.ActionDown, core.ActionDown},
	15: {core.ActionSpecial},
	30: {core.ActionRight, core.ActionDown},
	55: {core.ActionSpecial},
	70: {core.ActionLeft},
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	h := testHeader()
	rec, err := NewRecorder(&buf, h)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	g := newGame(t, h)
	g.Reset(h.RuntimeConfig())
	frame := core.NewInputFrame()
	for tick := range 100 {
		frame.Clear()
		for _, a := range script[tick] {
			frame.Set(a)
		}
		if err := rec.Record(frame); err != nil {
			t.Fatalf("Record: %v", err)
		}
		g.Step(frame)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	live := g.Snapshot()

	loaded, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if loaded.Header.Version != Version || loaded.Header.Player != "Lydia" || loaded.Header.Class != "rogue" {
		t.Errorf("Header = %+v", loaded.Header)
	}
	if loaded.Ticks != 100 {
		t.Errorf("Ticks = %d, want 100", loaded.Ticks)
	}
	if len(loaded.Frames) != len(script) {
		t.Errorf("len(Frames) = %d, want %d", len(loaded.Frames), len(script))
	}
	if fr := loaded.Frames[2]; fr.Tick != 8 || len(fr.Actions) != 2 || fr.Actions[0] != core.ActionDown {
		t.Errorf("Frames[2] = %+v", fr)
	}

	replayed := newGame(t, loaded.Header)
	res := Play(loaded, replayed)
	if res.Ticks != 100 {
		t.Errorf("played %d ticks", res.Ticks)
	}

	got := replayed.Snapshot()
	if got.Position != live.Position || got.Score != live.Score || got.Health != live.Health ||
		got.Cooldown != live.Cooldown || got.Elapsed != live.Elapsed || got.RunID != live.RunID {
		t.Errorf("replay diverged:\nlive   %+v\nreplay %+v", live, got)
	}
	for i := range live.Animals {
		if got.Animals[i] != live.Animals[i] {
			t.Errorf("animal %d: %+v vs %+v", i, got.Animals[i], live.Animals[i])
		}
	}
}

func TestCreateOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "one.jsonl.zst")
	rec, err := Create(path, testHeader())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	rec.Record(core.InputFrame{Actions: []core.Action{core.ActionRestart}})
	rec.Record(core.NewInputFrame())
	if rec.Ticks() != 2 {
		t.Errorf("Ticks = %d", rec.Ticks())
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	loaded, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if loaded.Ticks != 2 || len(loaded.Frames) != 1 || loaded.Frames[0].Actions[0] != core.ActionRestart {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestPlayCollectsEndedRuns(t *testing.T) {
	h := testHeader()
	rec := &Recording{
		Header: h,
		Frames: []Frame{
			{Tick: 2, Actions: []core.Action{core.ActionRight}},
			{Tick: 5, Actions: []core.Action{core.ActionRestart}},
		},
		Ticks: 10,
	}

	res := Play(rec, newGame(t, h))
	if len(res.Ended) != 1 {
		t.Fatalf("Ended = %+v, want one abandoned run", res.Ended)
	}
	if res.Ended[0].Outcome != core.OutcomeAbandoned || res.Ended[0].RunID != "run-1" {
		t.Errorf("Ended[0] = %+v", res.Ended[0])
	}
	if !res.State.Playing {
		t.Error("preset profile should be playing again after restart")
	}
}

func compress(t *testing.T, text string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	enc.Write([]byte(text))
	enc.Close()
	return &buf
}

func TestReadErrors(t *testing.T) {
	header := `{"type":"header","version":1,"game":"adventure","tick_rate":60,"screen_w":80,"screen_h":24,"seed":0,"recorded_at":"2026-01-01T00:00:00Z"}`

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"not json", "nope\n"},
		{"missing header", `{"type":"tick","tick":1,"actions":["Up"]}` + "\n"},
		{"bad version", `{"type":"header","version":9}` + "\n"},
		{"unknown action", header + "\n" + `{"type":"tick","tick":1,"actions":["fly"]}` + "\n"},
		{"out of order", header + "\n" + `{"type":"tick","tick":3,"actions":["Up"]}` + "\n" + `{"type":"tick","tick":2,"actions":["Up"]}` + "\n"},
		{"tick past end", header + "\n" + `{"type":"tick","tick":7,"actions":["Up"]}` + "\n" + `{"type":"end","ticks":5}` + "\n"},
		{"unknown type", header + "\n" + `{"type":"chat"}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(compress(t, tt.text))
			if !errors.Is(err, ErrBadRecording) {
				t.Errorf("Read error = %v, want ErrBadRecording", err)
			}
		})
	}

	if _, err := Read(strings.NewReader("plain text")); err == nil {
		t.Error("expected error for uncompressed input")
	}
}

func TestReadTruncated(t *testing.T) {
	header := `{"type":"header","version":1,"game":"adventure","tick_rate":60,"screen_w":80,"screen_h":24,"seed":0,"recorded_at":"2026-01-01T00:00:00Z"}`
	text := header + "\n" + `{"type":"tick","tick":4,"actions":["Down"]}` + "\n"

	rec, err := Read(compress(t, text))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if rec.Ticks != 5 {
		t.Errorf("Ticks = %d, want 5 for a recording without end line", rec.Ticks)
	}
}

func TestCheckQuest(t *testing.T) {
	cfg := config.DefaultQuestConfig()
	h := testHeader()

	if err := h.CheckQuest(cfg.Fingerprint()); err != nil {
		t.Errorf("header without fingerprint rejected: %v", err)
	}

	h.Quest = cfg.Fingerprint()
	if err := h.CheckQuest(cfg.Fingerprint()); err != nil {
		t.Errorf("matching quest rejected: %v", err)
	}

	cfg.World.Start = config.Cell{X: 2, Y: 2}
	if err := h.CheckQuest(cfg.Fingerprint()); !errors.Is(err, ErrQuestMismatch) {
		t.Errorf("CheckQuest = %v, want ErrQuestMismatch", err)
	}
}
