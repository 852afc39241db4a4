// Package replay records the per-tick input of a game session as
// zstd-compressed JSON lines and plays it back deterministically.
//
// A recording is a header line, one line per tick that carried input, and an
// end line holding the total tick count:
//
//	{"type":"header","version":1,"game":"adventure","tick_rate":60,...}
//	{"type":"tick","tick":12,"actions":["Right"]}
//	{"type":"end","ticks":840}
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/realmquest/internal/core"
	"github.com/vovakirdan/realmquest/internal/registry"
)

// Version is the recording format version.
const Version = 1

// ErrBadRecording is returned for recordings that cannot be played back.
var ErrBadRecording = errors.New("replay: bad recording")

// ErrQuestMismatch is returned when a recording was made with a different
// quest configuration than the one it is replayed against.
var ErrQuestMismatch = errors.New("replay: quest configuration differs from recording")

// Header describes the session a recording was made from.
type Header struct {
	Version    int       `json:"version"`
	GameID     string    `json:"game"`
	TickRate   int       `json:"tick_rate"`
	ScreenW    int       `json:"screen_w"`
	ScreenH    int       `json:"screen_h"`
	Seed       int64     `json:"seed"`
	Player     string    `json:"player,omitempty"`
	Race       string    `json:"race,omitempty"`
	Class      string    `json:"class,omitempty"`
	Quest      string    `json:"quest,omitempty"` // config.QuestConfig fingerprint
	RecordedAt time.Time `json:"recorded_at"`
}

// CheckQuest verifies that the recording was made with the quest whose
// fingerprint is given. Recordings without a fingerprint are accepted.
func (h Header) CheckQuest(fingerprint string) error {
	if h.Quest == "" || h.Quest == fingerprint {
		return nil
	}
	return fmt.Errorf("%w: recorded %s, loaded %s", ErrQuestMismatch, h.Quest, fingerprint)
}

// RuntimeConfig returns the runtime configuration to replay with.
func (h Header) RuntimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  h.ScreenW,
		ScreenH:  h.ScreenH,
		TickRate: h.TickRate,
		Seed:     h.Seed,
	}
}

// Frame is the input of one tick.
type Frame struct {
	Tick    uint64
	Actions []core.Action
}

type line struct {
	Type    string   `json:"type"`
	Tick    uint64   `json:"tick,omitempty"`
	Ticks   uint64   `json:"ticks,omitempty"`
	Actions []string `json:"actions,omitempty"`
	*Header
}

// Recorder writes a recording. It is not safe for concurrent use.
type Recorder struct {
	f     *os.File
	enc   *zstd.Encoder
	w     *bufio.Writer
	ticks uint64
}

// Create opens path for writing and writes the header.
func Create(path string, h Header) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("replay: cannot create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create %s: %w", path, err)
	}
	r, err := NewRecorder(f, h)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.f = f
	return r, nil
}

// NewRecorder writes a recording to w. Close does not close w.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create encoder: %w", err)
	}
	r := &Recorder{
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64*1024),
	}

	h.Version = Version
	if h.RecordedAt.IsZero() {
		h.RecordedAt = time.Now().UTC()
	}
	if err := r.write(line{Type: "header", Header: &h}); err != nil {
		_ = enc.Close()
		return nil, err
	}
	return r, nil
}

// Record stores the input of the next tick. Empty frames only count the tick.
func (r *Recorder) Record(in core.InputFrame) error {
	tick := r.ticks
	r.ticks++
	if in.Empty() {
		return nil
	}

	names := make([]string, len(in.Actions))
	for i, a := range in.Actions {
		names[i] = a.String()
	}
	return r.write(line{Type: "tick", Tick: tick, Actions: names})
}

// Ticks returns the number of ticks recorded so far.
func (r *Recorder) Ticks() uint64 {
	return r.ticks
}

// Close writes the end line and flushes the stream.
func (r *Recorder) Close() error {
	if r.enc == nil {
		return nil
	}
	err := r.write(line{Type: "end", Ticks: r.ticks})
	if ferr := r.w.Flush(); err == nil {
		err = ferr
	}
	if cerr := r.enc.Close(); err == nil {
		err = cerr
	}
	r.enc = nil
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
		r.f = nil
	}
	if err != nil {
		return fmt.Errorf("replay: close: %w", err)
	}
	return nil
}

func (r *Recorder) write(l line) error {
	b, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("replay: marshal: %w", err)
	}
	if _, err := r.w.Write(b); err != nil {
		return fmt.Errorf("replay: write: %w", err)
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("replay: write: %w", err)
	}
	return nil
}

// Recording is a fully loaded recording.
type Recording struct {
	Header Header
	Frames []Frame // Ticks with input, in tick order
	Ticks  uint64
}

// Open reads the recording at path.
func Open(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer f.Close()

	rec, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rec, nil
}

// Read decodes a recording from r.
func Read(r io.Reader) (*Recording, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecording, err)
	}
	defer dec.Close()

	var (
		rec       Recording
		sawHeader bool
		sawEnd    bool
		lastTick  uint64
	)

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		var l line
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRecording, n, err)
		}

		switch l.Type {
		case "header":
			if sawHeader || l.Header == nil {
				return nil, fmt.Errorf("%w: line %d: unexpected header", ErrBadRecording, n)
			}
			if l.Header.Version != Version {
				return nil, fmt.Errorf("%w: unsupported version %d", ErrBadRecording, l.Header.Version)
			}
			rec.Header = *l.Header
			sawHeader = true
		case "tick":
			if !sawHeader || sawEnd {
				return nil, fmt.Errorf("%w: line %d: tick outside recording", ErrBadRecording, n)
			}
			if len(rec.Frames) > 0 && l.Tick <= lastTick {
				return nil, fmt.Errorf("%w: line %d: tick %d out of order", ErrBadRecording, n, l.Tick)
			}
			fr := Frame{Tick: l.Tick}
			for _, name := range l.Actions {
				a := core.ParseAction(name)
				if a == core.ActionNone {
					return nil, fmt.Errorf("%w: line %d: unknown action %q", ErrBadRecording, n, name)
				}
				fr.Actions = append(fr.Actions, a)
			}
			rec.Frames = append(rec.Frames, fr)
			lastTick = l.Tick
		case "end":
			if !sawHeader {
				return nil, fmt.Errorf("%w: line %d: end before header", ErrBadRecording, n)
			}
			rec.Ticks = l.Ticks
			sawEnd = true
		default:
			return nil, fmt.Errorf("%w: line %d: unknown line type %q", ErrBadRecording, n, l.Type)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecording, err)
	}

	if !sawHeader {
		return nil, fmt.Errorf("%w: missing header", ErrBadRecording)
	}
	if !sawEnd {
		// Truncated recording: play what was captured.
		if len(rec.Frames) > 0 {
			rec.Ticks = lastTick + 1
		}
	}
	if len(rec.Frames) > 0 && lastTick >= rec.Ticks {
		return nil, fmt.Errorf("%w: tick %d beyond end %d", ErrBadRecording, lastTick, rec.Ticks)
	}
	return &rec, nil
}

// Result is the outcome of a playback.
type Result struct {
	Ticks uint64
	State core.GameState
	Ended []core.RunSummary
}

// Play resets g with the recorded runtime configuration and feeds it every
// recorded tick. The game must be configured (profile, quest) beforehand.
func Play(rec *Recording, g registry.Game) Result {
	g.Reset(rec.Header.RuntimeConfig())

	var res Result
	next := 0
	frame := core.NewInputFrame()
	for tick := uint64(0); tick < rec.Ticks; tick++ {
		frame.Clear()
		if next < len(rec.Frames) && rec.Frames[next].Tick == tick {
			for _, a := range rec.Frames[next].Actions {
				frame.Set(a)
			}
			next++
		}

		step := g.Step(frame)
		if step.Ended != nil {
			res.Ended = append(res.Ended, *step.Ended)
		}
		res.Ticks++
	}
	res.State = g.State()
	return res
}
