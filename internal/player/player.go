package player

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

const defaultTickInterval = 200 * time.Millisecond

// The speaker is process-global; it is initialized once at the first
// track's sample rate and later tracks are resampled to it.
var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Player is the beep-backed Engine.
//
// Lock order is p.mu before speaker.Lock. The speaker goroutine never takes
// p.mu directly; end-of-stream is handed off to a separate goroutine.
type Player struct {
	mu sync.Mutex

	media  *decoded
	source string
	state  State
	ctrl   *beep.Ctrl
	volume *effects.Volume
	armed  bool // stream is queued in the speaker mixer
	gen    int  // bumped whenever the queued stream is discarded
	load   LoadID

	level   float64
	muted   bool
	lastPos time.Duration

	events *eventQueue
	tick   time.Duration
	stop   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Player.
type Option func(*Player)

// WithTickInterval sets how often position updates are emitted while playing.
func WithTickInterval(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.tick = d
		}
	}
}

// New creates a player and starts its position ticker.
func New(opts ...Option) *Player {
	p := &Player{
		state:  Stopped,
		level:  1,
		events: newEventQueue(),
		tick:   defaultTickInterval,
		stop:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.wg.Add(1)
	go p.tickLoop()
	return p
}

// Events returns the ordered event stream. It is closed by Close.
func (p *Player) Events() <-chan Event {
	return p.events.out
}

// Load replaces the current media with path. Playback does not start until Play.
// On failure an InvalidMedia status is emitted and the error is returned.
func (p *Player) Load(path string) (LoadID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.unloadLocked()
	p.load++
	p.source = path
	p.lastPos = 0
	p.setStateLocked(Stopped)

	media, err := decodeFile(path)
	if err == nil {
		err = initSpeaker(media.format)
		if err != nil {
			media.close()
		}
	}
	if err != nil {
		log.Printf("player: load %s: %v", path, err)
		p.emit(StatusChanged{Source: path, Status: InvalidMedia, Err: err})
		return p.load, err
	}

	p.media = media
	var s beep.Streamer = media.streamer
	if media.format.SampleRate != speakerSampleRate {
		s = beep.Resample(4, media.format.SampleRate, speakerSampleRate, media.streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: s, Paused: true}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2}
	applyVolume(p.volume, p.level, p.muted)

	duration := media.format.SampleRate.D(media.streamer.Len())
	log.Printf("player: loaded %s (%s, %d Hz, %s)", path, media.codec, media.format.SampleRate, duration)

	p.emit(DurationChanged{Source: path, Duration: duration})
	p.emit(StatusChanged{Source: path, Status: Loaded})
	p.emit(PositionChanged{Source: path, Position: 0})
	return p.load, nil
}

// Play starts or resumes the loaded media. A stream that reached its end
// restarts from the beginning.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.media == nil || p.state == Playing {
		return
	}

	if p.armed {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
	} else {
		if p.media.streamer.Position() >= p.media.streamer.Len() {
			_ = p.media.streamer.Seek(0)
		}
		p.ctrl.Paused = false
		p.gen++
		gen := p.gen
		speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
			// Runs on the speaker goroutine with the speaker lock held.
			go p.finished(gen)
		})))
		p.armed = true
	}
	p.setStateLocked(Playing)
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.setStateLocked(Paused)
}

// Stop halts playback and rewinds to the start. The media stays loaded.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.media == nil {
		p.setStateLocked(Stopped)
		return
	}
	p.disarmLocked()
	_ = p.media.streamer.Seek(0)
	p.ctrl.Paused = true
	wasStopped := p.state == Stopped
	p.setStateLocked(Stopped)
	if !wasStopped {
		p.lastPos = 0
		p.emit(PositionChanged{Source: p.source, Position: 0})
	}
}

// Seek moves to an absolute position, clamped to the media length.
func (p *Player) Seek(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.media == nil {
		return
	}
	sr := p.media.format.SampleRate
	n := min(max(sr.N(pos), 0), p.media.streamer.Len())

	if p.armed {
		speaker.Lock()
		_ = p.media.streamer.Seek(n)
		speaker.Unlock()
	} else {
		_ = p.media.streamer.Seek(n)
	}
	p.lastPos = sr.D(n)
	p.emit(PositionChanged{Source: p.source, Position: p.lastPos})
}

// SetVolume sets the volume level (0.0 to 1.0).
func (p *Player) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.level = clampLevel(level)
	p.applyVolumeLocked()
}

// SetMuted silences output without losing the volume level.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	p.applyVolumeLocked()
}

// Close stops playback, stops the ticker and closes the event stream.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.unloadLocked()
	p.mu.Unlock()

	close(p.stop)
	p.wg.Wait()
	p.events.close()
	return nil
}

func (p *Player) applyVolumeLocked() {
	if p.volume == nil {
		return
	}
	if p.armed {
		speaker.Lock()
		defer speaker.Unlock()
	}
	applyVolume(p.volume, p.level, p.muted)
}

// finished handles the end of the queued stream. Stale callbacks from a
// stream that was since stopped or replaced are ignored.
func (p *Player) finished(gen int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || gen != p.gen || p.media == nil {
		return
	}
	p.armed = false
	p.setStateLocked(Stopped)

	if err := p.media.streamer.Err(); err != nil {
		log.Printf("player: decode %s: %v", p.source, err)
		p.emit(StatusChanged{Source: p.source, Status: InvalidMedia, Err: err})
		return
	}
	p.lastPos = p.media.format.SampleRate.D(p.media.streamer.Len())
	p.emit(PositionChanged{Source: p.source, Position: p.lastPos})
	p.emit(StatusChanged{Source: p.source, Status: EndOfMedia})
}

func (p *Player) tickLoop() {
	defer p.wg.Done()
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.emitPosition()
		case <-p.stop:
			return
		}
	}
}

func (p *Player) emitPosition() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing || p.media == nil {
		return
	}
	speaker.Lock()
	pos := p.media.format.SampleRate.D(p.media.streamer.Position())
	speaker.Unlock()
	if pos != p.lastPos {
		p.lastPos = pos
		p.emit(PositionChanged{Source: p.source, Position: pos})
	}
}

func (p *Player) setStateLocked(s State) {
	if p.state == s {
		return
	}
	p.state = s
	p.emit(StateChanged{Source: p.source, State: s})
}

// disarmLocked removes the stream from the speaker mixer.
func (p *Player) disarmLocked() {
	if !p.armed {
		return
	}
	speaker.Clear()
	p.armed = false
	p.gen++
}

func (p *Player) unloadLocked() {
	p.disarmLocked()
	if p.media != nil {
		p.media.close()
		p.media = nil
	}
	p.ctrl = nil
	p.volume = nil
}

// emit tags e with the current load and queues it.
func (p *Player) emit(e Event) {
	p.events.push(withLoad(e, p.load))
}

func initSpeaker(format beep.Format) error {
	if speakerInitialized {
		return nil
	}
	speakerSampleRate = format.SampleRate
	if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speakerInitialized = true
	return nil
}

// Verify Player implements Engine at compile time.
var _ Engine = (*Player)(nil)
