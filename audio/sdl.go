package audio

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/tosone/minimp3"
	"github.com/veandco/go-sdl2/sdl"
)

const fetchTimeout = 15 * time.Second

// SDLEngine plays pronunciation mp3s through SDL's queued-audio API. Each
// source gets its own audio device, opened on load and closed when playback
// stops or completes.
type SDLEngine struct {
	mu         sync.Mutex
	httpClient *http.Client
	events     chan State
	dev        sdl.AudioDeviceID
	gen        int // bumped whenever the device changes, ends stale drain watchers
	closed     bool
}

// NewSDLEngine initializes SDL audio.
func NewSDLEngine() (*SDLEngine, error) {
	if err := sdl.Init(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initializing SDL audio: %w", err)
	}
	return &SDLEngine{
		httpClient: &http.Client{Timeout: fetchTimeout},
		events:     make(chan State, 8),
	}, nil
}

// SetSource downloads and decodes an mp3 URL, then queues its PCM on a
// fresh audio device, replacing any prior source.
func (e *SDLEngine) SetSource(url string) error {
	resp, err := e.httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("fetching audio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("fetching audio: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading audio: %w", err)
	}

	dec, pcm, err := minimp3.DecodeFull(data)
	if err != nil {
		return fmt.Errorf("decoding mp3: %w", err)
	}

	spec := sdl.AudioSpec{
		Freq:     int32(dec.SampleRate),
		Format:   sdl.AUDIO_S16SYS,
		Channels: uint8(dec.Channels),
		Samples:  1024,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return fmt.Errorf("engine closed")
	}
	e.closeDeviceLocked()

	var obtained sdl.AudioSpec
	dev, err := sdl.OpenAudioDevice("", false, &spec, &obtained, 0)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	if err := sdl.QueueAudio(dev, pcm); err != nil {
		sdl.CloseAudioDevice(dev)
		return fmt.Errorf("queueing audio: %w", err)
	}
	e.dev = dev
	return nil
}

// Play unpauses the device so queued audio starts, and watches for the
// queue to drain.
func (e *SDLEngine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dev == 0 {
		return fmt.Errorf("no source loaded")
	}
	sdl.PauseAudioDevice(e.dev, false)
	e.emit(StatePlaying)
	go e.watchDrain(e.dev, e.gen)
	return nil
}

// Pause halts the device without discarding queued audio.
func (e *SDLEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dev == 0 {
		return nil
	}
	sdl.PauseAudioDevice(e.dev, true)
	e.emit(StatePaused)
	return nil
}

// Stop discards queued audio and releases the device.
func (e *SDLEngine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeDeviceLocked()
	e.emit(StateStopped)
	return nil
}

func (e *SDLEngine) Events() <-chan State {
	return e.events
}

// Close releases the current device and ends the event stream.
func (e *SDLEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closeDeviceLocked()
	e.closed = true
	close(e.events)
	return nil
}

func (e *SDLEngine) closeDeviceLocked() {
	if e.dev != 0 {
		sdl.ClearQueuedAudio(e.dev)
		sdl.CloseAudioDevice(e.dev)
		e.dev = 0
	}
	e.gen++
}

// emit delivers a state report without blocking; the channel is buffered
// and consumers only care about the latest state.
func (e *SDLEngine) emit(s State) {
	if e.closed {
		return
	}
	select {
	case e.events <- s:
	default:
	}
}

// watchDrain polls the queued-audio size and reports completion once the
// device has drained. A generation mismatch means the source was replaced
// or stopped, so the watcher just exits.
func (e *SDLEngine) watchDrain(dev sdl.AudioDeviceID, gen int) {
	for {
		time.Sleep(100 * time.Millisecond)

		e.mu.Lock()
		if e.closed || e.gen != gen || e.dev != dev {
			e.mu.Unlock()
			return
		}
		if sdl.GetQueuedAudioSize(dev) == 0 {
			// Give the device a moment to finish the last buffer.
			e.mu.Unlock()
			time.Sleep(100 * time.Millisecond)

			e.mu.Lock()
			if !e.closed && e.gen == gen {
				e.closeDeviceLocked()
				e.emit(StateCompleted)
			}
			e.mu.Unlock()
			return
		}
		e.mu.Unlock()
	}
}
