package audio

import (
	"fmt"
	"sync"
)

// State is the playback state as last reported by the engine.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	default:
		return "stopped"
	}
}

// Engine is the audio backend the player drives. SetSource loads a URL;
// Play, Pause and Stop request transitions. Actual state changes arrive on
// Events — the player reflects them rather than asserting them.
type Engine interface {
	SetSource(url string) error
	Play() error
	Pause() error
	Stop() error
	Events() <-chan State
	Close() error
}

// Player tracks at most one current pronunciation URL and mediates toggle
// semantics over an Engine.
type Player struct {
	mu      sync.Mutex
	engine  Engine
	current string
	state   State

	updates   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

// NewPlayer wraps an engine and starts reflecting its event stream.
func NewPlayer(engine Engine) *Player {
	p := &Player{
		engine:  engine,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go p.watch()
	return p
}

// watch mirrors engine state reports into the player until the engine
// closes its event stream.
func (p *Player) watch() {
	for s := range p.engine.Events() {
		p.mu.Lock()
		p.state = s
		p.mu.Unlock()
		p.notify()
	}
	close(p.done)
}

// notify signals the rendering layer without blocking; a pending signal is
// enough since readers re-query the current state.
func (p *Player) notify() {
	select {
	case p.updates <- struct{}{}:
	default:
	}
}

// Updates is the notification channel: it receives a signal whenever the
// playback state changes.
func (p *Player) Updates() <-chan struct{} {
	return p.updates
}

// Current returns the current URL and playback state.
func (p *Player) Current() (string, State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.state
}

// Toggle normalizes a raw audio URL and plays or pauses it. An unplayable
// URL is a no-op. Toggling the URL that is currently playing requests a
// pause; anything else interrupts prior playback and starts the new source.
func (p *Player) Toggle(raw string) error {
	url, ok := NormalizeURL(raw)
	if !ok {
		return nil
	}

	p.mu.Lock()
	samePlaying := url == p.current && p.state == StatePlaying
	p.mu.Unlock()

	if samePlaying {
		if err := p.engine.Pause(); err != nil {
			return fmt.Errorf("pausing: %w", err)
		}
		return nil
	}

	// Switching sources: always stop the previous one first.
	if err := p.engine.Stop(); err != nil {
		return fmt.Errorf("stopping previous source: %w", err)
	}

	p.mu.Lock()
	p.current = url
	p.mu.Unlock()
	p.notify()

	if err := p.engine.SetSource(url); err != nil {
		return fmt.Errorf("loading %s: %w", url, err)
	}
	if err := p.engine.Play(); err != nil {
		return fmt.Errorf("playing %s: %w", url, err)
	}
	return nil
}

// Close releases the engine. Safe to call more than once.
func (p *Player) Close() error {
	var err error
	p.closeOnce.Do(func() {
		err = p.engine.Close()
		<-p.done
	})
	return err
}
