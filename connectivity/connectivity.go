// Package connectivity provides an online/offline signal based on a
// periodic TCP probe.
package connectivity

import (
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultProbeAddr = "1.1.1.1:443"
	defaultInterval  = 30 * time.Second
	probeTimeout     = 5 * time.Second
)

// Monitor polls a probe address and collapses the result to a boolean
// online/offline state, notifying subscribers on changes.
type Monitor struct {
	probeAddr string
	interval  time.Duration
	dial      func(network, addr string, timeout time.Duration) (net.Conn, error)

	mu     sync.Mutex
	online bool
	subs   map[uuid.UUID]chan bool

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMonitor creates a monitor. Empty probeAddr or zero interval use
// defaults. The monitor starts offline until the first probe completes.
func NewMonitor(probeAddr string, interval time.Duration) *Monitor {
	if probeAddr == "" {
		probeAddr = defaultProbeAddr
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Monitor{
		probeAddr: probeAddr,
		interval:  interval,
		dial:      net.DialTimeout,
		subs:      make(map[uuid.UUID]chan bool),
		stop:      make(chan struct{}),
	}
}

// Start probes immediately, then keeps polling until Stop.
func (m *Monitor) Start() {
	m.probe()
	go m.loop()
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.probe()
		case <-m.stop:
			return
		}
	}
}

func (m *Monitor) probe() {
	conn, err := m.dial("tcp", m.probeAddr, probeTimeout)
	online := err == nil
	if conn != nil {
		conn.Close()
	}
	m.setOnline(online)
}

func (m *Monitor) setOnline(online bool) {
	m.mu.Lock()
	changed := online != m.online
	m.online = online
	var subs []chan bool
	if changed {
		for _, ch := range m.subs {
			subs = append(subs, ch)
		}
	}
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- online:
		default:
		}
	}
}

// Online returns the current state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registers for state-change notifications. The returned channel
// receives the new state whenever it flips.
func (m *Monitor) Subscribe() (uuid.UUID, <-chan bool) {
	id := uuid.New()
	ch := make(chan bool, 1)
	m.mu.Lock()
	m.subs[id] = ch
	m.mu.Unlock()
	return id, ch
}

// Unsubscribe releases a subscription. Unknown IDs are ignored, so release
// on teardown is safe to call exactly once per Subscribe.
func (m *Monitor) Unsubscribe(id uuid.UUID) {
	m.mu.Lock()
	delete(m.subs, id)
	m.mu.Unlock()
}

// Stop ends polling. Safe to call more than once.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}
