package connectivity

import (
	"errors"
	"net"
	"testing"
	"time"
)

func monitorWithDial(ok *bool) *Monitor {
	m := NewMonitor("test:1", time.Hour)
	m.dial = func(network, addr string, timeout time.Duration) (net.Conn, error) {
		if *ok {
			c, s := net.Pipe()
			s.Close()
			return c, nil
		}
		return nil, errors.New("no route to host")
	}
	return m
}

func TestProbeSetsOnline(t *testing.T) {
	up := true
	m := monitorWithDial(&up)
	defer m.Stop()

	if m.Online() {
		t.Error("expected offline before first probe")
	}
	m.probe()
	if !m.Online() {
		t.Error("expected online after successful probe")
	}

	up = false
	m.probe()
	if m.Online() {
		t.Error("expected offline after failed probe")
	}
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	up := true
	m := monitorWithDial(&up)
	defer m.Stop()

	id, ch := m.Subscribe()
	defer m.Unsubscribe(id)

	m.probe()
	select {
	case online := <-ch:
		if !online {
			t.Error("expected an online notification")
		}
	default:
		t.Fatal("expected a notification after state change")
	}

	// No change, no notification.
	m.probe()
	select {
	case <-ch:
		t.Error("expected no notification without a state change")
	default:
	}

	up = false
	m.probe()
	select {
	case online := <-ch:
		if online {
			t.Error("expected an offline notification")
		}
	default:
		t.Fatal("expected a notification after going offline")
	}
}

func TestUnsubscribe(t *testing.T) {
	up := false
	m := monitorWithDial(&up)
	defer m.Stop()

	id, ch := m.Subscribe()
	m.Unsubscribe(id)

	up = true
	m.probe()
	select {
	case <-ch:
		t.Error("expected no notification after unsubscribe")
	default:
	}
}

func TestStopTwice(t *testing.T) {
	m := NewMonitor("", 0)
	m.Stop()
	m.Stop()
}
