package netutil

import (
	"net"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Limiter is a pool of connection slots shared by several listeners
type Limiter struct {
	slots   chan struct{}
	active  prometheus.Gauge
	waiting prometheus.Gauge
}

// NewLimiter creates a Limiter with n slots. The gauges report the pool size,
// the connections holding a slot and the connections waiting for one.
func NewLimiter(n int, max, active, waiting prometheus.Gauge) *Limiter {
	max.Set(float64(n))

	return &Limiter{
		slots:   make(chan struct{}, n),
		active:  active,
		waiting: waiting,
	}
}

// Listen wraps listener so that Accept blocks while every slot of the
// pool is held. A slot is released when the accepted connection is closed.
func (lim *Limiter) Listen(listener net.Listener) net.Listener {
	return &limitListener{
		Listener: listener,
		limiter:  lim,
		done:     make(chan struct{}),
	}
}

// acquire returns false when done was closed before a slot got free
func (lim *Limiter) acquire(done <-chan struct{}) bool {
	lim.waiting.Inc()
	defer lim.waiting.Dec()

	select {
	case <-done:
		return false
	case lim.slots <- struct{}{}:
		lim.active.Inc()
		return true
	}
}

func (lim *Limiter) release() {
	<-lim.slots
	lim.active.Dec()
}

type limitListener struct {
	net.Listener
	limiter   *Limiter
	closeOnce sync.Once
	done      chan struct{}
}

func (l *limitListener) Accept() (net.Conn, error) {
	acquired := l.limiter.acquire(l.done)

	// a closed listener returns an error right away
	c, err := l.Listener.Accept()
	if err != nil {
		if acquired {
			l.limiter.release()
		}
		return nil, err
	}

	return &limitListenerConn{Conn: c, release: l.limiter.release}, nil
}

func (l *limitListener) Close() error {
	err := l.Listener.Close()
	l.closeOnce.Do(func() { close(l.done) })
	return err
}

type limitListenerConn struct {
	net.Conn
	releaseOnce sync.Once
	release     func()
}

func (c *limitListenerConn) Close() error {
	err := c.Conn.Close()
	c.releaseOnce.Do(c.release)
	return err
}
