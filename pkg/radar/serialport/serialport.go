// Package serialport adapts a tarm/serial port to the radar.Port
// contract.
package serialport

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/tarm/serial"
)

// queueSize buffers enough for several telemetry frames between
// polls.
const queueSize = 256

// ErrClosed indicates the port has been closed.
var ErrClosed = errors.New("port closed")

// Config selects the serial device.
type Config struct {
	Name string
	Baud int
}

// Port implements radar.Port over a serial device. A background
// reader drains the device into a byte queue so Available and
// ReadByte never block.
type Port struct {
	port io.ReadWriteCloser

	queue chan byte

	lock   sync.Mutex
	err    error
	closed bool
}

// Open opens the serial device and starts the reader.
func Open(cfg Config) (*Port, error) {
	sp, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Name,
		Baud:        cfg.Baud,
		ReadTimeout: time.Second,
		Parity:      serial.ParityNone,
	})
	if err != nil {
		return nil, err
	}
	return newPort(sp), nil
}

func newPort(rwc io.ReadWriteCloser) *Port {
	p := &Port{
		port:  rwc,
		queue: make(chan byte, queueSize),
	}
	go p.readLoop()
	return p
}

// Write sends bytes to the device.
func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Available returns the count of buffered received bytes.
func (p *Port) Available() int {
	return len(p.queue)
}

// ReadByte pops one buffered byte. Only valid while Available
// reports pending bytes; with an empty queue it reports the reader's
// failure, if any.
func (p *Port) ReadByte() (byte, error) {
	select {
	case b := <-p.queue:
		return b, nil
	default:
		p.lock.Lock()
		err := p.err
		p.lock.Unlock()
		if err == nil {
			err = io.ErrNoProgress
		}
		return 0, err
	}
}

// Close stops the reader and closes the device.
func (p *Port) Close() error {
	p.lock.Lock()
	p.closed = true
	if p.err == nil {
		p.err = ErrClosed
	}
	p.lock.Unlock()
	return p.port.Close()
}

func (p *Port) readLoop() {
	buf := make([]byte, 64)
	for {
		n, err := p.port.Read(buf)
		for i := 0; i < n; i++ {
			select {
			case p.queue <- buf[i]:
			default:
				// Queue full: the unread bytes are stale telemetry
				// anyway, drop the new byte and let resync recover.
				glog.V(4).Info("serial queue full, byte dropped")
			}
		}
		p.lock.Lock()
		closed := p.closed
		if err != nil && err != io.EOF && !closed && p.err == nil {
			p.err = err
		}
		p.lock.Unlock()
		if closed {
			return
		}
		if err != nil && err != io.EOF {
			glog.Errorf("serial read: %v", err)
			return
		}
	}
}
