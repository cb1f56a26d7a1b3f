package radar

import (
	"io"
	"time"
)

// fakeClock is a deterministic TimeSource. Components' Idle hooks are
// pointed at advance so waiting moves time forward instead of
// sleeping.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Time() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// testPort is a scripted byte pipe. Reads pop from pending, writes
// are recorded.
type testPort struct {
	pending []byte
	writes  [][]byte
	reads   int
}

func (p *testPort) Write(b []byte) (int, error) {
	cp := make([]byte, len(b))
	copy(cp, b)
	p.writes = append(p.writes, cp)
	return len(b), nil
}

func (p *testPort) Available() int {
	return len(p.pending)
}

func (p *testPort) ReadByte() (byte, error) {
	if len(p.pending) == 0 {
		return 0, io.ErrNoProgress
	}
	b := p.pending[0]
	p.pending = p.pending[1:]
	p.reads++
	return b, nil
}

func (p *testPort) inject(bs ...byte) {
	p.pending = append(p.pending, bs...)
}

// scriptPort replies to each write with the next scripted response,
// emulating the module's request/ack exchange.
type scriptPort struct {
	testPort
	responses [][]byte
}

func (p *scriptPort) Write(b []byte) (int, error) {
	n, err := p.testPort.Write(b)
	if len(p.responses) > 0 {
		p.pending = append(p.pending, p.responses[0]...)
		p.responses = p.responses[1:]
	}
	return n, err
}

func (p *scriptPort) respond(rs ...[]byte) {
	p.responses = append(p.responses, rs...)
}

func newTestDevice() (*Device, *scriptPort, *fakeClock) {
	port := &scriptPort{}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	d := NewWithTime(port, clock)
	d.ack.Idle = clock.advance
	d.stream.Idle = clock.advance
	return d, port, clock
}

// makeAck builds a well-formed ack frame of total bytes for cmd.
func makeAck(cmd byte, total int, status byte, fields ...byte) []byte {
	buf := make([]byte, total)
	copy(buf, []byte{0xFD, 0xFC, 0xFB, 0xFA})
	buf[4] = byte(total - 12)
	buf[6] = cmd
	buf[7] = 0x01
	buf[8] = status
	copy(buf[9:total-4], fields)
	copy(buf[total-4:], []byte{0x04, 0x03, 0x02, 0x01})
	return buf
}

// makeTelemetry builds a well-formed 21-byte telemetry frame.
func makeTelemetry(state byte, movDist uint16, movEnergy byte, statDist uint16, statEnergy byte) []byte {
	buf := make([]byte, 21)
	copy(buf, []byte{0xF4, 0xF3, 0xF2, 0xF1})
	buf[4] = 0x0D // in-frame length, not checked by capture
	buf[6] = 0x02
	buf[7] = 0xAA
	buf[8] = state
	buf[9] = byte(movDist)
	buf[10] = byte(movDist >> 8)
	buf[11] = movEnergy
	buf[12] = byte(statDist)
	buf[13] = byte(statDist >> 8)
	buf[14] = statEnergy
	copy(buf[17:], []byte{0xF8, 0xF7, 0xF6, 0xF5})
	return buf
}
