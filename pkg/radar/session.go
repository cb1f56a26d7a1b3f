package radar

import (
	"github.com/golang/glog"

	"github.com/wavesense/ld2412.go/pkg/radar/frame"
)

// enableConfigValue selects protocol version 1.
var enableConfigValue = []byte{0x00, 0x01, 0x00}

// ConfigSession brackets every configuration exchange between
// enable-config and disable-config commands. The device only accepts
// configuration commands while config mode is active, and telemetry
// streaming resumes once it is left.
type ConfigSession struct {
	ch     *AckChannel
	locked bool
}

// NewConfigSession wraps an AckChannel.
func NewConfigSession(ch *AckChannel) *ConfigSession {
	return &ConfigSession{ch: ch}
}

// Locked reports whether config mode is currently active.
func (s *ConfigSession) Locked() bool {
	return s.locked
}

// Do performs one bracketed exchange: enter config mode, run the
// command, leave config mode. Leaving is attempted even when the
// inner command failed, but only if entering succeeded. The inner
// exchange's result is returned either way.
func (s *ConfigSession) Do(cmd byte, payload []byte, ackLen int) ([]byte, error) {
	if err := s.enter(); err != nil {
		return nil, err
	}
	fields, err := s.ch.Exchange(cmd, payload, ackLen)
	s.exit()
	return fields, err
}

func (s *ConfigSession) enter() error {
	_, err := s.ch.Exchange(frame.CmdEnableConfig, enableConfigValue, frame.AckLenConfig)
	if err != nil {
		return err
	}
	s.locked = true
	return nil
}

// exit is best-effort: a failure leaves the device locked until the
// next enter, which the module tolerates.
func (s *ConfigSession) exit() {
	if !s.locked {
		return
	}
	if _, err := s.ch.Exchange(frame.CmdDisableConfig, []byte{0x00}, frame.AckLenConfig); err != nil {
		glog.V(2).Infof("disable config: %v", err)
	}
	s.locked = false
}
