package midi

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"roto-bridge/debug"
	"roto-bridge/sysex"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var sysexSendCount uint64

// SysexSent returns the number of frames sent to any Roto-Control.
func SysexSent() uint64 {
	return atomic.LoadUint64(&sysexSendCount)
}

// RotoController talks to a Melbourne Instruments Roto-Control over its
// DAW port.
type RotoController struct {
	id       string
	outPort  drivers.Out
	inPort   drivers.In
	send     func(msg gomidi.Message) error
	stopFunc func()
	delay    time.Duration

	// sendMu keeps paced frames from interleaving.
	sendMu sync.Mutex

	msgChan chan []byte
	once    sync.Once
}

// NewRotoController opens the ports of a Roto-Control. delay is the pause
// after each sysex frame; it never goes below sysex.SendDelay.
func NewRotoController(id string, inPort drivers.In, outPort drivers.Out, delay time.Duration) (*RotoController, error) {
	rc := &RotoController{
		id:      id,
		inPort:  inPort,
		outPort: outPort,
		delay:   max(delay, sysex.SendDelay),
		msgChan: make(chan []byte, 256),
	}

	// Open output
	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		rc.send = send
	}

	// Open input
	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			raw := append([]byte(nil), msg.Bytes()...)
			select {
			case rc.msgChan <- raw:
			default:
				debug.Log("midi", "%s: inbound queue full, dropped % x", rc.id, raw)
			}
		}, gomidi.UseSysEx(), gomidi.HandleError(func(err error) {
			debug.Log("midi", "%s: listen: %v", rc.id, err)
		}))
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		rc.stopFunc = stop
	}

	debug.Log("midi", "opened %s (sysex delay %v)", id, rc.delay)
	return rc, nil
}

func (rc *RotoController) ID() string {
	return rc.id
}

func (rc *RotoController) Type() ControllerType {
	return ControllerRoto
}

func (rc *RotoController) Messages() <-chan []byte {
	return rc.msgChan
}

// SendSysex sends one frame and then waits for the pacing delay, which the
// hardware needs to keep up.
func (rc *RotoController) SendSysex(m sysex.Message) error {
	if rc.send == nil {
		return nil
	}
	rc.sendMu.Lock()
	defer rc.sendMu.Unlock()

	err := rc.send(gomidi.SysEx(m.Body()))
	atomic.AddUint64(&sysexSendCount, 1)
	time.Sleep(rc.delay)
	if err != nil {
		return fmt.Errorf("send %s: %w", m, err)
	}
	return nil
}

// SendCC sends LED feedback.
func (rc *RotoController) SendCC(channel, cc, value uint8) error {
	if rc.send == nil {
		return nil
	}
	rc.sendMu.Lock()
	defer rc.sendMu.Unlock()
	if err := rc.send(gomidi.ControlChange(channel, cc, value)); err != nil {
		return fmt.Errorf("send cc %d: %w", cc, err)
	}
	return nil
}

func (rc *RotoController) Close() error {
	rc.once.Do(func() {
		if rc.stopFunc != nil {
			rc.stopFunc()
		}
		close(rc.msgChan)
	})
	return nil
}

func isRoto(name, match string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(match))
}
