package main

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"

	"github.com/bartgrantham/gofm-rds/rds"
)

var ErrInvalidReg = errors.New("invalid register")
var ErrInvalidFreq = errors.New("invalid frequency")
var ErrTimeout = errors.New("timeout")

const (
	minChannel = 87.5
	maxChannel = 107.9
)

// Si4703 reads RDS groups from a Silicon Labs Si4703 over I2C. It only
// does what the decoder needs: power up with RDS on and tune one channel.
type Si4703 struct {
	sync.Mutex
	device i2c.Dev
	Rate   time.Duration
	Reg    [16]uint16

	log   logrus.FieldLogger
	sleep func(time.Duration)
}

const (
	// registers 0..1 are read-only
	DEVICEID = iota
	CHIPID
	// registers 2..7 are read-write
	POWERCFG
	CHANNEL
	SYSCONFIG1
	SYSCONFIG2
	SYSCONFIG3
	OSCILLATOR

	// no registers 8, 9 ; registers a..f are read-only
	_
	_
	STATUSRSSI
	READCHAN
	RDSA
	RDSB
	RDSC
	RDSD
)

const (
	powercfgEnable = 0x0001
	powercfgRDSM   = 0x0800 // verbose RDS: BLERA..D report per block errors
	powercfgDMUTE  = 0x4000
	sysconfig1RDS  = 0x1000
	channelTune    = 0x8000
	statusRDSR     = 0x8000
	statusSTC      = 0x4000
	statusST       = 0x0100
)

func (s *Si4703) String() string {
	return "Si4703"
}

/*
From AN230:
> When using the polling method, it is best not to poll continuously.
> The data will appear in intervals of ~88 ms and the RDSR indicator will be
> available for at least 40 ms, so a polling rate of 40 ms or less should be sufficient.
*/
func NewSi4703(bus i2c.Bus, addr uint16, log logrus.FieldLogger) (*Si4703, error) {
	s := &Si4703{
		device: i2c.Dev{Bus: bus, Addr: addr},
		Rate:   40 * time.Millisecond,
		log:    log,
		sleep:  time.Sleep,
	}
	if err := s.Read(); err != nil {
		return nil, errors.Wrap(err, "si4703 initial read")
	}
	return s, nil
}

// Read refreshes the register cache. The chip always starts reads at
// register 0x0a and wraps around.
func (s *Si4703) Read() error {
	buf := make([]byte, 32)
	s.Lock()
	defer s.Unlock()
	if err := s.device.Tx(nil, buf); err != nil {
		return errors.Wrap(err, "si4703 read")
	}
	for i := 0; i < 16; i++ {
		// (i+10) % 16 == 10, 11, 12, 13, 14, 15, 0, 1....
		s.Reg[(i+10)%16] = uint16(buf[i*2])<<8 | uint16(buf[i*2+1])
	}
	return nil
}

// Set writes one of the read-write registers 2..7. Writes always start at
// register 2, so the cached values of the others are written back.
func (s *Si4703) Set(reg int, val uint16) error {
	if reg < POWERCFG || reg > OSCILLATOR {
		return errors.Wrapf(ErrInvalidReg, "register %d", reg)
	}
	if err := s.Read(); err != nil {
		return err
	}

	s.Lock()
	buf := make([]byte, 12)
	for r := POWERCFG; r <= OSCILLATOR; r++ {
		v := s.Reg[r]
		if r == reg {
			v = val
		}
		// big-endian: high byte comes first
		buf[(r-POWERCFG)*2] = byte(v >> 8)
		buf[(r-POWERCFG)*2+1] = byte(v)
	}
	n, err := s.device.Write(buf)
	s.Unlock()
	if err != nil {
		return errors.Wrap(err, "si4703 write")
	}
	if n != len(buf) {
		return io.ErrShortWrite
	}
	// update our cached state
	return s.Read()
}

// PowerUp starts the oscillator, enables the chip unmuted and turns on RDS
// in verbose mode.
func (s *Si4703) PowerUp() error {
	if err := s.Set(OSCILLATOR, 0x8100); err != nil { // XOSCEN
		return errors.Wrap(err, "oscillator on")
	}
	s.sleep(500 * time.Millisecond) // crystal powerup, AN230

	if err := s.Set(POWERCFG, powercfgDMUTE|powercfgEnable|powercfgRDSM); err != nil {
		return errors.Wrap(err, "enable")
	}
	s.sleep(110 * time.Millisecond) // max powerup time

	if err := s.Set(SYSCONFIG1, s.Reg[SYSCONFIG1]|sysconfig1RDS); err != nil {
		return errors.Wrap(err, "enable rds")
	}
	s.log.WithField("regs", s.Reg).Debug("si4703 powered up")
	return nil
}

/*
Changing the channel:

1. mask off the old channel bits
2. set channel | TUNE
3. send register update
4. wait for STATUSRSSI & STC
5. clear TUNE
*/
func (s *Si4703) SetChannel(ctx context.Context, c float64) error {
	if c < minChannel || c > maxChannel {
		return errors.Wrapf(ErrInvalidFreq, "%.1f MHz", c)
	}

	// 0 == 87.5 ... 5 == 88.5 ... 101 == 107.7 ... 102 == 107.9
	newc := uint16((c-minChannel)/0.2 + 0.5)

	tmp := s.Reg[CHANNEL]
	tmp &= 0xFE00 // mask off old channel
	tmp |= newc
	tmp |= channelTune
	if err := s.Set(CHANNEL, tmp); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	for s.Reg[STATUSRSSI]&statusSTC == 0 {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return errors.Wrapf(ErrTimeout, "tune %.1f MHz", c)
			}
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
		if err := s.Read(); err != nil {
			return err
		}
	}

	if err := s.Set(CHANNEL, s.Reg[CHANNEL]&^channelTune); err != nil {
		return err
	}
	s.log.WithField("channel", c).Info("tuned")
	return nil
}

// Channel is the frequency the chip reports being tuned to, in MHz.
func (s *Si4703) Channel() float64 {
	s.Lock()
	defer s.Unlock()
	return minChannel + 0.2*float64(s.Reg[READCHAN]&0x3ff)
}

func (s *Si4703) RSSI() int {
	s.Lock()
	defer s.Unlock()
	return int(s.Reg[STATUSRSSI] & 0xff)
}

func (s *Si4703) Stereo() bool {
	s.Lock()
	defer s.Unlock()
	return s.Reg[STATUSRSSI]&statusST == statusST
}

// rdsReady reports STATUSRSSI.RDSR from the last Read.
func (s *Si4703) rdsReady() bool {
	s.Lock()
	defer s.Unlock()
	return s.Reg[STATUSRSSI]&statusRDSR != 0
}

// group returns the RDS registers if RDSR is set. ok is false if RDSR is
// clear or any of the blocks had uncorrectable errors.
//
// A : RDSR indicates RDS is ready, BLERA indicate how many errors were corrected
// B : BLERB BLERC BLERD bits indicate how many errors were corrected
// 3 means 6+ errors, the block is unusable
func (s *Si4703) group() (g rds.Group, ok bool) {
	s.Lock()
	defer s.Unlock()

	if s.Reg[STATUSRSSI]&statusRDSR == 0 {
		return g, false
	}
	g = rds.Group{A: s.Reg[RDSA], B: s.Reg[RDSB], C: s.Reg[RDSC], D: s.Reg[RDSD]}
	bler := [4]uint16{
		(s.Reg[STATUSRSSI] >> 9) & 0x3,
		(s.Reg[READCHAN] >> 14) & 0x3,
		(s.Reg[READCHAN] >> 12) & 0x3,
		(s.Reg[READCHAN] >> 10) & 0x3,
	}
	for _, b := range bler {
		if b == 3 {
			return g, false
		}
	}
	return g, true
}

// Run polls the chip every Rate and delivers each ready group once. RDSR
// stays set for at least 40 ms, so a poll can see the same group again; it
// is skipped until RDSR has been seen clear or the registers change. The
// first group is the zero group, so the decoder starts from a clean state.
// Run closes groups when it returns.
func (s *Si4703) Run(ctx context.Context, groups chan<- rds.Group) error {
	defer close(groups)

	select {
	case groups <- rds.Group{}:
	case <-ctx.Done():
		return nil
	}

	ticker := time.NewTicker(s.Rate)
	defer ticker.Stop()

	var last rds.Group
	held := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if err := s.Read(); err != nil {
			return err
		}
		if !s.rdsReady() {
			held = false
			continue
		}
		g, ok := s.group()
		if held && g == last {
			continue
		}
		held, last = true, g
		if !ok {
			continue
		}
		select {
		case groups <- g:
		case <-ctx.Done():
			return nil
		}
	}
}
