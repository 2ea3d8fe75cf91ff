//go:build rp2040

// Package rp2pwm drives the RP2040 PWM block by writing its registers
// directly. It exists because machine.PWMx only exposes a period, while the
// breathing light needs to set the clock divider and TOP itself.
package rp2pwm

import (
	"runtime/volatile"
	"unsafe"

	"github.com/harveysanders/picobreathe/pwm"
)

const (
	ioBank0Base   = 0x40014000
	padsBank0Base = 0x4001c000
	pwmBase       = 0x40050000

	sliceStride = 0x14 // CSR, DIV, CTR, CC, TOP
	numSlices   = 8

	funcselPWM = 4
	funcselMsk = 0x1f

	padIE = 1 << 6 // input enable
	padOD = 1 << 7 // output disable

	csrEN   = 1 << 0
	csrAINV = 1 << 2
	csrBINV = 1 << 3
)

type sliceRegs struct {
	CSR volatile.Register32
	DIV volatile.Register32
	CTR volatile.Register32
	CC  volatile.Register32
	TOP volatile.Register32
}

// Peripheral is the RP2040 PWM block. The zero value is ready to use.
type Peripheral struct{}

var _ pwm.Peripheral = Peripheral{}

// SetFunction enables the pad input, clears output disable and selects
// the PWM function for gpio.
func (Peripheral) SetFunction(gpio uint8) {
	pad := (*volatile.Register32)(unsafe.Pointer(uintptr(padsBank0Base + 4 + 4*uintptr(gpio))))
	pad.ReplaceBits(padIE, padIE|padOD, 0)

	ctrl := (*volatile.Register32)(unsafe.Pointer(uintptr(ioBank0Base + 8*uintptr(gpio) + 4)))
	ctrl.Set(funcselPWM & funcselMsk)
}

func (Peripheral) Slice(num uint8) pwm.Slice {
	return Slice{regs: slice(num)}
}

func slice(num uint8) *sliceRegs {
	return (*sliceRegs)(unsafe.Pointer(uintptr(pwmBase + sliceStride*uintptr(num%numSlices))))
}

// Slice writes the registers of one PWM slice.
type Slice struct {
	regs *sliceRegs
}

func (s Slice) SetClockDivider(div float32) {
	s.regs.DIV.Set(pwm.DividerBits(div))
}

func (s Slice) SetWrap(wrap uint16) {
	s.regs.TOP.Set(uint32(wrap))
}

// SetChannelLevel writes the compare value of ch, leaving the other channel.
func (s Slice) SetChannelLevel(ch pwm.Channel, level uint16) {
	if ch == pwm.ChannelB {
		s.regs.CC.ReplaceBits(uint32(level), 0xffff, 16)
		return
	}
	s.regs.CC.ReplaceBits(uint32(level), 0xffff, 0)
}

func (s Slice) SetOutputPolarity(invertA, invertB bool) {
	var bits uint32
	if invertA {
		bits |= csrAINV
	}
	if invertB {
		bits |= csrBINV
	}
	s.regs.CSR.ReplaceBits(bits, csrAINV|csrBINV, 0)
}

func (s Slice) SetEnabled(enabled bool) {
	if enabled {
		s.regs.CSR.SetBits(csrEN)
		return
	}
	s.regs.CSR.ClearBits(csrEN)
}
