//go:build rp2040

package main

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/hd44780i2c"
)

// configureLCD sets up I2C0 on GP4/GP5 and initializes an HD44780 LCD
// behind a PCF8574 backpack. The first responding common address
// (0x27, 0x3F) is used.
func configureLCD(i2c *machine.I2C) (hd44780i2c.Device, error) {
	var lcd hd44780i2c.Device

	err := i2c.Configure(machine.I2CConfig{
		SDA: machine.GP4,
		SCL: machine.GP5,
	})
	if err != nil {
		return lcd, errors.New("configure I2C: " + err.Error())
	}

	var probe [1]byte
	for _, addr := range []uint8{0x27, 0x3F} {
		// Reading the expander port only succeeds when a device ACKs addr.
		if err := i2c.Tx(uint16(addr), nil, probe[:]); err != nil {
			continue
		}
		lcd = hd44780i2c.New(i2c, addr)
		lcd.Configure(hd44780i2c.Config{
			Width:  16,
			Height: 2,
		})
		return lcd, nil
	}
	return lcd, errors.New("LCD not found on addresses: 0x27, 0x3f")
}
