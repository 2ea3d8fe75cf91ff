// Package breathe ramps PWM outputs up and down, one after the other, to make
// a breathing light.
package breathe

// Ramp returns the duty values of one breath: 0 up to 100 in increments of
// step, then 100 back down to 0. Both legs include their end points, so the
// peak is written twice. A step outside 1..100 is treated as 1.
func Ramp(step int) []int {
	if step < 1 || step > 100 {
		step = 1
	}
	duties := make([]int, 0, 2*(100/step+1))
	for duty := 0; duty <= 100; duty += step {
		duties = append(duties, duty)
	}
	for duty := 100; duty >= 0; duty -= step {
		duties = append(duties, duty)
	}
	return duties
}
