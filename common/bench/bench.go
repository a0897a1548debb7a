package bench

import "time"

// MeasureExec runs exec and reports its wall time, even when exec fails
func MeasureExec(exec func() error) (time.Duration, error) {
	s := time.Now()
	err := exec()
	return time.Since(s), err
}
