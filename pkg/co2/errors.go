package co2

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSamples indicates no valid sample is available for a reading.
	ErrNoSamples = errors.New("no samples")
	// ErrInvalidCalibration indicates the zero point is not above the max point.
	ErrInvalidCalibration = errors.New("invalid calibration")
)

// ErrBadRecord indicates the calibration file can't be parsed.
type ErrBadRecord struct {
	Path    string
	Content string
}

// Error implements error.
func (e *ErrBadRecord) Error() string {
	return fmt.Sprintf("bad calibration record in %s: %q", e.Path, e.Content)
}
