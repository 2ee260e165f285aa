package services

import (
	"time"

	"github.com/comb-labs/comb-cli/internal/core/ports/driven"
)

// Ensure systemClock implements the interface.
var _ driven.Clock = systemClock{}

// systemClock is the default wall-clock implementation of driven.Clock.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Today() string {
	return time.Now().UTC().Format("2006-01-02")
}
