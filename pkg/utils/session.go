package utils

import (
	"os"

	"github.com/google/uuid"
)

// NewSessionID returns a random identifier for one recorder run.
func NewSessionID() string {
	return uuid.NewString()
}

func GetHostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
