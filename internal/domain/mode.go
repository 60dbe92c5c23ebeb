package domain

import (
	"fmt"
	"strings"
)

// Mode selects between the two parser generations.
type Mode int

const (
	// ModeTolerant synthesizes missing timestamps and always yields a record
	ModeTolerant Mode = iota
	// ModeStrict requires a strict timestamp and drops lines no specific rule matches
	ModeStrict
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "tolerant"
}

// ParseMode converts "tolerant" or "strict" to a Mode. Empty means tolerant.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tolerant":
		return ModeTolerant, nil
	case "strict":
		return ModeStrict, nil
	}
	return ModeTolerant, fmt.Errorf("unknown mode %q (want tolerant or strict)", s)
}
