package cli

import "logsift/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile string
	EnvFile    string
	Strict     bool
	Workers    int
	Verbose    bool
	NameFilter string
	JSON       bool
	Out        string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile: f.ConfigFile,
		EnvFile:    f.EnvFile,
		Strict:     f.Strict,
		Workers:    f.Workers,
		Verbose:    f.Verbose,
		NameFilter: f.NameFilter,
		JSON:       f.JSON,
		Out:        f.Out,
	}
}
