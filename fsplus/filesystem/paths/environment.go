package paths

import (
	"os"
	"runtime"
)

// Environment is the platform state the resolver consults. Tests replace it
// to exercise other platforms' rules on any host.
type Environment struct {
	GOOS   string
	Getenv func(key string) string
}

// DefaultEnvironment describes the running process
func DefaultEnvironment() Environment {
	return Environment{
		GOOS:   runtime.GOOS,
		Getenv: os.Getenv,
	}
}

func (e Environment) windows() bool {
	return e.GOOS == "windows"
}

func (e Environment) separator() string {
	if e.windows() {
		return `\`
	}
	return "/"
}

func (e Environment) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}
