//go:build windows

package player

import (
	"fmt"
	"os"
)

// Windows has no SIGSTOP equivalent for arbitrary processes; pausing the
// ffplay child is not supported there.

func suspendProcess(process *os.Process) error {
	return fmt.Errorf("pause is not supported on windows")
}

func resumeProcess(process *os.Process) error {
	return fmt.Errorf("resume is not supported on windows")
}
