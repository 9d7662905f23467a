//go:build !windows

package player

import (
	"os"
	"syscall"
)

// suspendProcess pauses a running process with SIGSTOP
func suspendProcess(process *os.Process) error {
	return process.Signal(syscall.SIGSTOP)
}

// resumeProcess continues a suspended process with SIGCONT
func resumeProcess(process *os.Process) error {
	return process.Signal(syscall.SIGCONT)
}
