//go:build unix

package config

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockFileExclusive blocks until f is exclusively locked.
func lockFileExclusive(f *os.File) error {
	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX)
		if err != unix.EINTR {
			return err
		}
	}
}

func unlockFile(f *os.File) {
	unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
