// Package pid serializes mutating hwcaps invocations through a pid file.
package pid

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"codeberg.org/mutker/hwcaps/internal/errors"
)

const (
	pidFile     = "hwcaps.pid"
	pidFilePerm = 0o600
	maxAttempts = 3
)

// DefaultPath returns the pid file location in the system temp directory.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), pidFile)
}

// Write records the current process ID in path. The file is created
// exclusively, so only one process can hold it. It fails with
// already_running while another live process holds the file; a file left
// by a dead process is taken over.
func Write(path string) error {
	errFactory := errors.New()
	self := os.Getpid()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		created, err := create(path, self)
		if err != nil {
			return errFactory.Wrap(errors.ErrInternal, err)
		}
		if created {
			return nil
		}

		holder, err := readHolder(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return errFactory.Wrap(errors.ErrInternal, err)
		}
		if holder == self {
			return nil
		}
		if running(holder) {
			return errFactory.WithData(errors.ErrAlreadyRunning, holder)
		}

		if err := takeOver(path, holder); err != nil {
			return err
		}
	}

	return errFactory.WithMessage(errors.ErrAlreadyRunning, "pid file keeps changing: "+path)
}

// create makes path with O_EXCL; created is false when the file exists.
func create(path string, self int) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, pidFilePerm)
	if os.IsExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := f.WriteString(strconv.Itoa(self)); err != nil {
		f.Close()
		os.Remove(path)
		return false, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return false, err
	}
	return true, nil
}

func readHolder(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// takeOver moves a stale pid file aside. The rename is atomic, so of two
// processes racing for the same stale file only one gets it; a file that
// turns out to belong to a new holder is linked back.
func takeOver(path string, stale int) error {
	errFactory := errors.New()

	aside := fmt.Sprintf("%s.stale.%d", path, os.Getpid())
	if err := os.Rename(path, aside); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errFactory.Wrap(errors.ErrInternal, err)
	}
	defer os.Remove(aside)

	holder, err := readHolder(aside)
	if err == nil && holder != stale {
		if err := os.Link(aside, path); err != nil && !os.IsExist(err) {
			return errFactory.Wrap(errors.ErrInternal, err)
		}
		return errFactory.WithData(errors.ErrAlreadyRunning, holder)
	}

	return nil
}

// Remove deletes the pid file.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.New().Wrap(errors.ErrInternal, err)
	}
	return nil
}

func running(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
