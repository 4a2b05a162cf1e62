package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

// pidFile holds the server's PID on disk, optionally under an exclusive
// flock so a second instance refuses to start
type pidFile struct {
	path   string
	file   *os.File
	locked bool
}

func acquirePIDFile(path string, lock bool) (*pidFile, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if !os.IsExist(err) {
			return nil, errors.Wrap(err, "cannot create PID file")
		}

		if lock {
			if pid, alive := staleOwner(path); alive {
				return nil, errors.Errorf("process %d from PID file is still running", pid)
			}
		}

		file, err = os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "cannot open PID file")
		}
	}

	p := &pidFile{path: path, file: file}

	if lock {
		if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
			file.Close()
			if errors.Is(err, syscall.EWOULDBLOCK) {
				return nil, errors.New("cannot acquire lock: another instance is running")
			}
			return nil, errors.Wrap(err, "lock failed")
		}
		p.locked = true
	}

	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		p.Release()
		return nil, errors.Wrap(err, "cannot write PID")
	}
	if err := file.Sync(); err != nil {
		p.Release()
		return nil, errors.Wrap(err, "cannot sync PID file")
	}

	return p, nil
}

// Release unlocks and removes the file
func (p *pidFile) Release() {
	if p.locked {
		syscall.Flock(int(p.file.Fd()), syscall.LOCK_UN)
		p.locked = false
	}
	p.file.Close()
	os.Remove(p.path)
}

// staleOwner reports the PID recorded at path and whether it is alive.
// An unreadable or corrupt file counts as stale.
func staleOwner(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}

	// Signal 0 probes for existence; EPERM still means alive
	proc, _ := os.FindProcess(pid)
	err = proc.Signal(syscall.Signal(0))
	return pid, err == nil || errors.Is(err, syscall.EPERM)
}
