// Package platform provides OS-facing helpers: the single-instance guard
// and the config directory lookup.
package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minPort = 20000
	maxPort = 39999
)

// Guard holds the single-instance lock: a listener on a localhost port
// derived from the application name.
type Guard struct {
	listener net.Listener
}

// AcquireSingleInstance binds the application's lock port. A port that
// is already taken reports ErrAlreadyRunning.
func AcquireSingleInstance(appName string) (*Guard, error) {
	address := LockAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAlreadyRunning, address, err)
	}
	return &Guard{listener: listener}, nil
}

// Release frees the lock. It is safe on a nil guard.
func (guard *Guard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// Address returns the bound address.
func (guard *Guard) Address() string {
	if guard == nil || guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

// LockAddress is the localhost address used as the lock for appName.
func LockAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := uint32(maxPort - minPort + 1)
	return fmt.Sprintf("127.0.0.1:%d", minPort+int(hash.Sum32()%rangeSize))
}
