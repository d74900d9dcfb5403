package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
)

// ErrAlreadyRunning is returned when another process holds the instance lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	lockPortBase  = 20000
	lockPortRange = 20000
)

// InstanceLock keeps a loopback port bound while the process runs, so a
// second window or terminal session for the same app refuses to start.
type InstanceLock struct {
	mu       sync.Mutex
	listener net.Listener
}

// AcquireSingleInstance binds the lock address for appName.
func AcquireSingleInstance(appName string) (*InstanceLock, error) {
	address := LockAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", address, ErrAlreadyRunning)
	}
	return &InstanceLock{listener: listener}, nil
}

// Release frees the lock. Releasing twice is harmless.
func (lock *InstanceLock) Release() error {
	if lock == nil {
		return nil
	}
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	lock.listener = nil
	return err
}

// LockAddress derives a stable loopback address from the app name.
func LockAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(strings.ToLower(strings.TrimSpace(appName))))
	port := lockPortBase + int(hash.Sum32()%lockPortRange)
	return fmt.Sprintf("127.0.0.1:%d", port)
}
