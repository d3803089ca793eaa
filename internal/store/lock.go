package store

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// lockRegistry serializes access per (kind,key) within this process and,
// via a pid-stamped sibling ".lock" file, across processes sharing the
// same repository root. A stale lock (holder's pid last touched it more
// than the timeout ago) is reclaimed rather than honored forever, so a
// crashed process never wedges the repository.
type lockRegistry struct {
	mu    sync.Mutex
	inUse map[string]*sync.Mutex
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{inUse: make(map[string]*sync.Mutex)}
}

func (l *lockRegistry) mutexFor(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.inUse[key]
	if !ok {
		m = &sync.Mutex{}
		l.inUse[key] = m
	}
	return m
}

type lockFile struct {
	PID        int       `yaml:"pid"`
	AcquiredAt time.Time `yaml:"acquired_at"`
}

// acquire takes the in-process mutex for key immediately, then the
// cross-process file lock with the configured retry/timeout budget.
// It returns an unlock function that releases both.
func (l *lockRegistry) acquire(key string, t Tunables) (func(), error) {
	m := l.mutexFor(key)
	m.Lock()

	lockPath := key + ".lock"
	timeout := time.Duration(t.LockTimeoutMS) * time.Millisecond
	retries := t.LockRetryCount
	delay := time.Duration(t.LockRetryDelayMS) * time.Millisecond

	attempt := 0
	for {
		ok, err := tryAcquireFile(lockPath, timeout)
		if err != nil {
			m.Unlock()
			return nil, newErr(KindInternal, "store.lock", key, err)
		}
		if ok {
			break
		}
		attempt++
		if attempt > retries {
			m.Unlock()
			return nil, newErr(KindLockTimeout, "store.lock", key, fmt.Errorf("could not acquire lock after %d retries", retries))
		}
		log.Printf("lock on %s held elsewhere, retrying (%d/%d)", lockPath, attempt, retries)
		time.Sleep(delay)
	}

	unlock := func() {
		os.Remove(lockPath)
		m.Unlock()
	}
	return unlock, nil
}

// tryAcquireFile attempts to create the lock file exclusively. If it
// already exists and is older than timeout, it is treated as abandoned by
// a dead process and reclaimed. Returns (true, nil) on success.
func tryAcquireFile(path string, timeout time.Duration) (bool, error) {
	data, err := yaml.Marshal(lockFile{PID: os.Getpid(), AcquiredAt: time.Now().UTC()})
	if err != nil {
		return false, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err == nil {
		if _, werr := f.Write(data); werr != nil {
			f.Close()
			os.Remove(path)
			return false, werr
		}
		return true, f.Close()
	}
	if !os.IsExist(err) {
		return false, err
	}

	// Lock file exists: is it stale?
	existing, rerr := os.ReadFile(path)
	if rerr != nil {
		if os.IsNotExist(rerr) {
			return false, nil // raced with another releaser, retry
		}
		return false, rerr
	}
	var lf lockFile
	if uerr := yaml.Unmarshal(existing, &lf); uerr != nil {
		// Unreadable lock file: treat conservatively as held, let the
		// retry/timeout loop decide.
		return false, nil
	}
	if time.Since(lf.AcquiredAt) <= timeout {
		return false, nil
	}

	// Stale: reclaim by removing and retrying acquisition immediately.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return false, err
	}
	f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return false, nil // someone else reclaimed it first
	}
	if _, werr := f.Write(data); werr != nil {
		f.Close()
		os.Remove(path)
		return false, werr
	}
	return true, f.Close()
}
