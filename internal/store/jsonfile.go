// Package store implements the flat-file JSON persistence used by all
// collections: load-recovers-to-empty reads, timestamped write-once backups,
// and atomic rename-on-write saves guarded by a per-store lock.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// File is a single JSON flat-file store. All mutation goes through WithLock
// so concurrent writers within the process cannot lose updates.
type File struct {
	path      string
	backupDir string
	mu        sync.Mutex
}

// NewFile creates a store for path, writing pre-save backups into backupDir.
func NewFile(path, backupDir string) *File {
	return &File{path: path, backupDir: backupDir}
}

// Path returns the store's file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the store into v. A missing or malformed file recovers to the
// zero value: the condition is logged and never surfaced to the caller.
func (f *File) Load(v interface{}) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("store.Load: reading %s: %v", f.path, err)
		}
		return nil
	}
	if !json.Valid(data) {
		log.Printf("store.Load: malformed JSON in %s, treating as empty", f.path)
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("store.Load: decoding %s: %v, treating as empty", f.path, err)
		return nil
	}
	return nil
}

// Save writes v to the store: backup of the prior file first, then a write to
// a temporary path followed by an atomic rename, so a failed write never
// leaves a truncated file at the final path.
func (f *File) Save(v interface{}) error {
	if err := f.backup(); err != nil {
		log.Printf("store.Save: backup failed for %s: %v", f.path, err)
	}

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", f.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

// WithLock runs fn while holding the store's mutex. Read-modify-write
// sequences must run inside fn.
func (f *File) WithLock(fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn()
}

// backup copies the current file to a timestamped .bak that is never
// overwritten; colliding stamps get a numeric suffix.
func (f *File) backup() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(f.backupDir, 0o755); err != nil {
		return err
	}

	stamp := time.Now().Format("20060102_150405")
	base := filepath.Base(f.path)
	for i := 0; ; i++ {
		name := fmt.Sprintf("%s.%s.bak", base, stamp)
		if i > 0 {
			name = fmt.Sprintf("%s.%s_%d.bak", base, stamp, i)
		}
		dst, err := os.OpenFile(filepath.Join(f.backupDir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return err
		}
		if _, err := dst.Write(data); err != nil {
			_ = dst.Close()
			return err
		}
		return dst.Close()
	}
}

// lockRetryInterval and lockTimeout govern cross-process lock acquisition.
const (
	lockRetryInterval = 10 * time.Millisecond
	lockTimeout       = 5 * time.Second
	lockStaleAfter    = 30 * time.Second
)

// AcquireFileLock takes a cross-process exclusive lock by creating
// <path>.lock with O_EXCL. It retries until lockTimeout and treats lock files
// older than lockStaleAfter as abandoned. The returned release function
// removes the lock file.
func (f *File) AcquireFileLock() (release func(), err error) {
	lockPath := f.path + ".lock"
	deadline := time.Now().Add(lockTimeout)
	for {
		fd, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_ = fd.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("acquiring lock %s: %w", lockPath, err)
		}
		if info, statErr := os.Stat(lockPath); statErr == nil && time.Since(info.ModTime()) > lockStaleAfter {
			log.Printf("store.AcquireFileLock: removing stale lock %s", lockPath)
			_ = os.Remove(lockPath)
			continue
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("acquiring lock %s: timed out", lockPath)
		}
		time.Sleep(lockRetryInterval)
	}
}
