// Package fs stores the itinerary as a single JSON file on disk: one
// array of stops under a fixed filename, rewritten whole on every save.
package fs

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"sync"

	"github.com/byxorna/stopover/pkg/db"
	v1 "github.com/byxorna/stopover/pkg/types/v1"
	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

var (
	// StorageFilename is the fixed key the stop collection lives under.
	StorageFilename = "itinerary.json"
)

type Store struct {
	*sync.Mutex
	Directory string

	status  v1.SyncStatus
	watcher *fsnotify.Watcher
	events  chan struct{}
	closed  bool
}

// New opens (and if needed creates) the storage directory and starts
// watching it for external edits to the itinerary file.
func New(dir string, createDirIfMissing bool) (*Store, error) {
	expandedPath, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}

	s := Store{
		Mutex:     &sync.Mutex{},
		Directory: expandedPath,
		status:    v1.StatusUninitialized,
		events:    make(chan struct{}, 1),
	}

	finfo, err := os.Stat(expandedPath)
	if err != nil || !finfo.IsDir() {
		if !createDirIfMissing {
			return nil, fmt.Errorf("storage directory %s does not exist", expandedPath)
		}
		if err := os.MkdirAll(expandedPath, 0700); err != nil {
			return nil, fmt.Errorf("error creating %s: %w", expandedPath, err)
		}
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("unable to create watcher: %w", err)
	}

	s.status = v1.StatusOK
	return &s, nil
}

func (s *Store) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(s.Directory); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("unable to watch %s: %w", s.Directory, err)
	}

	s.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.Path() {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Remove) {
					// coalesce; a dropped signal is fine, the next
					// one triggers the same full reload
					select {
					case s.events <- struct{}{}:
					default:
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("watcher error: %v", err)
			}
		}
	}()
	return nil
}

// Load reads the whole collection. A missing or unreadable file, or a
// file that does not parse as a stop array, yields an empty itinerary
// rather than an error.
func (s *Store) Load() ([]v1.Stop, error) {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return nil, db.ErrStoreClosed
	}

	bytes, err := os.ReadFile(s.Path())
	if err != nil {
		return []v1.Stop{}, nil
	}

	var stops []v1.Stop
	if err := json.Unmarshal(bytes, &stops); err != nil {
		log.Printf("ignoring malformed itinerary at %s: %v", s.Path(), err)
		return []v1.Stop{}, nil
	}
	return stops, nil
}

// Save rewrites the record with the given stops.
func (s *Store) Save(stops []v1.Stop) error {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return db.ErrStoreClosed
	}

	s.status = v1.StatusSynchronizing

	if stops == nil {
		stops = []v1.Stop{}
	}
	bytes, err := json.MarshalIndent(stops, "", "  ")
	if err != nil {
		s.status = v1.StatusError
		return fmt.Errorf("unable to marshal itinerary: %w", err)
	}

	f, err := os.OpenFile(s.Path(), os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		s.status = v1.StatusError
		return err
	}
	defer f.Close()

	if _, err := f.Write(bytes); err != nil {
		s.status = v1.StatusError
		return fmt.Errorf("unable to write itinerary: %w", err)
	}

	if err := f.Sync(); err != nil {
		s.status = v1.StatusError
		return fmt.Errorf("unable to sync itinerary: %w", err)
	}

	s.status = v1.StatusOK
	return nil
}

// Clear erases the persisted record.
func (s *Store) Clear() error {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return db.ErrStoreClosed
	}

	err := os.Remove(s.Path())
	if err != nil && !os.IsNotExist(err) {
		s.status = v1.StatusError
		return fmt.Errorf("unable to clear itinerary: %w", err)
	}
	s.status = v1.StatusOK
	return nil
}

func (s *Store) Events() <-chan struct{} {
	return s.events
}

func (s *Store) Path() string {
	return path.Join(s.Directory, StorageFilename)
}

func (s *Store) Status() v1.SyncStatus {
	s.Lock()
	defer s.Unlock()
	return s.status
}

func (s *Store) Close() error {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
