package contacts

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"

	"contacthub/pkg/models"
	"contacthub/pkg/parser"
)

// Dataset is one uploaded, normalized table held for the session.
type Dataset struct {
	ID         string
	SourceName string
	UploadedAt time.Time
	Table      *models.Table
	Warnings   []parser.Warning

	checksum string
}

// Store keeps session datasets in memory, keyed by UUID handle. Uploads
// of byte-identical content resolve to the already-normalized dataset so
// re-uploading the same file skips the pipeline. Nothing is persisted;
// the store lives and dies with the process.
type Store struct {
	mu         sync.RWMutex
	byID       map[string]*Dataset
	byChecksum map[string]string // sha256 hex -> dataset ID
}

func NewStore() *Store {
	return &Store{
		byID:       make(map[string]*Dataset),
		byChecksum: make(map[string]string),
	}
}

// Checksum is the content-identity key for the upload cache.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Lookup returns the dataset already holding this content, if any.
func (s *Store) Lookup(checksum string) *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.byChecksum[checksum]; ok {
		return s.byID[id]
	}
	return nil
}

// Put registers a freshly normalized table and returns its dataset.
func (s *Store) Put(table *models.Table, sourceName, checksum string, warnings []parser.Warning) *Dataset {
	ds := &Dataset{
		ID:         uuid.New().String(),
		SourceName: sourceName,
		UploadedAt: time.Now().UTC(),
		Table:      table,
		Warnings:   warnings,
		checksum:   checksum,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[ds.ID] = ds
	s.byChecksum[checksum] = ds.ID
	return ds
}

// Get returns the dataset for a handle, or nil.
func (s *Store) Get(id string) *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// Delete drops a dataset. Reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	delete(s.byChecksum, ds.checksum)
	return true
}

// Len reports how many datasets the session holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
