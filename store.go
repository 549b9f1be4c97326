package custody

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist.
	Get(key []byte) ([]byte, error)
	// Has checks if a key exists.
	Has(key []byte) (bool, error)
	// Iterator over a domain of keys in ascending order. End is
	// exclusive, nil means no boundary.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator over a domain of keys in descending order. End is
	// exclusive, nil means no boundary.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a minimal interface for writing.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a simple interface to get/set data.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	// NewBatch returns a batch that can write multiple ops atomically.
	NewBatch() Batch
}

// Batch accumulates writes that are applied together on Write.
type Batch interface {
	SetDeleter
	Write() error
}

/*
Iterator allows us to access a set of items within a range of keys.

  Usage:

  itr, err := db.Iterator(start, end)
  ...
  defer itr.Release()

  for {
    key, value, err := itr.Next()
    if errors.ErrIteratorDone.Is(err) {
      break
    }
    ...
  }
*/
type Iterator interface {
	// Next moves the iterator to the next key and returns it. When the
	// iterator is exhausted ErrIteratorDone is returned.
	Next() (key, value []byte, err error)
	// Release releases the iterator.
	Release()
}

// CacheableKVStore is a KVStore that supports cache wrapping.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap maintains a scratch-pad of uncommitted data that is visible to
// all queries done through it.
//
// At the end, call Write to use the cached data, or Discard to drop it.
type KVCacheWrap interface {
	CacheableKVStore
	// Write syncs with the underlying store.
	Write() error
	// Discard invalidates this cache wrap and releases all data.
	Discard()
}

// CommitKVStore is a store that persists its state and keeps a history of
// committed versions.
type CommitKVStore interface {
	// Get returns the value at the last committed state.
	Get(key []byte) ([]byte, error)
	// CacheWrap returns a cache to perform actions on.
	CacheWrap() KVCacheWrap
	// Commit the next version to disk and return its info.
	Commit() (CommitID, error)
	// LoadLatestVersion loads the latest persisted version.
	LoadLatestVersion() error
	// LatestVersion returns info on the latest version saved to disk.
	LatestVersion() (CommitID, error)
}

// CommitID contains the tree version number and its merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
