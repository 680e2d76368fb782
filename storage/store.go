package storage

// Fingerprint is a deterministic digest of one run's final result. It is the
// only state carried across invocations.
type Fingerprint string

// Store persists the fingerprint of the last successful run. Load reports
// absence (first-ever run) through the second return value.
type Store interface {
	Load() (Fingerprint, bool, error)
	Save(Fingerprint) error
}

// MemoryStore keeps the fingerprint in memory. Tests inject it instead of a
// file or redis backend.
type MemoryStore struct {
	fp  Fingerprint
	set bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load() (Fingerprint, bool, error) {
	return m.fp, m.set, nil
}

func (m *MemoryStore) Save(fp Fingerprint) error {
	m.fp = fp
	m.set = true
	return nil
}
