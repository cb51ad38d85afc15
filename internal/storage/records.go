package storage

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"midaxas/internal/core"
)

// RecordStore owns the transaction list. All mutations validate their
// input, update the in-memory list and persist the full state
// atomically before returning; a failed persist rolls the in-memory
// state back so memory and disk never diverge.
type RecordStore struct {
	mu     sync.Mutex
	path   string
	txs    []core.Transaction
	lastID int64

	// now is swappable for tests.
	now func() time.Time
}

// NewRecordStore creates a store backed by the given JSON file.
// Call Load before use.
func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path, now: time.Now}
}

// Load reads the transaction file. A missing file initializes an empty
// list; an unparseable file fails with ErrCorruptData so the caller
// can decide whether to abort or start empty.
func (s *RecordStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var txs []core.Transaction
	found, err := readJSON(s.path, &txs)
	if err != nil {
		return err
	}
	s.txs = txs
	s.lastID = 0
	for _, t := range txs {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	if found {
		slog.Info("Transactions loaded", "file", s.path, "count", len(txs))
	} else {
		slog.Info("Transaction file absent, starting empty", "file", s.path)
	}
	return nil
}

// Add validates the raw inputs, appends a new transaction and persists.
// An empty kind defaults to expense, an empty date to today and an
// empty category to the Uncategorized sentinel. The returned record
// carries the assigned id and creation timestamp.
func (s *RecordStore) Add(kind, date, amount, category, note string) (core.Transaction, error) {
	k, err := core.ParseKind(kind)
	if err != nil {
		return core.Transaction{}, err
	}

	d := core.Today()
	if strings.TrimSpace(date) != "" {
		if d, err = core.ParseDate(date); err != nil {
			return core.Transaction{}, err
		}
	}

	m, err := core.ParseMoney(amount)
	if err != nil {
		return core.Transaction{}, err
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = core.DefaultCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	tx := core.Transaction{
		ID:        s.nextID(now),
		Date:      d,
		Kind:      k,
		Amount:    m,
		Category:  category,
		Note:      strings.TrimSpace(note),
		CreatedAt: now,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.txs = append(s.txs, tx)
	if err := s.persistLocked(); err != nil {
		s.txs = s.txs[:len(s.txs)-1]
		return core.Transaction{}, err
	}
	s.lastID = tx.ID

	slog.Info("Transaction saved",
		"id", tx.ID,
		"type", string(tx.Kind),
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category,
		"date", tx.Date.String())
	return tx, nil
}

// Delete removes all transactions whose id is in ids and persists.
// Unknown ids are ignored, so the operation is idempotent. Returns the
// number of records removed.
func (s *RecordStore) Delete(ids ...int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := s.txs[:0:0]
	for _, t := range s.txs {
		if _, ok := drop[t.ID]; !ok {
			kept = append(kept, t)
		}
	}
	removed := len(s.txs) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	prev := s.txs
	s.txs = kept
	if err := s.persistLocked(); err != nil {
		s.txs = prev
		return 0, err
	}

	slog.Info("Transactions deleted", "count", removed)
	return removed, nil
}

// UndoLast removes the most recently created transaction, judged by
// created_at (ties broken by id), not by list position. Fails with
// ErrEmptyStore when there is nothing to undo.
func (s *RecordStore) UndoLast() (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.txs) == 0 {
		return core.Transaction{}, ErrEmptyStore
	}

	last := 0
	for i := 1; i < len(s.txs); i++ {
		t, lt := s.txs[i], s.txs[last]
		if t.CreatedAt.After(lt.CreatedAt) ||
			(t.CreatedAt.Equal(lt.CreatedAt) && t.ID > lt.ID) {
			last = i
		}
	}

	undone := s.txs[last]
	prev := s.txs
	kept := make([]core.Transaction, 0, len(s.txs)-1)
	kept = append(kept, s.txs[:last]...)
	kept = append(kept, s.txs[last+1:]...)
	s.txs = kept
	if err := s.persistLocked(); err != nil {
		s.txs = prev
		return core.Transaction{}, err
	}

	slog.Info("Transaction undone", "id", undone.ID, "category", undone.Category)
	return undone, nil
}

// ResetAll clears the whole list and persists. Irreversible; callers
// must obtain user confirmation before invoking, this method performs
// none itself.
func (s *RecordStore) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.txs
	s.txs = []core.Transaction{}
	if err := s.persistLocked(); err != nil {
		s.txs = prev
		return err
	}

	slog.Warn("All transactions cleared", "previous_count", len(prev))
	return nil
}

// Snapshot returns a defensive copy of the current list for the
// aggregation functions, never the live slice.
func (s *RecordStore) Snapshot() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// History returns the snapshot ordered newest first by (date,
// created_at), the order the history page presents.
func (s *RecordStore) History() []core.Transaction {
	out := s.Snapshot()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// nextID derives a fresh id from the wall clock in milliseconds,
// bumping past the previous maximum so ids stay unique and
// monotonically increasing even for additions within the same
// millisecond.
func (s *RecordStore) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	return id
}

func (s *RecordStore) persistLocked() error {
	// Marshal an empty list as [], not null, for readers of the file.
	txs := s.txs
	if txs == nil {
		txs = []core.Transaction{}
	}
	return writeJSONAtomic(s.path, txs)
}
