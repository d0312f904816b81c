package usedcode

import "context"

// NoopStore never reports a code as used, so a code stays valid for its
// whole window. Use it only when replay is mitigated elsewhere.
type NoopStore struct{}

var _ StoreCloser = NoopStore{}

func NewNoopStore() NoopStore { return NoopStore{} }

func (NoopStore) Add(_ context.Context, counter int64, code, userID string) error {
	_, err := newRecord(counter, code, userID)
	return err
}

func (NoopStore) IsUsed(_ context.Context, counter int64, code, userID string) (bool, error) {
	_, err := newRecord(counter, code, userID)
	return false, err
}

func (NoopStore) Close() error { return nil }
