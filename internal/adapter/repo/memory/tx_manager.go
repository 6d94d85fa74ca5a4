package memory

import "context"

type txKeyType struct{}

var txKey = txKeyType{}

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx holds the store lock for the whole callback. Repos called with the
// returned context skip their own locking.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	savedState := t.store.state
	savedEvents := len(t.store.events)
	if err := fn(context.WithValue(ctx, txKey, true)); err != nil {
		t.store.state = savedState
		t.store.events = t.store.events[:savedEvents]
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey).(bool)
	return v
}
