package repo

import (
	"DocKeeper/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Atomic_CommitsAll(t *testing.T) {
	db := newTestDB(t)
	s := NewStore(db)
	ctx := context.Background()

	err := s.Atomic(ctx, func(tx *Store) error {
		if err := tx.Transfers.Create(ctx, &model.FileTransfer{FileID: "f1", SenderID: 1, RecipientID: 2}); err != nil {
			return err
		}
		fid := "f1"
		return tx.Notifications.Create(ctx, &model.Notification{UserID: 2, FileID: &fid, Kind: model.NotifyFileReceived})
	})
	require.NoError(t, err)

	ts, err := s.Transfers.ListForRecipient(ctx, 2, model.TransferPending)
	assert.NoError(t, err)
	assert.Len(t, ts, 1)
	ns, err := s.Notifications.ListByUser(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, ns, 1)
}

func TestStore_Atomic_RollsBackAllOnError(t *testing.T) {
	db := newTestDB(t)
	s := NewStore(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Atomic(ctx, func(tx *Store) error {
		if err := tx.Transfers.Create(ctx, &model.FileTransfer{FileID: "f1", SenderID: 1, RecipientID: 2}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// вставка из неудавшейся последовательности не видна
	ts, err := s.Transfers.ListForRecipient(ctx, 2, model.TransferPending)
	assert.NoError(t, err)
	assert.Empty(t, ts)
}

// failEveryNotifications подменяет NotificationRepository так, что каждая
// вставка падает. Проверяем, что опции Store доезжают до транзакционных копий.
type failEveryNotifications struct {
	NotificationRepository
}

func (f *failEveryNotifications) Create(ctx context.Context, n *model.Notification) error {
	return errors.New("notification insert failed")
}

func TestStore_Options_ApplyInsideAtomic(t *testing.T) {
	db := newTestDB(t)
	s := NewStore(db, func(st *Store) {
		st.Notifications = &failEveryNotifications{st.Notifications}
	})
	ctx := context.Background()

	err := s.Atomic(ctx, func(tx *Store) error {
		if err := tx.Transfers.Create(ctx, &model.FileTransfer{FileID: "f1", SenderID: 1, RecipientID: 2}); err != nil {
			return err
		}
		return tx.Notifications.Create(ctx, &model.Notification{UserID: 2})
	})
	assert.Error(t, err)

	ts, err := s.Transfers.ListForRecipient(ctx, 2, model.TransferPending)
	assert.NoError(t, err)
	assert.Empty(t, ts)
}
