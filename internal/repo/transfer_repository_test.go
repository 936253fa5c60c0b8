package repo

import (
	"DocKeeper/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTransferRepository_PendingLifecycle(t *testing.T) {
	db := newTestDB(t)
	r := NewTransferRepository(db)
	ctx := context.Background()

	tr := &model.FileTransfer{FileID: "f1", SenderID: 1, RecipientID: 2, State: model.TransferPending}
	require.NoError(t, r.Create(ctx, tr))
	assert.NotZero(t, tr.ID)

	got, err := r.GetPending(ctx, "f1", 2)
	assert.NoError(t, err)
	assert.Equal(t, tr.ID, got.ID)

	// переход pending → accepted задевает ровно одну строку
	rows, err := r.UpdateStateFromPending(ctx, tr.ID, model.TransferAccepted)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// повторный переход — ноль строк: состояние уже не pending
	rows, err = r.UpdateStateFromPending(ctx, tr.ID, model.TransferDenied)
	assert.NoError(t, err)
	assert.Zero(t, rows)

	// ожидающей передачи больше нет
	_, err = r.GetPending(ctx, "f1", 2)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestTransferRepository_ExistsActiveDirect(t *testing.T) {
	db := newTestDB(t)
	r := NewTransferRepository(db)
	ctx := context.Background()

	tr := &model.FileTransfer{FileID: "f1", SenderID: 1, RecipientID: 2, State: model.TransferPending}
	require.NoError(t, r.Create(ctx, tr))

	ok, err := r.ExistsActiveDirect(ctx, "f1", 2)
	assert.NoError(t, err)
	assert.True(t, ok)

	// accepted — тоже активная
	_, err = r.UpdateStateFromPending(ctx, tr.ID, model.TransferAccepted)
	require.NoError(t, err)
	ok, err = r.ExistsActiveDirect(ctx, "f1", 2)
	assert.NoError(t, err)
	assert.True(t, ok)

	// другой получатель — нет
	ok, err = r.ExistsActiveDirect(ctx, "f1", 3)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestTransferRepository_ExistsActiveDirect_IgnoresDeniedAndDeptRows(t *testing.T) {
	db := newTestDB(t)
	r := NewTransferRepository(db)
	ctx := context.Background()

	denied := &model.FileTransfer{FileID: "f2", SenderID: 1, RecipientID: 2, State: model.TransferDenied}
	require.NoError(t, r.Create(ctx, denied))

	// передача в контексте подразделения не считается личной
	mid := int64(5)
	dept := &model.FileTransfer{FileID: "f2", SenderID: 1, RecipientID: 3, MemberID: &mid, State: model.TransferPending}
	require.NoError(t, r.Create(ctx, dept))

	ok, err := r.ExistsActiveDirect(ctx, "f2", 2)
	assert.NoError(t, err)
	assert.False(t, ok)
	ok, err = r.ExistsActiveDirect(ctx, "f2", 3)
	assert.NoError(t, err)
	assert.False(t, ok)

	// но она видна через членство
	ok, err = r.ExistsActiveForMembers(ctx, "f2", []int64{5})
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.ExistsActiveForMembers(ctx, "f2", []int64{6})
	assert.NoError(t, err)
	assert.False(t, ok)

	// пустой список членств — false без запроса к БД
	ok, err = r.ExistsActiveForMembers(ctx, "f2", nil)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestTransferRepository_ListForRecipient(t *testing.T) {
	db := newTestDB(t)
	r := NewTransferRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &model.FileTransfer{FileID: "a", SenderID: 1, RecipientID: 2, State: model.TransferPending}))
	require.NoError(t, r.Create(ctx, &model.FileTransfer{FileID: "b", SenderID: 1, RecipientID: 2, State: model.TransferAccepted}))
	require.NoError(t, r.Create(ctx, &model.FileTransfer{FileID: "c", SenderID: 1, RecipientID: 3, State: model.TransferPending}))

	got, err := r.ListForRecipient(ctx, 2, model.TransferPending)
	assert.NoError(t, err)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "a", got[0].FileID)
	}
}
