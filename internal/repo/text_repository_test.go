package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTextRepository_UpsertReplacesContent(t *testing.T) {
	db := newTestDB(t)
	r := NewTextRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, "f1", "first pass"))
	require.NoError(t, r.Upsert(ctx, "f1", "second pass"))

	got, err := r.GetByFileID(ctx, "f1")
	assert.NoError(t, err)
	assert.Equal(t, "second pass", got.Content)

	_, err = r.GetByFileID(ctx, "missing")
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestTextRepository_SearchFileIDs(t *testing.T) {
	db := newTestDB(t)
	r := NewTextRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, "f1", "annual budget report 2025"))
	require.NoError(t, r.Upsert(ctx, "f2", "meeting notes"))
	require.NoError(t, r.Upsert(ctx, "f3", "budget draft"))

	ids, err := r.SearchFileIDs(ctx, "budget")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"f1", "f3"}, ids)

	ids, err = r.SearchFileIDs(ctx, "nothing here")
	assert.NoError(t, err)
	assert.Empty(t, ids)
}
