package repo

import (
	"DocKeeper/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrantRepository_CreateIfAbsent_Idempotent(t *testing.T) {
	db := newTestDB(t)
	r := NewGrantRepository(db)
	ctx := context.Background()

	// первая вставка — created=true
	created, err := r.CreateIfAbsent(ctx, "f1", 2, model.GrantCoOwner)
	assert.NoError(t, err)
	assert.True(t, created)

	// повторная — created=false, без ошибки
	created, err = r.CreateIfAbsent(ctx, "f1", 2, model.GrantCoOwner)
	assert.NoError(t, err)
	assert.False(t, created)

	ok, err := r.Exists(ctx, "f1", 2, model.GrantCoOwner)
	assert.NoError(t, err)
	assert.True(t, ok)

	// другой пользователь права не имеет
	ok, err = r.Exists(ctx, "f1", 3, model.GrantCoOwner)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestGrantRepository_ListByFile(t *testing.T) {
	db := newTestDB(t)
	r := NewGrantRepository(db)
	ctx := context.Background()

	_, err := r.CreateIfAbsent(ctx, "f1", 2, model.GrantCoOwner)
	assert.NoError(t, err)
	_, err = r.CreateIfAbsent(ctx, "f1", 3, model.GrantCoOwner)
	assert.NoError(t, err)
	_, err = r.CreateIfAbsent(ctx, "f2", 2, model.GrantCoOwner)
	assert.NoError(t, err)

	grants, err := r.ListByFile(ctx, "f1")
	assert.NoError(t, err)
	assert.Len(t, grants, 2)
}
