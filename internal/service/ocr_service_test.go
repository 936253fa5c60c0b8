package service

import (
	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExtractor подменяет Tesseract: отдаёт заготовленный текст либо ошибку.
type stubExtractor struct {
	text  string
	err   error
	calls int
}

func (e *stubExtractor) ExtractText(path, mimeType string) (string, error) {
	e.calls++
	if e.err != nil {
		return "", e.err
	}
	return e.text, nil
}

// seedQueuedFile кладёт в хранилище настоящий шифртекст и строку очереди OCR.
func seedQueuedFile(t *testing.T, s *repo.Store, vault BlobVault, id string, ownerID int64) *model.File {
	t.Helper()
	path, err := vault.Store(id+".bin", []byte("image-bytes"))
	require.NoError(t, err)
	f := &model.File{
		ID:       id,
		Name:     id + ".png",
		Path:     path,
		MimeType: "image/png",
		OwnerID:  ownerID,
		CopyType: model.CopyTypeSoft,
		Status:   model.FileStatusPendingOCR,
		Metadata: model.JSONB{model.MetaCabinet: model.DigitalCabinet},
	}
	require.NoError(t, s.Files.Create(context.Background(), f))
	return f
}

func TestOCRService_ProcessFile_Success(t *testing.T) {
	s := newTestStore(t)
	vault := newTestVault(t)
	ex := &stubExtractor{text: "recognized text"}
	svc := NewOCRService(s, ex, vault, 3, testLogger())
	ctx := context.Background()

	owner := seedUser(t, s, "owner", model.RoleClient)
	f := seedQueuedFile(t, s, vault, "f1", owner.ID)

	require.NoError(t, svc.ProcessFile(ctx, f.ID))

	got, err := s.Files.GetByID(ctx, f.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.FileStatusOCRComplete, got.Status)

	entry, err := s.Texts.GetByFileID(ctx, f.ID)
	assert.NoError(t, err)
	assert.Equal(t, "recognized text", entry.Content)

	// файл больше не в очереди
	assert.ErrorIs(t, svc.ProcessFile(ctx, f.ID), ErrStale)
}

func TestOCRService_FailureCeiling(t *testing.T) {
	s := newTestStore(t)
	vault := newTestVault(t)
	ex := &stubExtractor{err: errors.New("tesseract crashed")}
	svc := NewOCRService(s, ex, vault, 3, testLogger())
	ctx := context.Background()

	owner := seedUser(t, s, "owner", model.RoleClient)
	f := seedQueuedFile(t, s, vault, "f1", owner.ID)

	// первые две неудачи возвращают файл в очередь
	for i := 1; i <= 2; i++ {
		require.NoError(t, svc.ProcessFile(ctx, f.ID))
		got, err := s.Files.GetByID(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, model.FileStatusPendingOCR, got.Status)
		assert.Equal(t, i, got.OCRAttempts)
	}

	// третья — потолок: ocr_failed навсегда
	require.NoError(t, svc.ProcessFile(ctx, f.ID))
	got, err := s.Files.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FileStatusOCRFailed, got.Status)
	assert.Equal(t, 3, got.OCRAttempts)

	// четвёртая попытка отклоняется, распознаватель не вызывается
	calls := ex.calls
	assert.ErrorIs(t, svc.ProcessFile(ctx, f.ID), ErrStale)
	assert.Equal(t, calls, ex.calls)
}

func TestOCRService_ClaimRace(t *testing.T) {
	s := newTestStore(t)
	vault := newTestVault(t)
	svc := NewOCRService(s, &stubExtractor{text: "x"}, vault, 3, testLogger())
	ctx := context.Background()

	owner := seedUser(t, s, "owner", model.RoleClient)
	f := seedQueuedFile(t, s, vault, "f1", owner.ID)

	// другой воркер уже захватил строку
	claimed, err := s.Files.ClaimForOCR(ctx, f.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	assert.ErrorIs(t, svc.ProcessFile(ctx, f.ID), ErrStale)

	// неизвестный файл
	assert.ErrorIs(t, svc.ProcessFile(ctx, "no-such-file"), ErrStale)
}

func TestOCRService_ProcessNext(t *testing.T) {
	s := newTestStore(t)
	vault := newTestVault(t)
	svc := NewOCRService(s, &stubExtractor{text: "hello"}, vault, 3, testLogger())
	ctx := context.Background()

	// пустая очередь — не ошибка
	handled, err := svc.ProcessNext(ctx)
	assert.NoError(t, err)
	assert.False(t, handled)

	owner := seedUser(t, s, "owner", model.RoleClient)
	seedQueuedFile(t, s, vault, "f1", owner.ID)

	handled, err = svc.ProcessNext(ctx)
	assert.NoError(t, err)
	assert.True(t, handled)

	handled, err = svc.ProcessNext(ctx)
	assert.NoError(t, err)
	assert.False(t, handled)
}
