package service

import (
	"DocKeeper/internal/model"
	"DocKeeper/internal/ocr"
	"DocKeeper/internal/repo"
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OCRService — конвейер распознавания. Воркер захватывает строку очереди
// условным обновлением статуса, так что параллельные запуски не берут один
// файл дважды. После третьей неудачи файл навсегда помечается ocr_failed,
// четвёртая попытка отклоняется.
type OCRService struct {
	store       *repo.Store
	extractor   ocr.Extractor
	vault       BlobVault
	maxAttempts int
	logger      *zap.SugaredLogger
}

func NewOCRService(store *repo.Store, extractor ocr.Extractor, vault BlobVault, maxAttempts int, logger *zap.SugaredLogger) *OCRService {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &OCRService{store: store, extractor: extractor, vault: vault, maxAttempts: maxAttempts, logger: logger}
}

// ProcessNext берёт самый старый файл из очереди. Возвращает false,
// если очередь пуста.
func (s *OCRService) ProcessNext(ctx context.Context) (bool, error) {
	f, err := s.store.Files.NextPendingOCR(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.ProcessFile(ctx, f.ID); err != nil && !errors.Is(err, ErrStale) {
		return true, err
	}
	return true, nil
}

// ProcessFile распознаёт один файл. ErrStale — файл не в очереди: уже
// захвачен другим воркером, обработан либо исчерпал попытки.
func (s *OCRService) ProcessFile(ctx context.Context, fileID string) error {
	f, err := s.store.Files.GetByID(ctx, fileID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStale
	}
	if err != nil {
		return err
	}
	if f.OCRAttempts >= s.maxAttempts {
		return ErrStale
	}

	claimed, err := s.store.Files.ClaimForOCR(ctx, fileID)
	if err != nil {
		return err
	}
	if !claimed {
		return ErrStale
	}

	text, err := s.extract(f)
	if err != nil {
		return s.fail(ctx, f, err)
	}

	err = s.store.Atomic(ctx, func(tx *repo.Store) error {
		if err := tx.Texts.Upsert(ctx, fileID, text); err != nil {
			return err
		}
		if err := tx.Files.SetStatus(ctx, fileID, model.FileStatusOCRComplete); err != nil {
			return err
		}
		return tx.Audit.Append(ctx, &model.AuditEvent{
			ActorID: f.OwnerID,
			FileID:  &f.ID,
			Action:  model.AuditOCR,
			Detail:  "complete",
		})
	})
	if err != nil {
		return err
	}
	s.logger.Infow("ocr complete", "file_id", fileID, "chars", len(text))
	return nil
}

// extract расшифровывает файл во временный путь и зовёт распознаватель.
func (s *OCRService) extract(f *model.File) (string, error) {
	plain, err := s.vault.Load(f.Path)
	if err != nil {
		return "", err
	}
	tmp := filepath.Join(os.TempDir(), "dockeeper-ocr-"+f.ID+filepath.Ext(f.Name))
	if err := os.WriteFile(tmp, plain, 0o600); err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(tmp) }()
	return s.extractor.ExtractText(tmp, f.MimeType)
}

// fail фиксирует неудачу: до потолка файл возвращается в очередь,
// на потолке — ocr_failed навсегда.
func (s *OCRService) fail(ctx context.Context, f *model.File, cause error) error {
	status := model.FileStatusPendingOCR
	if f.OCRAttempts+1 >= s.maxAttempts {
		status = model.FileStatusOCRFailed
	}
	s.logger.Warnw("ocr attempt failed",
		"file_id", f.ID,
		"attempt", f.OCRAttempts+1,
		"status", status,
		"error", cause,
	)
	if err := s.store.Files.RecordOCRFailure(ctx, f.ID, status); err != nil {
		return err
	}
	return s.store.Audit.Append(ctx, &model.AuditEvent{
		ActorID: f.OwnerID,
		FileID:  &f.ID,
		Action:  model.AuditOCR,
		Detail:  "failed: " + cause.Error(),
	})
}
