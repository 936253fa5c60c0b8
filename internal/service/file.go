package service

import (
	"DocKeeper/internal/model"
	"DocKeeper/internal/ocr"
	"DocKeeper/internal/repo"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BlobVault — коллаборатор шифрования при хранении: записали шифртекст,
// по тому же ключу получили исходные байты. Ошибка расшифровки — фатальная
// ошибка чтения.
type BlobVault interface {
	Store(name string, plain []byte) (string, error)
	Load(path string) ([]byte, error)
}

// FileService — загрузка, выдача и мягкое удаление файлов архива.
type FileService struct {
	store   *repo.Store
	access  *AccessService
	storage *StorageService
	vault   BlobVault
	logger  *zap.SugaredLogger
}

func NewFileService(store *repo.Store, access *AccessService, storage *StorageService, vault BlobVault, logger *zap.SugaredLogger) *FileService {
	return &FileService{store: store, access: access, storage: storage, vault: vault, logger: logger}
}

// UploadInput — параметры загрузки одного файла.
type UploadInput struct {
	Name           string
	MimeType       string
	Content        []byte
	DocumentTypeID *int64
	CopyType       model.CopyType
	DepartmentID   int64
	Metadata       model.JSONB
}

// Upload валидирует метаданные, шифрует содержимое и создаёт строку файла.
// Жёсткая копия встаёт в свой шкаф со своими координатами; цифровая
// попадает в шкаф Digital и в очередь OCR, если тип распознаваем.
func (s *FileService) Upload(ctx context.Context, ownerID int64, in UploadInput) (*model.File, error) {
	if in.Name == "" || len(in.Content) == 0 {
		return nil, &ValidationError{Reason: "file name and content are required"}
	}
	if in.MimeType == "" {
		in.MimeType = ocr.MimeByExt(in.Name)
	}
	if in.Metadata == nil {
		in.Metadata = model.JSONB{}
	}

	// валидация до каких-либо мутаций
	if err := s.validateDocType(ctx, in.DocumentTypeID, in.Metadata); err != nil {
		return nil, err
	}

	var parentID string
	var err error
	switch in.CopyType {
	case model.CopyTypeHard:
		cab, _ := in.Metadata[model.MetaCabinet].(string)
		if cab == "" || cab == model.DigitalCabinet {
			return nil, &ValidationError{Reason: "hard copy requires a cabinet name"}
		}
		for _, k := range []string{model.MetaLayer, model.MetaBox, model.MetaFolder} {
			if _, ok := metaInt(in.Metadata, k); !ok {
				return nil, &ValidationError{Reason: "malformed storage coordinates"}
			}
		}
		parentID, err = s.storage.ResolveOrCreateCabinet(ctx, ownerID, cab, in.DepartmentID)
	case model.CopyTypeSoft:
		// сентинельный шкаф, координаты не имеют смысла
		in.Metadata[model.MetaCabinet] = model.DigitalCabinet
		delete(in.Metadata, model.MetaLayer)
		delete(in.Metadata, model.MetaBox)
		delete(in.Metadata, model.MetaFolder)
		parentID, err = s.storage.ResolveOrCreateCabinet(ctx, ownerID, model.DigitalCabinet, in.DepartmentID)
	default:
		return nil, &ValidationError{Reason: "unknown copy type"}
	}
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	path, err := s.vault.Store(id+".bin", in.Content)
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	status := model.FileStatusActive
	if in.CopyType == model.CopyTypeSoft && ocr.Supported(in.MimeType) {
		status = model.FileStatusPendingOCR
	}

	f := &model.File{
		ID:             id,
		Name:           in.Name,
		Path:           path,
		Size:           int64(len(in.Content)),
		MimeType:       in.MimeType,
		OwnerID:        ownerID,
		DocumentTypeID: in.DocumentTypeID,
		ParentID:       &parentID,
		CopyType:       in.CopyType,
		Status:         status,
		Metadata:       in.Metadata,
	}
	err = s.store.Atomic(ctx, func(tx *repo.Store) error {
		if err := tx.Files.Create(ctx, f); err != nil {
			return err
		}
		return tx.Audit.Append(ctx, &model.AuditEvent{
			ActorID: ownerID,
			FileID:  &f.ID,
			Action:  model.AuditUpload,
			Detail:  string(in.CopyType),
		})
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// validateDocType сверяет метаданные с обязательными полями типа документа.
func (s *FileService) validateDocType(ctx context.Context, typeID *int64, meta model.JSONB) error {
	if typeID == nil {
		return nil
	}
	t, err := s.store.DocumentTypes.GetType(ctx, *typeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ValidationError{Reason: "unknown document type"}
	}
	if err != nil {
		return err
	}
	var missing []string
	for _, fld := range t.Fields {
		if !fld.Required {
			continue
		}
		v, ok := meta[fld.Name]
		if !ok || v == nil || v == "" {
			missing = append(missing, fld.Name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Fetch отдаёт расшифрованное содержимое файла после проверки доступа.
// mode различает download и preview в журнале действий.
func (s *FileService) Fetch(ctx context.Context, userID int64, fileID string, mode AccessMode) (*model.File, []byte, error) {
	f, err := s.access.Require(ctx, userID, fileID, mode)
	if err != nil {
		return nil, nil, err
	}
	if f.Path == "" {
		// структурный узел шкафа, содержимого нет
		return nil, nil, ErrNotFound
	}
	plain, err := s.vault.Load(f.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("load blob: %w", err)
	}

	action := model.AuditDownload
	if mode == ModePreview {
		action = model.AuditPreview
	}
	if err := s.store.Audit.Append(ctx, &model.AuditEvent{
		ActorID: userID,
		FileID:  &fileID,
		Action:  action,
	}); err != nil {
		s.logger.Warnw("audit append failed", "file_id", fileID, "error", err)
	}
	return f, plain, nil
}

// Delete — мягкое удаление: статус deleted, строка и шифртекст остаются.
// Разрешено только владельцу.
func (s *FileService) Delete(ctx context.Context, userID int64, fileID string) error {
	f, err := s.access.Require(ctx, userID, fileID, ModeView)
	if err != nil {
		return err
	}
	if f.OwnerID != userID {
		return ErrForbidden
	}
	return s.store.Atomic(ctx, func(tx *repo.Store) error {
		if err := tx.Files.SoftDelete(ctx, fileID); err != nil {
			return err
		}
		return tx.Audit.Append(ctx, &model.AuditEvent{
			ActorID: userID,
			FileID:  &fileID,
			Action:  model.AuditDelete,
		})
	})
}

// ListOwn — файлы пользователя, без удалённых и без узлов-шкафов.
func (s *FileService) ListOwn(ctx context.Context, userID int64) ([]model.File, error) {
	return s.store.Files.ListByOwner(ctx, userID)
}

// Search — полнотекстовый поиск по распознанному содержимому;
// в выдаче только файлы, доступные пользователю.
func (s *FileService) Search(ctx context.Context, userID int64, query string) ([]model.File, error) {
	if query == "" {
		return nil, &ValidationError{Reason: "empty search query"}
	}
	ids, err := s.store.Texts.SearchFileIDs(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]model.File, 0, len(ids))
	for _, id := range ids {
		f, err := s.access.Require(ctx, userID, id, ModeView)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, nil
}
