package service

import (
	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StorageService — дерево физического размещения: шкаф → полка → коробка
// → папка. Шкаф представлен корневой строкой files без содержимого;
// координаты листа лежат в его метаданных.
type StorageService struct {
	store *repo.Store
}

func NewStorageService(store *repo.Store) *StorageService {
	return &StorageService{store: store}
}

// Slot — физические координаты одного документа.
type Slot struct {
	Cabinet string `json:"cabinet"`
	Layer   int    `json:"layer"`
	Box     int    `json:"box"`
	Folder  int    `json:"folder"`
}

// FileRef — документ в папке.
type FileRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderInfo — занятость папки и лежащие в ней документы.
type FolderInfo struct {
	Occupied bool      `json:"occupied"`
	Files    []FileRef `json:"files"`
}

// LocationTree — трёхуровневая карта полка → коробка → папка.
type LocationTree map[int]map[int]map[int]*FolderInfo

// ResolveOrCreateCabinet возвращает ID корневого узла шкафа с данным
// именем, создавая узел при отсутствии. Повторный вызов с тем же именем
// возвращает тот же ID.
func (s *StorageService) ResolveOrCreateCabinet(ctx context.Context, actorID int64, name string, departmentID int64) (string, error) {
	if name == "" {
		return "", &ValidationError{Reason: "cabinet name is empty"}
	}

	cabinets, err := s.store.Files.ListCabinets(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range cabinets {
		if cab, ok := c.Metadata[model.MetaCabinet].(string); ok && cab == name {
			return c.ID, nil
		}
	}

	// новый шкаф: структурный узел без физического содержимого
	cab := &model.File{
		ID:       uuid.NewString(),
		Name:     name,
		OwnerID:  actorID,
		CopyType: model.CopyTypeHard,
		Status:   model.FileStatusActive,
		Metadata: model.JSONB{
			model.MetaCabinet: name,
			"department":      departmentID,
		},
	}
	if name == model.DigitalCabinet {
		cab.CopyType = model.CopyTypeSoft
	}
	if err := s.store.Files.Create(ctx, cab); err != nil {
		return "", err
	}
	return cab.ID, nil
}

// FetchStorageLocations группирует содержимое шкафа по координатам
// (layer, box, folder) из метаданных каждого листа.
func (s *StorageService) FetchStorageLocations(ctx context.Context, cabinetID string) (LocationTree, error) {
	if _, err := s.store.Files.GetByID(ctx, cabinetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	children, err := s.store.Files.ListChildren(ctx, cabinetID)
	if err != nil {
		return nil, err
	}

	tree := LocationTree{}
	for _, f := range children {
		layer, ok1 := metaInt(f.Metadata, model.MetaLayer)
		box, ok2 := metaInt(f.Metadata, model.MetaBox)
		folder, ok3 := metaInt(f.Metadata, model.MetaFolder)
		if !ok1 || !ok2 || !ok3 {
			continue // цифровая копия либо битые координаты
		}
		if tree[layer] == nil {
			tree[layer] = map[int]map[int]*FolderInfo{}
		}
		if tree[layer][box] == nil {
			tree[layer][box] = map[int]*FolderInfo{}
		}
		fi := tree[layer][box][folder]
		if fi == nil {
			fi = &FolderInfo{}
			tree[layer][box][folder] = fi
		}
		fi.Occupied = true
		fi.Files = append(fi.Files, FileRef{ID: f.ID, Name: f.Name})
	}
	return tree, nil
}

// SuggestNextSlot — эвристика линейного заполнения: берём последний
// размещённый жёсткий документ подразделения и поднимаем полку на одну.
// Ёмкость папок не проверяется.
func (s *StorageService) SuggestNextSlot(ctx context.Context, departmentID int64) (Slot, error) {
	cabinets, err := s.store.Files.ListCabinets(ctx)
	if err != nil {
		return Slot{}, err
	}
	var ids []string
	byID := map[string]string{}
	for _, c := range cabinets {
		name, _ := c.Metadata[model.MetaCabinet].(string)
		if name == model.DigitalCabinet {
			continue
		}
		dept, ok := metaInt64(c.Metadata, "department")
		if !ok || dept != departmentID {
			continue
		}
		ids = append(ids, c.ID)
		byID[c.ID] = name
	}
	if len(ids) == 0 {
		return Slot{}, ErrNotFound
	}

	last, err := s.store.Files.LatestHardcopy(ctx, ids)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Slot{Cabinet: byID[ids[0]], Layer: 1, Box: 1, Folder: 1}, nil
	}
	if err != nil {
		return Slot{}, err
	}

	layer, _ := metaInt(last.Metadata, model.MetaLayer)
	box, ok := metaInt(last.Metadata, model.MetaBox)
	if !ok {
		box = 1
	}
	folder, ok := metaInt(last.Metadata, model.MetaFolder)
	if !ok {
		folder = 1
	}
	cab := byID[ids[0]]
	if last.ParentID != nil {
		if name, ok := byID[*last.ParentID]; ok {
			cab = name
		}
	}
	return Slot{Cabinet: cab, Layer: layer + 1, Box: box, Folder: folder}, nil
}

// metaInt достаёт целое из метаданных; после JSON-десериализации числа
// приходят как float64.
func metaInt(meta model.JSONB, key string) (int, bool) {
	if meta == nil {
		return 0, false
	}
	switch v := meta[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func metaInt64(meta model.JSONB, key string) (int64, bool) {
	v, ok := metaInt(meta, key)
	return int64(v), ok
}
