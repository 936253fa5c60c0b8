package service

import (
	"DocKeeper/internal/crypto"
	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestStore — Store поверх in-memory SQLite со всеми миграциями.
func newTestStore(t *testing.T, opts ...repo.StoreOption) *repo.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + name + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))
	return repo.NewStore(db, opts...)
}

// newTestVault — настоящее шифрованное хранилище во временном каталоге.
func newTestVault(t *testing.T) *crypto.Vault {
	t.Helper()
	v, err := crypto.NewVault(t.TempDir(), bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)
	return v
}

func seedUser(t *testing.T, s *repo.Store, login string, role model.Role) *model.User {
	t.Helper()
	u, err := s.Users.CreateUser(context.Background(), &model.User{
		Login:    login,
		Password: "hash",
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

// seedFile — активный цифровой документ без узла-шкафа: для тестов доступа
// и передач дерево хранения не нужно.
func seedFile(t *testing.T, s *repo.Store, id string, ownerID int64) *model.File {
	t.Helper()
	f := &model.File{
		ID:       id,
		Name:     id + ".png",
		Path:     "/tmp/" + id + ".bin",
		Size:     10,
		MimeType: "image/png",
		OwnerID:  ownerID,
		CopyType: model.CopyTypeSoft,
		Status:   model.FileStatusActive,
		Metadata: model.JSONB{model.MetaCabinet: model.DigitalCabinet},
	}
	require.NoError(t, s.Files.Create(context.Background(), f))
	return f
}

func seedDepartmentWith(t *testing.T, s *repo.Store, name string, userIDs ...int64) *model.Department {
	t.Helper()
	ctx := context.Background()
	d, err := s.Departments.CreateDepartment(ctx, &model.Department{Name: name})
	require.NoError(t, err)
	for _, uid := range userIDs {
		_, err := s.Departments.AddMember(ctx, uid, d.ID)
		require.NoError(t, err)
	}
	return d
}

func testLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func nopDelivery() Delivery { return &LogDelivery{Logger: testLogger()} }
