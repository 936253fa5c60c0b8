package handlers_test

import (
	"DocKeeper/internal/model"
	"bytes"
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHandler_UploadAndDownload(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", model.RoleClient)
	content := []byte("scanned page bytes")

	rr := env.upload(t, owner.ID, "contract.png", content, map[string]string{"copy_type": "soft"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeJSON[map[string]any](t, rr)
	fileID, _ := created["id"].(string)
	require.NotEmpty(t, fileID)
	assert.Equal(t, "contract.png", created["name"])
	assert.Equal(t, "soft", created["copy_type"])

	// скачивание возвращает исходные байты, не шифртекст
	rr = env.do(t, owner.ID, http.MethodGet, "/api/files/"+fileID+"/download", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, bytes.Equal(content, rr.Body.Bytes()))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename="contract.png"`)

	// preview — без Content-Disposition
	rr = env.do(t, owner.ID, http.MethodGet, "/api/files/"+fileID+"/preview", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Disposition"))

	// список своих файлов
	rr = env.do(t, owner.ID, http.MethodGet, "/api/files", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decodeJSON[[]map[string]any](t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, fileID, list[0]["id"])
}

func TestFileHandler_UploadErrors(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", model.RoleClient)

	// без авторизации
	rr := env.do(t, 0, http.MethodPost, "/api/files", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// превышение лимита (BlobMaxSizeMB = 1)
	big := bytes.Repeat([]byte{0x1}, 1*1024*1024+1)
	rr = env.upload(t, owner.ID, "big.png", big, map[string]string{"copy_type": "soft"})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)

	// жёсткая копия без координат
	rr = env.upload(t, owner.ID, "paper.pdf", []byte("x"), map[string]string{
		"copy_type": "hard",
		"metadata":  `{"cabinet":"A"}`,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// битый metadata JSON
	rr = env.upload(t, owner.ID, "doc.png", []byte("x"), map[string]string{"metadata": `{broken`})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFileHandler_HardCopyAndStorageTree(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", model.RoleClient)
	dept, err := env.store.Departments.CreateDepartment(context.Background(), &model.Department{Name: "Archive"})
	require.NoError(t, err)
	deptID := strconv.FormatInt(dept.ID, 10)

	rr := env.upload(t, owner.ID, "act.pdf", []byte("paper scan"), map[string]string{
		"copy_type":     "hard",
		"department_id": deptID,
		"metadata":      `{"cabinet":"Cabinet-1","layer":2,"box":3,"folder":4}`,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeJSON[map[string]any](t, rr)
	assert.Equal(t, "active", created["status"])

	// узел шкафа появился, дерево показывает занятую папку
	cabinets, err := env.store.Files.ListCabinets(context.Background())
	require.NoError(t, err)
	require.Len(t, cabinets, 1)

	rr = env.do(t, owner.ID, http.MethodGet, "/api/storage/cabinets/"+cabinets[0].ID+"/locations", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	tree := decodeJSON[map[string]map[string]map[string]map[string]any](t, rr)
	require.Contains(t, tree, "2")
	require.Contains(t, tree["2"], "3")
	require.Contains(t, tree["2"]["3"], "4")
	assert.Equal(t, true, tree["2"]["3"]["4"]["occupied"])

	// следующий слот: полка +1 при тех же коробке и папке
	rr = env.do(t, owner.ID, http.MethodGet, "/api/storage/next-slot?department_id="+deptID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	slot := decodeJSON[map[string]any](t, rr)
	assert.Equal(t, "Cabinet-1", slot["cabinet"])
	assert.EqualValues(t, 3, slot["layer"])
	assert.EqualValues(t, 3, slot["box"])
	assert.EqualValues(t, 4, slot["folder"])
}

func TestFileHandler_DeleteAndAccess(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", model.RoleClient)
	stranger := env.seedUser(t, "stranger", model.RoleClient)

	rr := env.upload(t, owner.ID, "secret.png", []byte("private"), map[string]string{"copy_type": "soft"})
	require.Equal(t, http.StatusCreated, rr.Code)
	fileID := decodeJSON[map[string]any](t, rr)["id"].(string)

	// чужой файл неотличим от несуществующего
	rr = env.do(t, stranger.ID, http.MethodGet, "/api/files/"+fileID+"/download", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = env.do(t, stranger.ID, http.MethodDelete, "/api/files/"+fileID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, owner.ID, http.MethodDelete, "/api/files/"+fileID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// после удаления файл скрыт и для владельца
	rr = env.do(t, owner.ID, http.MethodGet, "/api/files/"+fileID+"/download", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = env.do(t, owner.ID, http.MethodDelete, "/api/files/"+fileID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFileHandler_Search(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", model.RoleClient)
	stranger := env.seedUser(t, "stranger", model.RoleClient)
	ctx := context.Background()

	rr := env.upload(t, owner.ID, "report.png", []byte("img"), map[string]string{"copy_type": "soft"})
	require.Equal(t, http.StatusCreated, rr.Code)
	fileID := decodeJSON[map[string]any](t, rr)["id"].(string)
	require.NoError(t, env.store.Texts.Upsert(ctx, fileID, "quarterly revenue report"))

	rr = env.do(t, owner.ID, http.MethodGet, "/api/files/search?q=revenue", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	found := decodeJSON[[]map[string]any](t, rr)
	require.Len(t, found, 1)
	assert.Equal(t, fileID, found[0]["id"])

	// выдача фильтруется по доступу
	rr = env.do(t, stranger.ID, http.MethodGet, "/api/files/search?q=revenue", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeJSON[[]map[string]any](t, rr))

	// пустой запрос
	rr = env.do(t, owner.ID, http.MethodGet, "/api/files/search", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
