package handlers_test

import (
	"DocKeeper/internal/config"
	"DocKeeper/internal/crypto"
	"DocKeeper/internal/handlers"
	"DocKeeper/internal/middleware"
	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"DocKeeper/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// testEnv — полный HTTP-стек поверх in-memory SQLite и настоящего
// шифрованного хранилища: хендлеры тестируются без моков.
type testEnv struct {
	router http.Handler
	cfg    *config.Config
	store  *repo.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + name + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))
	store := repo.NewStore(db)

	cfg := &config.Config{AuthSecret: "test-secret", BlobMaxSizeMB: 1}
	logger := zap.NewNop().Sugar()
	vault, err := crypto.NewVault(t.TempDir(), bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)

	delivery := &service.LogDelivery{Logger: logger}
	accessSvc := service.NewAccessService(store)
	storageSvc := service.NewStorageService(store)
	userSvc := service.NewUserService(store.Users)
	fileSvc := service.NewFileService(store, accessSvc, storageSvc, vault, logger)
	transferSvc := service.NewTransferService(store, accessSvc, delivery, logger)
	requestSvc := service.NewRequestService(store, delivery, logger)
	notificationSvc := service.NewNotificationService(store)
	adminSvc := service.NewAdminService(store)

	h := handlers.NewHandler(userSvc, fileSvc, transferSvc, requestSvc, storageSvc, notificationSvc, adminSvc, logger, cfg)
	return &testEnv{router: h.Router, cfg: cfg, store: store}
}

// seedUser создаёт пользователя напрямую в БД; пароль всегда "secret".
func (e *testEnv) seedUser(t *testing.T, login string, role model.Role) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	u, err := e.store.Users.CreateUser(context.Background(), &model.User{
		Login:    login,
		Password: string(hash),
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func addAuth(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	require.NoError(t, middleware.SetLoginCookie(rr, userID, secret))
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// do выполняет запрос от имени пользователя; userID 0 — аноним.
func (e *testEnv) do(t *testing.T, userID int64, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		addAuth(t, req, userID, e.cfg.AuthSecret)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// upload отправляет multipart-форму загрузки и возвращает ответ.
func (e *testEnv) upload(t *testing.T, userID int64, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	addAuth(t, req, userID, e.cfg.AuthSecret)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}
