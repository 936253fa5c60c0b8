package handlers

import (
	"DocKeeper/internal/config"
	"DocKeeper/internal/middleware"
	"DocKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	fileService *service.FileService,
	transferService *service.TransferService,
	requestService *service.RequestService,
	storageService *service.StorageService,
	notificationService *service.NotificationService,
	adminService *service.AdminService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	fileHandler := NewFileHandler(fileService, logger, config)
	transferHandler := NewTransferHandler(transferService, requestService, logger)
	storageHandler := NewStorageHandler(storageService, logger)
	notificationHandler := NewNotificationHandler(notificationService, logger)
	adminHandler := NewAdminHandler(adminService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/logout", userHandler.Logout)
	r.Get("/api/user/me", userHandler.Me)

	// File routes
	r.Post("/api/files", fileHandler.Upload)
	r.Get("/api/files", fileHandler.ListOwn)
	r.Get("/api/files/search", fileHandler.Search)
	r.Get("/api/files/{id}/download", fileHandler.Download)
	r.Get("/api/files/{id}/preview", fileHandler.Preview)
	r.Delete("/api/files/{id}", fileHandler.Delete)

	// Transfer workflow
	r.Post("/api/files/{id}/send", transferHandler.Send)
	r.Post("/api/files/{id}/accept", transferHandler.Accept)
	r.Post("/api/files/{id}/deny", transferHandler.Deny)
	r.Get("/api/transfers/inbox", transferHandler.Inbox)

	// Access requests
	r.Post("/api/files/{id}/request-access", transferHandler.RequestAccess)
	r.Post("/api/requests/{id}/resolve", transferHandler.ResolveRequest)
	r.Get("/api/requests/pending", transferHandler.PendingRequests)

	// Storage tree
	r.Get("/api/storage/cabinets/{id}/locations", storageHandler.Locations)
	r.Get("/api/storage/next-slot", storageHandler.NextSlot)

	// Notifications
	r.Get("/api/notifications", notificationHandler.Inbox)
	r.Post("/api/notifications/{id}/read", notificationHandler.MarkRead)

	// Admin
	r.Post("/api/admin/departments", adminHandler.CreateDepartment)
	r.Get("/api/admin/departments", adminHandler.ListDepartments)
	r.Post("/api/admin/departments/{id}/members", adminHandler.AddMember)
	r.Delete("/api/admin/members/{id}", adminHandler.RemoveMember)
	r.Post("/api/admin/doctypes", adminHandler.CreateDocumentType)
	r.Get("/api/admin/doctypes", adminHandler.ListDocumentTypes)
	r.Post("/api/admin/doctypes/{id}/fields", adminHandler.AddTypeField)
	r.Get("/api/admin/users", adminHandler.ListUsers)

	return &Handler{Router: r}
}
