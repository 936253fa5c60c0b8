package service

import (
	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RequestService — запросы доступа к чужим файлам и их разрешение
// владельцем.
type RequestService struct {
	store    *repo.Store
	delivery Delivery
	logger   *zap.SugaredLogger
}

func NewRequestService(store *repo.Store, delivery Delivery, logger *zap.SugaredLogger) *RequestService {
	return &RequestService{store: store, delivery: delivery, logger: logger}
}

// Request создаёт ожидающий запрос доступа и уведомляет владельца файла.
func (s *RequestService) Request(ctx context.Context, fileID string, requesterID int64) (*model.AccessRequest, error) {
	var req *model.AccessRequest
	var toOwner model.Notification

	err := s.store.Atomic(ctx, func(tx *repo.Store) error {
		f, err := tx.Files.GetByID(ctx, fileID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if f.Status == model.FileStatusDeleted {
			return ErrNotFound
		}
		if f.OwnerID == requesterID {
			return &ValidationError{Reason: "cannot request access to own file"}
		}

		dup, err := tx.Requests.HasPending(ctx, fileID, requesterID)
		if err != nil {
			return err
		}
		if dup {
			return ErrStale
		}

		requester, err := tx.Users.GetByID(ctx, requesterID)
		if err != nil {
			return err
		}

		req = &model.AccessRequest{FileID: fileID, RequesterID: requesterID}
		if err := tx.Requests.Create(ctx, req); err != nil {
			return err
		}

		toOwner = model.Notification{
			UserID:  f.OwnerID,
			FileID:  &fileID,
			Kind:    model.NotifyAccessRequest,
			Message: fmt.Sprintf("%s requested access to file %q", requester.Login, f.Name),
		}
		if err := tx.Notifications.Create(ctx, &toOwner); err != nil {
			return err
		}

		return tx.Audit.Append(ctx, &model.AuditEvent{
			ActorID: requesterID,
			FileID:  &fileID,
			Action:  model.AuditRequestAccess,
		})
	})
	if err != nil {
		return nil, err
	}

	s.delivery.Deliver(ctx, toOwner)
	return req, nil
}

// Resolve разрешает запрос. Право на это есть только у владельца файла;
// владение перепроверяется по свежим данным внутри той же транзакции,
// что и смена состояния. На approve запросивший получает пару
// «принятая передача + совладение»; на deny только меняется состояние.
// Запросивший уведомляется в обоих случаях.
func (s *RequestService) Resolve(ctx context.Context, requestID, actorID int64, approve bool) error {
	var toRequester model.Notification

	err := s.store.Atomic(ctx, func(tx *repo.Store) error {
		req, err := tx.Requests.GetByID(ctx, requestID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStale
		}
		if err != nil {
			return err
		}

		f, err := tx.Files.GetByID(ctx, req.FileID)
		if err != nil {
			return err
		}
		if f.OwnerID != actorID {
			return ErrForbidden
		}

		state := model.RequestDenied
		verdict := "denied"
		if approve {
			state = model.RequestApproved
			verdict = "approved"
		}
		rows, err := tx.Requests.UpdateStateFromPending(ctx, requestID, state)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrStale
		}

		if approve {
			t := &model.FileTransfer{
				FileID:      req.FileID,
				SenderID:    actorID,
				RecipientID: req.RequesterID,
				State:       model.TransferAccepted,
			}
			if err := tx.Transfers.Create(ctx, t); err != nil {
				return err
			}
			if _, err := tx.Grants.CreateIfAbsent(ctx, req.FileID, req.RequesterID, model.GrantCoOwner); err != nil {
				return err
			}
		}

		toRequester = model.Notification{
			UserID:  req.RequesterID,
			FileID:  &req.FileID,
			Kind:    model.NotifyRequestResult,
			Message: fmt.Sprintf("access request for file %q %s", f.Name, verdict),
		}
		if err := tx.Notifications.Create(ctx, &toRequester); err != nil {
			return err
		}

		return tx.Audit.Append(ctx, &model.AuditEvent{
			ActorID: actorID,
			FileID:  &req.FileID,
			Action:  model.AuditResolveRequest,
			Detail:  verdict,
		})
	})
	if err != nil {
		return err
	}

	s.delivery.Deliver(ctx, toRequester)
	return nil
}

// PendingForOwner — ожидающие запросы на файлы владельца.
func (s *RequestService) PendingForOwner(ctx context.Context, ownerID int64) ([]model.AccessRequest, error) {
	return s.store.Requests.ListPendingForOwner(ctx, ownerID)
}
