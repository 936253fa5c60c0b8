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

// SendTarget — адресат отправки: пользователь лично либо подразделение.
type SendTarget struct {
	UserID       *int64
	DepartmentID *int64
}

// TransferService — машина состояний передачи файла.
// Для каждой пары (файл, получатель): pending → accepted | denied,
// оба перехода терминальные. Каждая мутирующая последовательность
// целиком выполняется в одной транзакции БД.
type TransferService struct {
	store    *repo.Store
	access   *AccessService
	delivery Delivery
	logger   *zap.SugaredLogger
}

func NewTransferService(store *repo.Store, access *AccessService, delivery Delivery, logger *zap.SugaredLogger) *TransferService {
	return &TransferService{store: store, access: access, delivery: delivery, logger: logger}
}

// Send отправляет файл получателю. Подразделение разворачивается в пару
// (передача, уведомление) на каждого участника на момент отправки;
// последующие изменения состава задним числом доступ не меняют.
// Неудача любой вставки откатывает все строки.
func (s *TransferService) Send(ctx context.Context, fileID string, senderID int64, target SendTarget) error {
	f, err := s.access.Require(ctx, senderID, fileID, ModeSend)
	if err != nil {
		return err
	}

	sender, err := s.store.Users.GetByID(ctx, senderID)
	if err != nil {
		return err
	}

	var delivered []model.Notification
	err = s.store.Atomic(ctx, func(tx *repo.Store) error {
		recipients, err := resolveRecipients(ctx, tx, senderID, target)
		if err != nil {
			return err
		}
		if len(recipients) == 0 {
			return &ValidationError{Reason: "no recipients to send to"}
		}

		for _, rc := range recipients {
			t := &model.FileTransfer{
				FileID:      fileID,
				SenderID:    senderID,
				RecipientID: rc.userID,
				MemberID:    rc.memberID,
			}
			if err := tx.Transfers.Create(ctx, t); err != nil {
				return err
			}
			n := &model.Notification{
				UserID:     rc.userID,
				FileID:     &fileID,
				TransferID: &t.ID,
				Kind:       model.NotifyFileReceived,
				Message:    fmt.Sprintf("%s sent you file %q", sender.Login, f.Name),
			}
			if err := tx.Notifications.Create(ctx, n); err != nil {
				return err
			}
			delivered = append(delivered, *n)
		}

		return tx.Audit.Append(ctx, &model.AuditEvent{
			ActorID: senderID,
			FileID:  &fileID,
			Action:  model.AuditSend,
			Detail:  fmt.Sprintf("recipients=%d", len(recipients)),
		})
	})
	if err != nil {
		return err
	}

	for _, n := range delivered {
		s.delivery.Deliver(ctx, n)
	}
	return nil
}

type recipient struct {
	userID   int64
	memberID *int64
}

// resolveRecipients разворачивает адресата в список конечных получателей.
func resolveRecipients(ctx context.Context, tx *repo.Store, senderID int64, target SendTarget) ([]recipient, error) {
	switch {
	case target.UserID != nil:
		u, err := tx.Users.GetByID(ctx, *target.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return []recipient{{userID: u.ID}}, nil

	case target.DepartmentID != nil:
		members, err := tx.Departments.ListMembers(ctx, *target.DepartmentID)
		if err != nil {
			return nil, err
		}
		out := make([]recipient, 0, len(members))
		for _, m := range members {
			if m.UserID == senderID {
				continue // отправителю собственная копия не нужна
			}
			mid := m.ID
			out = append(out, recipient{userID: m.UserID, memberID: &mid})
		}
		return out, nil

	default:
		return nil, &ValidationError{Reason: "send target is empty"}
	}
}

// Accept принимает ожидающую передачу. Повторный accept, когда ожидающей
// строки больше нет, завершается ErrStale, а не тихим успехом.
func (s *TransferService) Accept(ctx context.Context, fileID string, recipientID int64) error {
	return s.resolve(ctx, fileID, recipientID, model.TransferAccepted)
}

// Deny отклоняет ожидающую передачу; права совладения не возникает.
func (s *TransferService) Deny(ctx context.Context, fileID string, recipientID int64) error {
	return s.resolve(ctx, fileID, recipientID, model.TransferDenied)
}

func (s *TransferService) resolve(ctx context.Context, fileID string, recipientID int64, state model.TransferState) error {
	var toSender model.Notification
	err := s.store.Atomic(ctx, func(tx *repo.Store) error {
		t, err := tx.Transfers.GetPending(ctx, fileID, recipientID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStale
		}
		if err != nil {
			return err
		}

		// предикат по текущему состоянию — защита от гонки двойного accept
		rows, err := tx.Transfers.UpdateStateFromPending(ctx, t.ID, state)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrStale
		}

		// уведомление file_received переводится синхронно с передачей
		notifState := model.NotificationAccepted
		action := model.AuditAccept
		if state == model.TransferDenied {
			notifState = model.NotificationDenied
			action = model.AuditDeny
		}
		if err := tx.Notifications.SetStateByTransfer(ctx, t.ID, notifState); err != nil {
			return err
		}

		// совладение — только при личном принятии, вне контекста подразделения
		if state == model.TransferAccepted && t.MemberID == nil {
			if _, err := tx.Grants.CreateIfAbsent(ctx, fileID, recipientID, model.GrantCoOwner); err != nil {
				return err
			}
		}

		rcpt, err := tx.Users.GetByID(ctx, recipientID)
		if err != nil {
			return err
		}
		f, err := tx.Files.GetByID(ctx, fileID)
		if err != nil {
			return err
		}
		toSender = model.Notification{
			UserID:     t.SenderID,
			FileID:     &fileID,
			TransferID: &t.ID,
			Kind:       model.NotifyTransferResult,
			Message:    fmt.Sprintf("file %q %s by %s", f.Name, state, rcpt.Login),
		}
		if err := tx.Notifications.Create(ctx, &toSender); err != nil {
			return err
		}

		return tx.Audit.Append(ctx, &model.AuditEvent{
			ActorID: recipientID,
			FileID:  &fileID,
			Action:  action,
		})
	})
	if err != nil {
		return err
	}

	s.delivery.Deliver(ctx, toSender)
	return nil
}

// Inbox — ожидающие передачи получателя.
func (s *TransferService) Inbox(ctx context.Context, recipientID int64) ([]model.FileTransfer, error) {
	return s.store.Transfers.ListForRecipient(ctx, recipientID, model.TransferPending)
}
