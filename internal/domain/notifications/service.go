package notifications

import (
	"context"
	"log/slog"
	"time"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type message struct {
	UserID string
	Type   string
	Vars   map[string]string
}

// Service persists notifications and mails them out. Notify only enqueues;
// a single worker goroutine drains the queue so delivery failures can never
// reach the transaction that triggered them.
type Service struct {
	store       StoreAPI
	mailer      Mailer
	defaultFrom string
	queue       chan message
}

func New(store StoreAPI, mailer Mailer, from string) *Service {
	if from == "" {
		from = "no-reply@example.com"
	}
	return &Service{
		store:       store,
		mailer:      mailer,
		defaultFrom: from,
		queue:       make(chan message, 256),
	}
}

// Start launches the dispatch worker. It runs until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
}

// Notify is fire and forget. A full queue drops the message with a warning
// rather than blocking the caller.
func (s *Service) Notify(userID, templateCode string, vars map[string]string) {
	select {
	case s.queue <- message{UserID: userID, Type: templateCode, Vars: vars}:
	default:
		slog.Warn("notification queue full, dropping", "type", templateCode, "userId", userID)
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.queue:
			s.deliver(ctx, msg)
		}
	}
}

func (s *Service) deliver(ctx context.Context, msg message) {
	template, ok := templates[msg.Type]
	if !ok {
		slog.Warn("unknown notification template", "type", msg.Type)
		return
	}
	body := template.body(msg.Vars)

	deliverCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := s.store.CreateNotification(deliverCtx, msg.UserID, msg.Type, template.title, body); err != nil {
		slog.Warn("notification persist failed", "type", msg.Type, "userId", msg.UserID, "err", err)
	}

	if s.mailer == nil {
		return
	}
	email, err := s.store.UserEmail(deliverCtx, msg.UserID)
	if err != nil || email == "" {
		if err != nil {
			slog.Warn("notification email lookup failed", "userId", msg.UserID, "err", err)
		}
		return
	}
	if err := s.mailer.Send(deliverCtx, s.defaultFrom, email, template.title, body); err != nil {
		slog.Warn("notification email send failed", "userId", msg.UserID, "err", err)
	}
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Notification, error) {
	return s.store.ListNotifications(ctx, userID, limit, offset)
}

func (s *Service) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}
