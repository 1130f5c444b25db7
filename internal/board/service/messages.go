package service

import (
	"context"
	"errors"
	"time"

	"github.com/oakhall/clubboard/internal/board/domain"
	"github.com/oakhall/clubboard/internal/board/store"
	"github.com/oakhall/clubboard/pkg/idx"
	"github.com/oakhall/clubboard/pkg/slogx"
)

// ErrNotAuthorized is returned when the acting principal lacks the role a
// mutation requires. Handlers translate it to a 401, never a redirect.
var ErrNotAuthorized = errors.New("not authorized")

// MessageService owns the message rows. Messages are immutable once posted;
// the only mutations are create and admin delete.
type MessageService struct {
	Store store.Store
}

// Post validates and stores a new message authored by the given user. Title
// and content are HTML-escaped before storage.
func (s *MessageService) Post(ctx context.Context, author domain.User, title, content string) (domain.Message, error) {
	log := slogx.FromContext(ctx)

	var v Violations
	title = requireTitle(&v, title)
	content = escapeHTML(requireContent(content))
	if len(v) > 0 {
		return domain.Message{}, v
	}

	msg := domain.Message{
		ID:        idx.New().String(),
		Title:     title,
		Content:   content,
		Timestamp: time.Now().UTC(),
		AuthorID:  author.ID,
	}

	if err := s.Store.Messages().CreateMessage(ctx, msg); err != nil {
		log.Error("failed to create message", "author_id", author.ID, "error", err)
		return domain.Message{}, err
	}

	log.Info("message posted", "message_id", msg.ID, "author_id", author.ID)
	return msg, nil
}

// List returns every message joined with its author, newest first.
func (s *MessageService) List(ctx context.Context) ([]domain.MessageWithAuthor, error) {
	return s.Store.Messages().ListMessagesWithAuthor(ctx)
}

// Delete removes a message. Only admins may delete; anyone else gets
// ErrNotAuthorized and the store is untouched.
func (s *MessageService) Delete(ctx context.Context, actor domain.User, id string) error {
	log := slogx.FromContext(ctx)

	if !actor.IsAdmin {
		log.Warn("non-admin attempted message deletion", "user_id", actor.ID, "message_id", id)
		return ErrNotAuthorized
	}

	if _, err := s.Store.Messages().GetMessageByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound
		}
		log.Error("failed to fetch message", "message_id", id, "error", err)
		return err
	}

	if err := s.Store.Messages().DeleteMessage(ctx, id); err != nil {
		log.Error("failed to delete message", "message_id", id, "error", err)
		return err
	}

	log.Info("message deleted", "message_id", id, "deleted_by", actor.ID)
	return nil
}

// requireTitle escapes before measuring: the stored (escaped) form is what
// the length cap applies to.
func requireTitle(v *Violations, title string) string {
	title = escapeHTML(trimmed(title))
	if title == "" {
		v.add("title", MsgTitleRequired)
	} else if len(title) > maxFieldLength {
		v.add("title", MsgTitleTooLong)
	}
	return title
}

func requireContent(content string) string {
	return trimmed(content)
}
