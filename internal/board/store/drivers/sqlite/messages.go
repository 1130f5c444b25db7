package sqlite

import (
	"context"

	"github.com/oakhall/clubboard/internal/board/domain"
)

type messagesRepo struct {
	db dbtx
}

func (r *messagesRepo) CreateMessage(ctx context.Context, m domain.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, title, content, timestamp, author_id)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.Content, m.Timestamp, m.AuthorID,
	)
	return mapConstraint(err)
}

func (r *messagesRepo) GetMessageByID(ctx context.Context, id string) (domain.Message, error) {
	var m domain.Message
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, content, timestamp, author_id
		FROM messages WHERE id = ?`, id).
		Scan(&m.ID, &m.Title, &m.Content, &m.Timestamp, &m.AuthorID)
	if err != nil {
		return domain.Message{}, mapNotFound(err)
	}
	return m, nil
}

func (r *messagesRepo) ListMessagesWithAuthor(ctx context.Context) ([]domain.MessageWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.title, m.content, m.timestamp, m.author_id,
			u.id, u.email, u.password_hash, u.first_name, u.last_name,
			u.is_club_member, u.is_admin, u.created_at, u.updated_at
		FROM messages m
		JOIN users u ON u.id = m.author_id
		ORDER BY m.timestamp DESC, m.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MessageWithAuthor
	for rows.Next() {
		var mwa domain.MessageWithAuthor
		err := rows.Scan(
			&mwa.ID, &mwa.Title, &mwa.Content, &mwa.Timestamp, &mwa.AuthorID,
			&mwa.Author.ID, &mwa.Author.Email, &mwa.Author.PasswordHash,
			&mwa.Author.FirstName, &mwa.Author.LastName,
			&mwa.Author.IsClubMember, &mwa.Author.IsAdmin,
			&mwa.Author.CreatedAt, &mwa.Author.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, mwa)
	}
	return out, rows.Err()
}

func (r *messagesRepo) DeleteMessage(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	return err
}

func (r *messagesRepo) CountMessages(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM messages`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
