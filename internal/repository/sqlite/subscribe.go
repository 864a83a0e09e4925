package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

func (r *Repository) Subscribe(ctx context.Context, chatID int64, username string) (bool, error) {
	const opn = "repository.sqlite.Subscribe"

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO subscriptions (chat_id, username) VALUES (?, ?) ON CONFLICT (chat_id) DO NOTHING",
		chatID, nullString(username))
	if err != nil {
		return false, fmt.Errorf("%s: %w", opn, err)
	}

	return affected(opn, res)
}

func (r *Repository) Unsubscribe(ctx context.Context, chatID int64) (bool, error) {
	const opn = "repository.sqlite.Unsubscribe"

	res, err := r.db.ExecContext(ctx, "DELETE FROM subscriptions WHERE chat_id = ?", chatID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", opn, err)
	}

	return affected(opn, res)
}

// SubscribedChats lists the chats that receive catalog alerts, ordered by id.
func (r *Repository) SubscribedChats(ctx context.Context) ([]int64, error) {
	const opn = "repository.sqlite.SubscribedChats"

	rows, err := r.db.QueryContext(ctx, "SELECT chat_id FROM subscriptions ORDER BY chat_id")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var chats []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: failed to scan chat_id: %w", opn, err)
		}
		chats = append(chats, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return chats, nil
}

func affected(opn string, res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}
	return n > 0, nil
}
