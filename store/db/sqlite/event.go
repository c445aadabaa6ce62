package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/dayfold/dayfold/store"
)

func (d *DB) CreateEvent(ctx context.Context, create *store.Event) (*store.Event, error) {
	fields := []string{"uid", "user_id", "title", "start_ts"}
	values := []any{create.UID, create.UserID, create.Title, create.StartTs}

	stmt := `INSERT INTO event (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(values)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, values...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return create, nil
}

func (d *DB) ListEvents(ctx context.Context, find *store.FindEvent) ([]*store.Event, error) {
	where, args := eventWhere(find)

	query := `
		SELECT id, uid, user_id, title, start_ts, created_ts
		FROM event
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY start_ts ASC, id ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Event, 0)
	for rows.Next() {
		var event store.Event
		if err := rows.Scan(
			&event.ID,
			&event.UID,
			&event.UserID,
			&event.Title,
			&event.StartTs,
			&event.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		list = append(list, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return list, nil
}

func (d *DB) DeleteEvents(ctx context.Context, delete *store.DeleteEvent) (int64, error) {
	where, args := []string{"user_id = ?"}, []any{delete.UserID}
	if v := delete.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := delete.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}

	result, err := d.db.ExecContext(ctx, "DELETE FROM event WHERE "+strings.Join(where, " AND "), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete events: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (d *DB) CountEvents(ctx context.Context, find *store.FindEvent) (int64, error) {
	where, args := eventWhere(find)

	var count int64
	query := "SELECT COUNT(*) FROM event WHERE " + strings.Join(where, " AND ")
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func eventWhere(find *store.FindEvent) ([]string, []any) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}
	if v := find.StartsAfter; v != nil {
		where, args = append(where, "start_ts >= ?"), append(args, *v)
	}
	if v := find.StartsBefore; v != nil {
		where, args = append(where, "start_ts < ?"), append(args, *v)
	}
	return where, args
}
