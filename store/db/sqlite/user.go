package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dayfold/dayfold/store"
)

func (d *DB) UpsertUser(ctx context.Context, upsert *store.UpsertUser) (*store.User, error) {
	if _, err := d.db.ExecContext(ctx,
		"INSERT INTO user (id) VALUES (?) ON CONFLICT (id) DO NOTHING",
		upsert.ID,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	set, args := []string{}, []any{}
	if v := upsert.Timezone; v != nil {
		set, args = append(set, "timezone = ?"), append(args, *v)
	}
	if v := upsert.Privacy; v != nil {
		set, args = append(set, "privacy = ?"), append(args, string(*v))
	}
	if len(set) > 0 {
		set = append(set, "updated_ts = strftime('%s', 'now')")
		args = append(args, upsert.ID)
		stmt := "UPDATE user SET " + strings.Join(set, ", ") + " WHERE id = ?"
		if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	user, err := d.GetUser(ctx, &store.FindUser{ID: &upsert.ID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found after upsert", upsert.ID)
	}
	return user, nil
}

func (d *DB) GetUser(ctx context.Context, find *store.FindUser) (*store.User, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}

	query := `
		SELECT id, timezone, privacy, created_ts, updated_ts
		FROM user
		WHERE ` + strings.Join(where, " AND ")

	var user store.User
	var privacy string
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Timezone,
		&privacy,
		&user.CreatedTs,
		&user.UpdatedTs,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Privacy = store.Privacy(privacy)
	return &user, nil
}

func (d *DB) DeleteUser(ctx context.Context, delete *store.DeleteUser) (int64, bool, error) {
	result, err := d.db.ExecContext(ctx, "DELETE FROM event WHERE user_id = ?", delete.ID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to delete user events: %w", err)
	}
	events, _ := result.RowsAffected()

	result, err = d.db.ExecContext(ctx, "DELETE FROM user WHERE id = ?", delete.ID)
	if err != nil {
		return events, false, fmt.Errorf("failed to delete user: %w", err)
	}
	rows, _ := result.RowsAffected()
	return events, rows > 0, nil
}
