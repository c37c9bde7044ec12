package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const selectUsers = `SELECT u.id, u.name, u.email, u.provider, f.id, f.name, f.path FROM users u LEFT JOIN files f ON f.id = u.avatar_id`

func (a *Accessor) CreateUser(ctx context.Context, user User) (User, error) {
	if err := user.Validate(); err != nil {
		return User{}, err
	}

	id := uuid.New()

	query := `INSERT INTO users (id, name, email, provider) VALUES ($1, $2, $3, $4)`
	if _, err := a.db.ExecContext(ctx, query, id, user.Name, user.Email, user.Provider); err != nil {
		return User{}, fmt.Errorf("exec context: %w", err)
	}

	return User{
		ID:       id,
		Name:     user.Name,
		Email:    user.Email,
		Provider: user.Provider,
	}, nil
}

func (a *Accessor) GetUsers(ctx context.Context) ([]User, error) {
	return a.queryUsers(ctx, selectUsers+` ORDER BY u.name`)
}

// GetProviders returns every user flagged as a provider.
func (a *Accessor) GetProviders(ctx context.Context) ([]User, error) {
	return a.queryUsers(ctx, selectUsers+` WHERE u.provider = TRUE ORDER BY u.name`)
}

// GetUser returns nil without an error when no user has the given id.
func (a *Accessor) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	row := a.db.QueryRowContext(ctx, selectUsers+` WHERE u.id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}
	return &user, nil
}

// SetAvatar attaches an already stored file to the user.
func (a *Accessor) SetAvatar(ctx context.Context, userID uuid.UUID, file File) (*User, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO files (id, name, path) VALUES ($1, $2, $3)`, file.ID, file.Name, file.Path); err != nil {
		return nil, fmt.Errorf("insert file: %w", err)
	}
	res, err := tx.ExecContext(ctx, `UPDATE users SET avatar_id = $1 WHERE id = $2`, file.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return nil, nil
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return a.GetUser(ctx, userID)
}

func (a *Accessor) queryUsers(ctx context.Context, query string) ([]User, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return users, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (User, error) {
	var (
		user     User
		fileID   uuid.NullUUID
		fileName sql.NullString
		filePath sql.NullString
	)
	if err := s.Scan(&user.ID, &user.Name, &user.Email, &user.Provider, &fileID, &fileName, &filePath); err != nil {
		return User{}, err
	}
	if fileID.Valid {
		user.Avatar = &File{ID: fileID.UUID, Name: fileName.String, Path: filePath.String}
	}
	return user, nil
}
