package user_test

import (
	"appointments-system/user"
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectUsers = `SELECT u.id, u.name, u.email, u.provider, f.id, f.name, f.path FROM users u LEFT JOIN files f ON f.id = u.avatar_id`

var userColumns = []string{"id", "name", "email", "provider", "avatar_id", "avatar_name", "avatar_path"}

func TestUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := user.NewAccessor(db)

	const name = "Ana"
	const email = "ana@example.com"

	t.Run("create user", func(t *testing.T) {
		insertQuery := `INSERT INTO users (id, name, email, provider) VALUES ($1, $2, $3, $4)`
		mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
			WithArgs(sqlmock.AnyArg(), name, email, true).
			WillReturnResult(sqlmock.NewResult(1, 1))

		createdUser, err := a.CreateUser(context.Background(), user.User{
			Name:     name,
			Email:    email,
			Provider: true,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, createdUser.ID)
		assert.Equal(t, name, createdUser.Name)
		assert.Equal(t, email, createdUser.Email)
		assert.True(t, createdUser.Provider)

		require.NoError(t, mock.ExpectationsWereMet())

		t.Run("get user", func(t *testing.T) {
			rows := sqlmock.NewRows(userColumns).
				AddRow(createdUser.ID.String(), name, email, true, nil, nil, nil)

			mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE u.id = $1`)).
				WithArgs(createdUser.ID).
				WillReturnRows(rows)

			u, err := a.GetUser(context.Background(), createdUser.ID)
			require.NoError(t, err)
			require.NotNil(t, u)
			assert.Equal(t, createdUser.ID, u.ID)
			assert.Equal(t, createdUser.Name, u.Name)
			assert.True(t, u.Provider)
			assert.Nil(t, u.Avatar)

			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("get user with avatar", func(t *testing.T) {
			fileID := uuid.New()
			rows := sqlmock.NewRows(userColumns).
				AddRow(createdUser.ID.String(), name, email, true, fileID.String(), "me.png", "abc123.png")

			mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE u.id = $1`)).
				WithArgs(createdUser.ID).
				WillReturnRows(rows)

			u, err := a.GetUser(context.Background(), createdUser.ID)
			require.NoError(t, err)
			require.NotNil(t, u.Avatar)
			assert.Equal(t, fileID, u.Avatar.ID)
			assert.Equal(t, "https://cdn.example.com/files/abc123.png", u.Avatar.URL("https://cdn.example.com/"))

			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("get user - no rows", func(t *testing.T) {
			missing := uuid.New()
			mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE u.id = $1`)).
				WithArgs(missing).
				WillReturnError(sql.ErrNoRows)

			u, err := a.GetUser(context.Background(), missing)
			require.NoError(t, err)
			assert.Nil(t, u)

			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("get user - db error", func(t *testing.T) {
			id := uuid.New()
			mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE u.id = $1`)).
				WithArgs(id).
				WillReturnError(sql.ErrConnDone)

			_, err := a.GetUser(context.Background(), id)
			require.Error(t, err)
			assert.ErrorIs(t, err, sql.ErrConnDone)
		})
	})

	t.Run("create user validation", func(t *testing.T) {
		_, err := a.CreateUser(context.Background(), user.User{Name: name, Email: "not-an-email"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})
}

func TestGetProviders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := user.NewAccessor(db)
	p1, p2 := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE u.provider = TRUE ORDER BY u.name`)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(p1.String(), "Barber One", "one@example.com", true, nil, nil, nil).
			AddRow(p2.String(), "Barber Two", "two@example.com", true, nil, nil, nil))

	providers, err := a.GetProviders(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, p1, providers[0].ID)
	assert.Equal(t, p2, providers[1].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAvatar(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := user.NewAccessor(db)
	userID := uuid.New()

	t.Run("attaches file", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO files (id, name, path) VALUES ($1, $2, $3)`)).
			WithArgs(sqlmock.AnyArg(), "me.png", "abc.png").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET avatar_id = $1 WHERE id = $2`)).
			WithArgs(sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectQuery(regexp.QuoteMeta(selectUsers + ` WHERE u.id = $1`)).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(userID.String(), "Ana", "ana@example.com", false, uuid.NewString(), "me.png", "abc.png"))

		u, err := a.SetAvatar(context.Background(), userID, user.File{Name: "me.png", Path: "abc.png"})
		require.NoError(t, err)
		require.NotNil(t, u)
		require.NotNil(t, u.Avatar)
		assert.Equal(t, "abc.png", u.Avatar.Path)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO files (id, name, path) VALUES ($1, $2, $3)`)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET avatar_id = $1 WHERE id = $2`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		u, err := a.SetAvatar(context.Background(), userID, user.File{Name: "me.png", Path: "abc.png"})
		require.NoError(t, err)
		assert.Nil(t, u)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO files (id, name, path) VALUES ($1, $2, $3)`)).
			WillReturnError(errors.New("duplicate path"))
		mock.ExpectRollback()

		_, err := a.SetAvatar(context.Background(), userID, user.File{Name: "me.png", Path: "abc.png"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insert file")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
