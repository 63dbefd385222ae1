package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/easylend/userservice/internal/common"
	"github.com/easylend/userservice/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestCreate_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Jane Doe", "a@x.com", "$2hash", "borrower", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("id-1", created))

	repo := NewPostgresRepository(db)
	u, err := repo.Create(context.Background(), &models.User{
		FullName:     "Jane Doe",
		Email:        "a@x.com",
		PasswordHash: "$2hash",
		UserType:     models.UserTypeBorrower,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if u.ID != "id-1" || !u.CreatedAt.Equal(created) {
		t.Fatalf("persisted fields not filled in: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	repo := NewPostgresRepository(db)
	_, err := repo.Create(context.Background(), &models.User{Email: "a@x.com"})
	if !errors.Is(err, common.ErrUserAlreadyExists) {
		t.Fatalf("want ErrUserAlreadyExists, got %v", err)
	}
}

func TestGetByEmail_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	created := time.Now()
	rows := sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash", "user_type", "activated", "created_at"}).
		AddRow("id-1", "Jane Doe", "a@x.com", "$2hash", "lender", true, created)
	mock.ExpectQuery("SELECT id, full_name, email").
		WithArgs("a@x.com").
		WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	u, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if u.UserType != models.UserTypeLender || !u.Activated {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, full_name, email").
		WithArgs("missing@x.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresRepository(db)
	_, err := repo.GetByEmail(context.Background(), "missing@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestExistsByEmail(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewPostgresRepository(db)
	exists, err := repo.ExistsByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("ExistsByEmail error: %v", err)
	}
	if !exists {
		t.Fatalf("want exists=true")
	}
}

func TestActivate_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET activated").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	err := repo.Activate(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestActivate_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET activated").
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	if err := repo.Activate(context.Background(), "id-1"); err != nil {
		t.Fatalf("Activate error: %v", err)
	}
}
