package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop()).(*userRepository)
	return repo, mock
}

func TestSaveUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	user := models.User{ID: "jc", Name: "Jon", TotalUnreadCount: 3, UnreadChannels: 1}

	mock.ExpectExec("INSERT INTO users").
		WithArgs("jc", "Jon", "", "", 3, 1, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.SaveUser(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSaveUser_DBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("db locked"))

	err := repo.SaveUser(context.Background(), models.User{ID: "jc"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestGetUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	updated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(userColumns).AddRow("jc", "Jon", "https://img", "admin", 5, 2, updated)
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("jc").
		WillReturnRows(rows)

	user, err := repo.GetUser(context.Background(), "jc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Jon" || user.Role != "admin" {
		t.Errorf("unexpected user %+v", user)
	}
	if user.TotalUnreadCount != 5 || user.UnreadChannels != 2 {
		t.Errorf("expected counters 5/2, got %d/%d", user.TotalUnreadCount, user.UnreadChannels)
	}
	if user.UpdatedAt == nil || !user.UpdatedAt.Equal(updated) {
		t.Errorf("expected updated_at %v, got %v", updated, user.UpdatedAt)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetUser(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUser_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	// wrong shape makes Scan fail
	rows := sqlmock.NewRows([]string{"id"}).AddRow("jc")
	mock.ExpectQuery("SELECT (.+) FROM users").WillReturnRows(rows)

	_, err := repo.GetUser(context.Background(), "jc")
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}
