package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetSetting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM site_settings").WithArgs(KeyHeroConfig).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"title":"Delícias"}`))

	value, err := repo.Get(context.Background(), KeyHeroConfig)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != `{"title":"Delícias"}` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetMissingSetting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM site_settings").WithArgs(KeyAdminPassword).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	if _, err := repo.Get(context.Background(), KeyAdminPassword); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertSetting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO site_settings").WithArgs(KeyRecoveryCode, "hashed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Upsert(context.Background(), KeyRecoveryCode, "hashed"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
