package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQL_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewSQL(db)
	q := regexp.QuoteMeta(`SELECT v FROM kv_entries WHERE k = ?`)

	mock.ExpectQuery(q).WithArgs("lastClickedCar").
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow(`{"vin":"A1"}`))
	v, ok, err := s.Get(context.Background(), "lastClickedCar")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"vin":"A1"}`, v)

	mock.ExpectQuery(q).WithArgs("absent").WillReturnRows(sqlmock.NewRows([]string{"v"}))
	_, ok, err = s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectQuery(q).WithArgs("boom").WillReturnError(errors.New("db down"))
	_, _, err = s.Get(context.Background(), "boom")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_SetRemove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewSQL(db)

	mock.ExpectExec(`INSERT INTO kv_entries`).WithArgs("k", "v").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, s.Set(context.Background(), "k", "v"))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_entries WHERE k = ?`)).WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Remove(context.Background(), "k"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
