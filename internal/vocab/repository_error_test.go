package vocab

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhraseSet_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT normalized_phrase FROM words").
		WillReturnError(fmt.Errorf("engine gone"))

	sqlxDB := sqlx.NewDb(db, "sqlite3")
	_, err = PhraseSet(context.Background(), sqlxDB)
	assert.ErrorContains(t, err, "engine gone")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertWordWithSchedule_ExecErrors(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	word := NewWord("apple", "a fruit", "", "", now)
	schedule := NewScheduleState(word.ID, NewDay(now))

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   string
	}{
		{
			name: "word insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO words").
					WillReturnError(fmt.Errorf("constraint violated"))
			},
			wantErr: "insert word",
		},
		{
			name: "schedule insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO words").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO schedule_states").
					WillReturnError(fmt.Errorf("constraint violated"))
			},
			wantErr: "insert schedule_state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			sqlxDB := sqlx.NewDb(db, "sqlite3")
			err = InsertWordWithSchedule(context.Background(), sqlxDB, &word, &schedule)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
