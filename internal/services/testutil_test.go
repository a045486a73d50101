package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/praharilabs/prahari-backend/internal/scorer"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB wires a gorm.DB onto a sqlmock connection. SkipDefaultTransaction
// keeps implicit BEGIN/COMMIT out of single-statement expectations; explicit
// Transaction calls still produce them.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

type stubScorer struct {
	assessment *scorer.Assessment
	err        error
}

func (s stubScorer) Assess(context.Context, scorer.Input) (*scorer.Assessment, error) {
	return s.assessment, s.err
}

// discardStore satisfies evidence.Store for submissions without attachments.
type discardStore struct{}

func (discardStore) Put(_ context.Context, name string, _ []byte) (string, error) {
	return "/uploads/evidence/" + name, nil
}
