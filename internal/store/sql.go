package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// document is one collection stored as a single row.
type document struct {
	Collection string    `gorm:"column:collection;primaryKey;size:64"`
	Body       string    `gorm:"column:body;type:text;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (document) TableName() string { return "documents" }

// SQLStore keeps collections in a "documents" table through gorm.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Init(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&document{}); err != nil {
		return &Error{Op: "init", Collection: "documents", Err: describe(err)}
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := validateName("load", collection); err != nil {
		return nil, err
	}

	var docs []document
	res := s.db.WithContext(ctx).Where("collection = ?", collection).Limit(1).Find(&docs)
	if res.Error != nil {
		return nil, &Error{Op: "load", Collection: collection, Err: describe(res.Error)}
	}
	if len(docs) > 0 {
		return []byte(docs[0].Body), nil
	}

	doc := document{Collection: collection, Body: string(emptyCollection), UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&doc).Error
	if err != nil {
		return nil, &Error{Op: "load", Collection: collection, Err: describe(err)}
	}
	return append([]byte(nil), emptyCollection...), nil
}

func (s *SQLStore) Save(ctx context.Context, collection string, data []byte) error {
	if err := validateName("save", collection); err != nil {
		return err
	}

	doc := document{Collection: collection, Body: string(data), UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).
		Create(&doc).Error
	if err != nil {
		return &Error{Op: "save", Collection: collection, Err: describe(err)}
	}
	return nil
}

// describe adds the SQLSTATE to postgres errors so operators can grep for it.
func describe(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("postgres %s: %w", pgErr.Code, err)
	}
	return err
}
