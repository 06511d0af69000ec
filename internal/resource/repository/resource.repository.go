package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"gestionrecursos/internal/shared"
	"gestionrecursos/pkg/logger"

	"github.com/google/uuid"
)

// Document pairs a store-allocated id with the stored field set.
type Document struct {
	ID   string
	Data map[string]any
}

// DocumentStore is the document database the resource controllers run
// against: collections of JSON documents addressed by id. SetOwned and
// DeleteOwned are conditional writes that apply only while the stored
// document's owner field still matches the given owner, which closes the
// window between the ownership check and the write.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (map[string]any, error)
	List(ctx context.Context, collection string) ([]Document, error)
	Create(ctx context.Context, collection string, data map[string]any) (string, error)
	SetOwned(ctx context.Context, collection, id, owner string, data map[string]any) (bool, error)
	DeleteOwned(ctx context.Context, collection, id, owner string) (bool, error)
}

// PostgresStore keeps every collection in a single documents table
// (collection TEXT, id TEXT, data JSONB). Ids are allocated client-side
// as UUIDs; the data column never contains the id.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	var raw []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get document %s/%s: %v", collection, id, err)
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Sugar.Errorf("Failed to decode document %s/%s: %v", collection, id, err)
		return nil, err
	}
	return data, nil
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE collection = $1`, collection)
	if err != nil {
		logger.Sugar.Errorf("Failed to list collection %s: %v", collection, err)
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var raw []byte
		if err := rows.Scan(&doc.ID, &raw); err != nil {
			logger.Sugar.Errorf("Failed to scan document in %s: %v", collection, err)
			return nil, err
		}
		if err := json.Unmarshal(raw, &doc.Data); err != nil {
			logger.Sugar.Errorf("Failed to decode document %s/%s: %v", collection, doc.ID, err)
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *PostgresStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
		collection, id, raw)
	if err != nil {
		logger.Sugar.Errorf("Failed to create document in %s: %v", collection, err)
		return "", err
	}
	return id, nil
}

func (s *PostgresStore) SetOwned(ctx context.Context, collection, id, owner string, data map[string]any) (bool, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return false, err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE documents SET data = $1 WHERE collection = $2 AND id = $3 AND data->>'owner' = $4`,
		raw, collection, id, owner)
	if err != nil {
		logger.Sugar.Errorf("Failed to update document %s/%s: %v", collection, id, err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *PostgresStore) DeleteOwned(ctx context.Context, collection, id, owner string) (bool, error) {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2 AND data->>'owner' = $3`,
		collection, id, owner)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete document %s/%s: %v", collection, id, err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
