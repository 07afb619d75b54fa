package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

// MySQL stores every collection in a single documents table with the body in
// a JSON column. Filters and preconditions compile to JSON path predicates.
//
// The DSN must include parseTime=true and clientFoundRows=true (so a no-op
// merge patch is not mistaken for a failed precondition).
type MySQL struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    collection VARCHAR(64)  NOT NULL,
    id         CHAR(36)     NOT NULL,
    doc        JSON         NOT NULL,
    PRIMARY KEY (collection, id)
)`

// OpenMySQL creates the connection pool and verifies it with a ping.
func OpenMySQL(dsn string) (*MySQL, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping store: %w", err)
	}

	log.Println("Document store connection pool established")
	return &MySQL{db: db}, nil
}

// EnsureSchema creates the documents table if it does not exist yet.
func (s *MySQL) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Close releases the underlying pool.
func (s *MySQL) Close() error {
	return s.db.Close()
}

func (s *MySQL) Create(ctx context.Context, collection string, doc Document) (string, error) {
	body := copyDoc(doc)
	delete(body, "id")
	stamp := TimeValue(time.Now())
	body["createdAt"] = stamp
	body["updatedAt"] = stamp

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, doc) VALUES (?, ?, ?)",
		collection, id, raw)
	if err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}
	return id, nil
}

func (s *MySQL) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT doc FROM documents WHERE collection = ? AND id = ?",
		collection, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc["id"] = id
	return doc, nil
}

func (s *MySQL) Update(ctx context.Context, collection, id string, patch Document) error {
	return s.UpdateWhere(ctx, collection, id, patch, nil)
}

func (s *MySQL) UpdateWhere(ctx context.Context, collection, id string, patch Document, conds []Filter) error {
	body := copyDoc(patch)
	delete(body, "id")
	body["updatedAt"] = TimeValue(time.Now())

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}

	query := "UPDATE documents SET doc = JSON_MERGE_PATCH(doc, ?) WHERE collection = ? AND id = ?"
	args := []any{raw, collection, id}
	for _, f := range conds {
		clause, condArgs, err := compileFilter(f)
		if err != nil {
			return err
		}
		query += " AND " + clause
		args = append(args, condArgs...)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Nothing matched: distinguish an absent document from a failed condition.
	var exists int
	err = s.db.QueryRowContext(ctx,
		"SELECT 1 FROM documents WHERE collection = ? AND id = ?",
		collection, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return ErrConditionFailed
}

func (s *MySQL) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?",
		collection, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *MySQL) Query(ctx context.Context, collection string, filters []Filter, order *Order) ([]Document, error) {
	query := "SELECT id, doc FROM documents WHERE collection = ?"
	args := []any{collection}
	for _, f := range filters {
		clause, condArgs, err := compileFilter(f)
		if err != nil {
			return nil, err
		}
		query += " AND " + clause
		args = append(args, condArgs...)
	}
	if order != nil {
		path, err := jsonPath(order.Field)
		if err != nil {
			return nil, err
		}
		query += " ORDER BY doc->>" + path
		if order.Desc {
			query += " DESC"
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var results []Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		doc["id"] = id
		results = append(results, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return results, nil
}

var sqlOps = map[Op]string{
	OpEq:  "=",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// compileFilter renders one predicate. Strings compare lexicographically
// (dates are normalized RFC 3339, see TimeValue), numbers through a DOUBLE
// cast, booleans against the unquoted JSON literal.
func compileFilter(f Filter) (string, []any, error) {
	op, ok := sqlOps[f.Op]
	if !ok {
		return "", nil, fmt.Errorf("unsupported filter op %q", f.Op)
	}
	path, err := jsonPath(f.Field)
	if err != nil {
		return "", nil, err
	}

	switch v := f.Value.(type) {
	case string:
		return fmt.Sprintf("doc->>%s %s ?", path, op), []any{v}, nil
	case bool:
		lit := "false"
		if v {
			lit = "true"
		}
		return fmt.Sprintf("doc->>%s %s '%s'", path, op, lit), nil, nil
	case float64:
		return fmt.Sprintf("CAST(doc->>%s AS DOUBLE) %s ?", path, op), []any{v}, nil
	case int:
		return fmt.Sprintf("CAST(doc->>%s AS DOUBLE) %s ?", path, op), []any{float64(v)}, nil
	default:
		return "", nil, fmt.Errorf("unsupported filter value type %T", f.Value)
	}
}

// jsonPath validates a field name before it is interpolated into a JSON path.
// Field names come from our own services, never from request input.
func jsonPath(field string) (string, error) {
	if field == "" {
		return "", fmt.Errorf("empty filter field")
	}
	for _, r := range field {
		ok := r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')
		if !ok {
			return "", fmt.Errorf("invalid filter field %q", field)
		}
	}
	return "'$." + field + "'", nil
}
