package customer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"gopkg.in/yaml.v3"
)

const customersQuery = `SELECT id, name, email, phone, score, last_message_at, added_by, avatar
FROM customers
ORDER BY id`

// Load reads a dataset from path. The format is picked from the file
// extension: .json, .yaml/.yml, or .db/.sqlite/.sqlite3.
func Load(ctx context.Context, path string) (*Dataset, error) {
	var (
		records []Record
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		records, err = loadJSON(path)
	case ".yaml", ".yml":
		records, err = loadYAML(path)
	case ".db", ".sqlite", ".sqlite3":
		records, err = loadSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	d, err := NewDataset(records)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", path, err)
	}
	slog.Info("Loaded dataset", "path", path, "records", d.Len())
	return d, nil
}

func loadJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON dataset: %w", err)
	}
	return records, nil
}

func loadYAML(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse YAML dataset: %w", err)
	}
	return records, nil
}

// loadSQLite reads the customers table of a database opened read-only.
func loadSQLite(ctx context.Context, path string) ([]Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	db, err := sql.Open("sqlite3", "file:"+filepath.ToSlash(path)+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, customersQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r      Record
			last   string
			avatar sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.Score, &last, &r.AddedBy, &avatar); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		r.LastMessageAt, err = parseTimestamp(last)
		if err != nil {
			return nil, fmt.Errorf("customer %d: %w", r.ID, err)
		}
		r.Avatar = avatar.String
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}
	return records, nil
}

// parseTimestamp accepts RFC 3339 text or unix seconds.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid last_message_at %q", s)
}
