package database

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/config"
	"github.com/sirupsen/logrus"
)

// NativeStrategy queries postgres through gorm and renders rows the way
// `psql -t -A` would, so the summary parser works for every strategy.
// The connection is opened on first use.
type NativeStrategy struct {
	logger *logrus.Logger
	cfg    config.DatabaseConfig

	mu sync.Mutex
	db *DB
}

func NewNativeStrategy(logger *logrus.Logger, cfg config.DatabaseConfig) *NativeStrategy {
	return &NativeStrategy{logger: logger, cfg: cfg}
}

func (s *NativeStrategy) conn() (*DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}
	db, err := NewDB(s.logger, s.cfg)
	if err != nil {
		return nil, err
	}
	s.db = db
	return db, nil
}

func (s *NativeStrategy) Execute(ctx context.Context, query string, csv bool) (QueryResult, error) {
	db, err := s.conn()
	if err != nil {
		return QueryResult{Stderr: err.Error(), ExitCode: 2}, nil
	}

	rows, err := db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		if ctx.Err() != nil {
			return QueryResult{}, ctx.Err()
		}
		return QueryResult{Stderr: err.Error(), ExitCode: 1}, nil
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return QueryResult{Stderr: err.Error(), ExitCode: 1}, nil
	}

	var table [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return QueryResult{Stderr: err.Error(), ExitCode: 1}, nil
		}
		table = append(table, values)
	}
	if err := rows.Err(); err != nil {
		return QueryResult{Stderr: err.Error(), ExitCode: 1}, nil
	}

	sep := "|"
	if csv {
		sep = ","
	}
	return QueryResult{Stdout: formatRows(table, sep)}, nil
}

func (s *NativeStrategy) Name() string {
	return fmt.Sprintf("Native(%s:%d/%s)", s.cfg.Host, s.cfg.Port, s.cfg.DBName)
}

func (s *NativeStrategy) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func formatRows(rows [][]interface{}, sep string) string {
	var b strings.Builder
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString(formatValue(v))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05.999999")
	case bool:
		if val {
			return "t"
		}
		return "f"
	default:
		return fmt.Sprint(val)
	}
}
