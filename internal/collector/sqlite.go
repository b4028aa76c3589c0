package collector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/phuslu/log"
	_ "modernc.org/sqlite"

	"TrendLens/internal/model"
)

// SQLiteSource reads daily bars from a local SQLite bar store.
type SQLiteSource struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteSource opens (or creates) the SQLite database and runs migrations.
func NewSQLiteSource(dbPath string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteSource{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite bar store opened")
	return s, nil
}

func (s *SQLiteSource) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bars (
			symbol TEXT    NOT NULL,
			ts     INTEGER NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume REAL    NOT NULL DEFAULT 0,
			PRIMARY KEY (symbol, ts)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:30], err)
		}
	}
	return nil
}

func (s *SQLiteSource) Name() string { return "sqlite" }

// Import upserts bars for a symbol. Missing OHLC fields are stored as NULL.
func (s *SQLiteSource) Import(ctx context.Context, symbol string, bars []model.RawBar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO bars
		(symbol, ts, open, high, low, close, volume) VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, symbol, b.Time.Unix(),
			nullable(b.Open), nullable(b.High), nullable(b.Low), nullable(b.Close), b.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("import %s@%d: %w", symbol, b.Time.Unix(), err)
		}
	}
	return tx.Commit()
}

// Seed imports up to limit bars from src for every symbol that has no stored
// bars yet, and returns the number of symbols seeded.
func (s *SQLiteSource) Seed(ctx context.Context, src Source, symbols []string, limit int) (int, error) {
	seeded := 0
	for _, sym := range symbols {
		existing, err := s.FetchBars(ctx, sym, 1)
		if err != nil {
			return seeded, err
		}
		if len(existing) > 0 {
			continue
		}
		bars, err := src.FetchBars(ctx, sym, limit)
		if err != nil {
			return seeded, fmt.Errorf("seed %s from %s: %w", sym, src.Name(), err)
		}
		if err := s.Import(ctx, sym, bars); err != nil {
			return seeded, err
		}
		log.Info().Str("symbol", sym).Str("from", src.Name()).Int("bars", len(bars)).Msg("bar store seeded")
		seeded++
	}
	return seeded, nil
}

// FetchBars returns the latest limit bars in ascending time order.
func (s *SQLiteSource) FetchBars(ctx context.Context, symbol string, limit int) ([]model.RawBar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = -1 // no LIMIT in sqlite
	}
	rows, err := s.db.QueryContext(ctx, `SELECT ts, open, high, low, close, volume FROM (
			SELECT ts, open, high, low, close, volume FROM bars
			WHERE symbol = ? ORDER BY ts DESC LIMIT ?
		) ORDER BY ts ASC`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var out []model.RawBar
	for rows.Next() {
		var (
			ts         int64
			o, h, l, c sql.NullFloat64
			volume     float64
		)
		if err := rows.Scan(&ts, &o, &h, &l, &c, &volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		out = append(out, model.RawBar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   fromNull(o),
			High:   fromNull(h),
			Low:    fromNull(l),
			Close:  fromNull(c),
			Volume: volume,
		})
	}
	return out, rows.Err()
}

// FetchQuote derives a quote from the two most recent complete bars.
func (s *SQLiteSource) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	raw, err := s.FetchBars(ctx, symbol, 10)
	if err != nil {
		return model.Quote{}, err
	}
	var bars []model.Bar
	for _, r := range raw {
		if r.Complete() {
			bars = append(bars, model.Bar{Time: r.Time, Open: r.Open.Float64, High: r.High.Float64,
				Low: r.Low.Float64, Close: r.Close.Float64, Volume: r.Volume})
		}
	}
	if len(bars) == 0 {
		return model.Quote{}, errors.New("no complete bars for quote")
	}
	return model.QuoteFromBars(symbol, bars), nil
}

func (s *SQLiteSource) Close() error {
	log.Info().Msg("closing sqlite bar store")
	return s.db.Close()
}

func nullable(v model.Value) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v.Float64, Valid: v.Valid}
}

func fromNull(n sql.NullFloat64) model.Value {
	return model.Value{Float64: n.Float64, Valid: n.Valid}
}
