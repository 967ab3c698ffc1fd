package writers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
)

// TradesWriter journals completed trades to a parquet file. Every write re-exports
// the whole table so the file on disk is always complete.
type TradesWriter struct {
	db         *sql.DB
	sq         squirrel.StatementBuilderType
	outputPath string
	mu         sync.Mutex
}

// NewTradesWriter creates a new TradesWriter.
// outputPath is the full path to the parquet file.
func NewTradesWriter(outputPath string) *TradesWriter {
	return &TradesWriter{
		db:         nil,
		sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		outputPath: outputPath,
		mu:         sync.Mutex{},
	}
}

// Initialize opens an in-memory DuckDB database and loads the existing journal, if any.
func (w *TradesWriter) Initialize() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	dir := filepath.Dir(w.outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeWriterFailed, "failed to create data directory", err)
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriterFailed, "failed to open DuckDB connection", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			sequence_no INTEGER,
			symbol TEXT,
			entry_price DOUBLE,
			exit_price DOUBLE,
			quantity DOUBLE,
			fee DOUBLE,
			exit_reason TEXT,
			opened_at TIMESTAMP,
			closed_at TIMESTAMP,
			price_pnl DOUBLE,
			balance_delta DOUBLE
		)
	`)
	if err != nil {
		db.Close()

		return errors.Wrap(errors.ErrCodeWriterFailed, "failed to create trades table", err)
	}

	if _, err := os.Stat(w.outputPath); err == nil {
		_, err = db.Exec(fmt.Sprintf(`
			INSERT INTO trades
			SELECT * FROM read_parquet('%s')
		`, w.outputPath))
		if err != nil {
			db.Close()

			return errors.Wrapf(errors.ErrCodeWriterFailed, err, "failed to load existing trades from %s", w.outputPath)
		}
	}

	w.db = db

	return nil
}

// Write appends a trade and exports the journal to parquet.
func (w *TradesWriter) Write(trade types.TradeRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return errors.New(errors.ErrCodeWriterFailed, "writer not initialized")
	}

	balanceDelta := sql.NullFloat64{Float64: 0, Valid: false}
	if trade.BalanceDelta.IsSome() {
		balanceDelta = sql.NullFloat64{Float64: trade.BalanceDelta.Unwrap(), Valid: true}
	}

	_, err := w.sq.
		Insert("trades").
		Columns(
			"sequence_no", "symbol", "entry_price", "exit_price", "quantity", "fee",
			"exit_reason", "opened_at", "closed_at", "price_pnl", "balance_delta",
		).
		Values(
			trade.SequenceNo, trade.Symbol, trade.EntryPrice, trade.ExitPrice, trade.Quantity, trade.Fee,
			string(trade.ExitReason), trade.OpenedAt, trade.ClosedAt, trade.PricePnL.InexactFloat64(), balanceDelta,
		).
		RunWith(w.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriterFailed, "failed to insert trade", err)
	}

	return w.exportToParquet()
}

// Flush forces an export to parquet.
func (w *TradesWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return errors.New(errors.ErrCodeWriterFailed, "writer not initialized")
	}

	return w.exportToParquet()
}

// GetOutputPath returns the parquet file path.
func (w *TradesWriter) GetOutputPath() string {
	return w.outputPath
}

// Close releases database resources.
func (w *TradesWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeWriterFailed, "failed to close database", err)
		}

		w.db = nil
	}

	return nil
}

// exportToParquet exports the current data to the parquet file.
//
//nolint:funcorder // helper method used by Write and Flush
func (w *TradesWriter) exportToParquet() error {
	_, err := w.db.Exec(fmt.Sprintf(`
		COPY (SELECT * FROM trades ORDER BY sequence_no ASC)
		TO '%s' (FORMAT PARQUET)
	`, w.outputPath))
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriterFailed, "failed to export to parquet", err)
	}

	return nil
}

// GetTradeCount returns the number of trades stored.
func (w *TradesWriter) GetTradeCount() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return 0, errors.New(errors.ErrCodeWriterFailed, "writer not initialized")
	}

	var count int

	err := w.sq.Select("COUNT(*)").From("trades").RunWith(w.db).QueryRow().Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count trades", err)
	}

	return count, nil
}

// GetTotalPnL returns the sum of the price PnL of all trades.
func (w *TradesWriter) GetTotalPnL() (float64, error) {
	return w.sum("price_pnl")
}

// GetTotalBalanceDelta returns the sum of the measured balance deltas. Trades without one are skipped.
func (w *TradesWriter) GetTotalBalanceDelta() (float64, error) {
	return w.sum("balance_delta")
}

func (w *TradesWriter) sum(column string) (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return 0, errors.New(errors.ErrCodeWriterFailed, "writer not initialized")
	}

	var total sql.NullFloat64

	err := w.sq.Select("SUM(" + column + ")").From("trades").RunWith(w.db).QueryRow().Scan(&total)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to sum %s", column)
	}

	if !total.Valid {
		return 0, nil
	}

	return total.Float64, nil
}
