package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"MomentumReport/internal/domain/models"
	domrepo "MomentumReport/internal/domain/repository"
	pkgch "MomentumReport/pkg/clickhouse"
	"MomentumReport/pkg/logger"
)

const reportsTable = "momentum_reports"

// ReportSchema creates the archive table. Re-generating a date replaces the older row on merge.
var ReportSchema = []string{
	`CREATE TABLE IF NOT EXISTS ` + reportsTable + ` (
		id String,
		date Date,
		trader LowCardinality(String),
		stance LowCardinality(String),
		market_closed UInt8,
		volatility_index Float64,
		volatility_change_pct Float64,
		index_return_pct Float64,
		signal_source LowCardinality(String),
		symbols Array(String),
		watchlist String,
		markdown String,
		generated_at DateTime64(3, 'UTC')
	) ENGINE = ReplacingMergeTree(generated_at)
	ORDER BY date`,
}

// CHReportStore archives reports in ClickHouse.
type CHReportStore struct {
	db *sql.DB
	l  *logger.Logger
}

func NewCHReportStore(ch *pkgch.Client, l *logger.Logger) *CHReportStore {
	return &CHReportStore{db: ch.DB(), l: l}
}

func (s *CHReportStore) Save(ctx context.Context, doc *models.ReportDocument, rendered string) error {
	wl, err := json.Marshal(doc.Watchlist)
	if err != nil {
		return fmt.Errorf("marshal watchlist: %w", err)
	}

	symbols := make([]string, 0, len(doc.Watchlist))
	for _, e := range doc.Watchlist {
		symbols = append(symbols, e.Symbol)
	}

	var closed uint8
	if doc.MarketClosed {
		closed = 1
	}

	const q = `INSERT INTO ` + reportsTable + ` (id, date, trader, stance, market_closed, volatility_index,
		volatility_change_pct, index_return_pct, signal_source, symbols, watchlist, markdown, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, q,
		doc.ID,
		doc.Date,
		doc.Trader,
		doc.Stance.String(),
		closed,
		doc.Signal.VolatilityIndex,
		doc.Signal.VolatilityChangePct,
		doc.Signal.IndexReturnPct,
		doc.Signal.Source,
		symbols,
		string(wl),
		rendered,
		doc.GeneratedAt.UTC(),
	)
	if err != nil {
		s.l.Error("clickhouse insert report failed",
			logger.String("table", reportsTable),
			logger.String("date", doc.Date),
			logger.Error(err))
		return fmt.Errorf("archive report: %w", err)
	}
	return nil
}

func (s *CHReportStore) Recent(ctx context.Context, limit int) ([]models.ReportSummary, error) {
	if limit <= 0 {
		limit = 30
	}

	const q = `SELECT toString(date), stance, market_closed, volatility_index, index_return_pct, symbols, generated_at
		FROM ` + reportsTable + ` FINAL
		ORDER BY date DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	out := make([]models.ReportSummary, 0, limit)
	for rows.Next() {
		var r models.ReportSummary
		var closed uint8
		if err := rows.Scan(&r.Date, &r.Stance, &closed, &r.VolatilityIndex, &r.IndexReturnPct, &r.Symbols, &r.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r.MarketClosed = closed == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

var (
	_ domrepo.ReportStore   = (*CHReportStore)(nil)
	_ domrepo.ReportArchive = (*CHReportStore)(nil)
)
