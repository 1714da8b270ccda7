package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog_analyzer/pkg"
	"blog_analyzer/src/logger"
	"blog_analyzer/src/model"

	"github.com/lib/pq"
)

const (
	insertAnalysisQuery = `INSERT INTO blog_details (session_id, title, topics, sentiment, summary, keywords)
VALUES ($1, $2, $3, $4, $5, $6)`

	searchAnalysisQuery = `SELECT session_id, title, topics, sentiment, keywords, summary
FROM blog_details
WHERE LOWER($1) = ANY(ARRAY(SELECT LOWER(t) FROM unnest(topics) t))
   OR LOWER($1) = ANY(ARRAY(SELECT LOWER(k) FROM unnest(keywords) k))`

	uniqueViolation = "23505"
)

// OpenPostgres opens the connection pool and verifies it
func OpenPostgres(ctx context.Context, config model.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// PostgresAnalysisRepository stores analyses in the blog_details table
type PostgresAnalysisRepository struct {
	db *sql.DB
}

// NewPostgresAnalysisRepository creates a repository on an open pool
func NewPostgresAnalysisRepository(db *sql.DB) *PostgresAnalysisRepository {
	return &PostgresAnalysisRepository{db: db}
}

// Insert writes one row. An empty title is stored as NULL.
// A row already present for the session is logged and not treated as an error.
func (p *PostgresAnalysisRepository) Insert(ctx context.Context, record pkg.AnalysisRecord) error {
	title := sql.NullString{String: record.Title, Valid: record.Title != ""}

	_, err := p.db.ExecContext(ctx, insertAnalysisQuery,
		record.SessionID,
		title,
		pq.Array(record.Topics),
		string(record.Sentiment),
		record.Summary,
		pq.Array(record.Keywords),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			log := logger.With("storage")
			log.Warn().Str("session_id", record.SessionID).Msg("Analysis already stored for session")
			return nil
		}
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// SearchByTopicOrKeyword returns rows with a topic or keyword equal to term, ignoring case
func (p *PostgresAnalysisRepository) SearchByTopicOrKeyword(ctx context.Context, term string) ([]pkg.AnalysisRecord, error) {
	rows, err := p.db.QueryContext(ctx, searchAnalysisQuery, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search analyses: %w", err)
	}
	defer rows.Close()

	results := []pkg.AnalysisRecord{}
	for rows.Next() {
		var (
			record    pkg.AnalysisRecord
			title     sql.NullString
			sentiment string
			summary   sql.NullString
		)
		if err := rows.Scan(
			&record.SessionID,
			&title,
			pq.Array(&record.Topics),
			&sentiment,
			pq.Array(&record.Keywords),
			&summary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		record.Title = title.String
		record.Sentiment = pkg.Sentiment(sentiment)
		record.Summary = summary.String
		if record.Topics == nil {
			record.Topics = []string{}
		}
		if record.Keywords == nil {
			record.Keywords = []string{}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analyses: %w", err)
	}

	return results, nil
}
