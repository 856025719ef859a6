package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/veritas/models"
)

// Analysis sources.
const (
	SourcePage = "page"
	SourceText = "text"
	SourceData = "data"
)

// AnalysisRecord is one stored AnalysisResult with its bookkeeping.
type AnalysisRecord struct {
	AnalysisID     int64
	RunID          int64
	URL            string
	Source         string
	ContentHash    string
	Score          int
	SiteType       string
	Author         string
	LexiconVersion string
	CreatedAt      time.Time
	Result         *models.AnalysisResult
}

// NewAnalysis describes an analysis to insert.
type NewAnalysis struct {
	RunID          int64 // 0 when not part of a recorded run
	URLID          int64 // 0 for pasted text
	Source         string
	ContentHash    string
	LexiconVersion string
	Result         models.AnalysisResult
}

// InsertAnalysis stores an analysis and its modifiers in one transaction.
func (db *DB) InsertAnalysis(a NewAnalysis) (int64, error) {
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return 0, fmt.Errorf("failed to encode result: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	data := a.Result.Data
	res, err := tx.Exec(`
		INSERT INTO analyses (run_id, url_id, source, content_hash, score, site_type,
		                      author, publication_date, lexicon_version, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, nullInt64(a.RunID), nullInt64(a.URLID), a.Source, a.ContentHash, a.Result.Score,
		string(data.SiteType), nullString(data.AuthorName()), nullString(derefString(data.PublicationDate)),
		nullString(a.LexiconVersion), string(resultJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis: %w", err)
	}
	analysisID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get analysis ID: %w", err)
	}

	for i, m := range a.Result.Modifiers {
		if _, err := tx.Exec(`
			INSERT INTO analysis_modifiers (analysis_id, position, dimension, criterion, tag, change, severity)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, analysisID, i, string(m.Dimension), m.Criterion, m.Tag, m.Change, string(m.Severity)); err != nil {
			return 0, fmt.Errorf("failed to insert modifier %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit analysis: %w", err)
	}
	return analysisID, nil
}

const analysisColumns = `
	a.analysis_id, a.run_id, u.original_url, a.source, a.content_hash, a.score,
	a.site_type, a.author, a.lexicon_version, a.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner, extra ...any) (*AnalysisRecord, error) {
	var (
		r                       AnalysisRecord
		runID                   sql.NullInt64
		url, author, lexiconVer sql.NullString
	)
	dest := []any{&r.AnalysisID, &runID, &url, &r.Source, &r.ContentHash, &r.Score,
		&r.SiteType, &author, &lexiconVer, &r.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	r.RunID = runID.Int64
	r.URL = url.String
	r.Author = author.String
	r.LexiconVersion = lexiconVer.String
	return &r, nil
}

// GetAnalysis loads one analysis including its decoded result.
func (db *DB) GetAnalysis(analysisID int64) (*AnalysisRecord, error) {
	var resultJSON string
	row := db.QueryRow(`SELECT `+analysisColumns+`, a.result_json
		FROM analyses a
		LEFT JOIN urls u ON u.url_id = a.url_id
		WHERE a.analysis_id = ?`, analysisID)

	rec, err := scanAnalysis(row, &resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %d: %w", analysisID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}
	rec.Result = &result
	return rec, nil
}

// ListAnalyses returns analyses without their decoded results, most recent
// first. A non-empty url restricts the list to that URL. limit <= 0 returns
// all.
func (db *DB) ListAnalyses(url string, limit int) ([]AnalysisRecord, error) {
	query := `SELECT ` + analysisColumns + `
		FROM analyses a
		LEFT JOIN urls u ON u.url_id = a.url_id`
	var args []any
	if url != "" {
		query += ` WHERE u.original_url = ?`
		args = append(args, url)
	}
	query += ` ORDER BY a.analysis_id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// TagCount is how often a modifier tag fired across stored analyses.
type TagCount struct {
	Tag   string
	Count int
}

// TopModifierTags returns the most frequent modifier tags.
func (db *DB) TopModifierTags(limit int) ([]TagCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Query(`
		SELECT tag, COUNT(*) AS n
		FROM analysis_modifiers
		GROUP BY tag
		ORDER BY n DESC, tag ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count modifier tags: %w", err)
	}
	defer rows.Close()

	var out []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan tag count: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
