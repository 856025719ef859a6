package analyze

import (
	"github.com/dtnitsch/veritas/pkg/db"
	"github.com/dtnitsch/veritas/pkg/signals"
)

// startRun opens a run record when recording. It returns 0 otherwise or on
// failure; persistence problems never fail an analysis.
func (e *env) startRun(command string, inputs int) int64 {
	if e.database == nil {
		return 0
	}
	runID, err := e.database.CreateRun(command, inputs, e.lex.Version)
	if err != nil {
		e.logger.Warn("Failed to create run", "command", command, "error", err)
		return 0
	}
	return runID
}

func (e *env) finishRun(runID int64, success, failed int) {
	if e.database == nil || runID == 0 {
		return
	}
	if err := e.database.UpdateRunStats(runID, success, failed); err != nil {
		e.logger.Warn("Failed to update run stats", "run_id", runID, "error", err)
	}
}

// recordResult stores the fetch attempt and, on success, the analysis.
func (e *env) recordResult(runID int64, source string, r Result) {
	if e.database == nil {
		return
	}

	var urlID int64
	pasted := source == db.SourceText || (r.Analysis != nil && signals.IsPastedText(r.Analysis.Data))
	if !pasted {
		id, err := e.database.InsertURL(r.URL)
		if err != nil {
			e.logger.Debug("URL not stored", "url", r.URL, "error", err)
		} else {
			urlID = id
		}
	}

	if r.Fetched && urlID > 0 {
		if err := e.database.RecordAccess(urlID, r.StatusCode, r.ErrorType, r.Error == nil, r.FromCache); err != nil {
			e.logger.Warn("Failed to record access to DB", "url", r.URL, "error", err)
		}
	}

	if r.Analysis == nil {
		return
	}
	analysisID, err := e.database.InsertAnalysis(db.NewAnalysis{
		RunID:          runID,
		URLID:          urlID,
		Source:         source,
		ContentHash:    r.ContentHash,
		LexiconVersion: e.lex.Version,
		Result:         *r.Analysis,
	})
	if err != nil {
		e.logger.Warn("Failed to store analysis", "url", r.URL, "error", err)
		return
	}
	e.logger.Debug("Analysis stored", "analysis_id", analysisID, "url", r.URL)
}
