package scan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

// Service runs scoring scans. Scans are independent per vendor and safe to
// run in parallel across vendors; within one scan the domains are scored
// concurrently and joined before aggregation.
type Service struct {
	db      *sql.DB
	engine  *scoring.Engine
	archive ArchiveClient
}

// NewService creates a scan Service.
func NewService(db *sql.DB, engine *scoring.Engine, archive ArchiveClient) *Service {
	return &Service{db: db, engine: engine, archive: archive}
}

// SubmitFindings ingests one domain's findings from the collection subsystem
// along with its evidence-completeness hint. Findings are append-only rows;
// returns the number of findings stored.
func (s *Service) SubmitFindings(ctx context.Context, vendorID string, domain scoring.Domain, findings []scoring.Finding, confidence float64) (int, error) {
	if !scoring.KnownDomain(domain) {
		return 0, &scoring.ValidationError{Field: "domain", Reason: fmt.Sprintf("unknown domain key %q", domain)}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin submit tx: %w", err)
	}
	defer tx.Rollback()

	stored := 0
	for _, f := range findings {
		if f.ID == "" {
			f.ID = uuid.New().String()
		}
		if f.Status == "" {
			f.Status = scoring.FindingOpen
		}
		if f.DetectedAt.IsZero() {
			f.DetectedAt = time.Now().UTC()
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO findings (id, vendor_id, domain, title, description, severity, cvss_score, source, evidence, recommendation, status, detected_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 ON CONFLICT (id) DO NOTHING`,
			f.ID, vendorID, domain, f.Title, f.Description, f.Severity, f.CVSSScore,
			f.Source, f.Evidence, f.Recommendation, f.Status, f.DetectedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("insert finding %s: %w", f.Title, err)
		}
		stored++
	}

	if confidence > 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO domain_confidence (vendor_id, domain, confidence, updated_at)
			 VALUES ($1, $2, $3, now())
			 ON CONFLICT (vendor_id, domain) DO UPDATE SET confidence = $3, updated_at = now()`,
			vendorID, domain, confidence,
		)
		if err != nil {
			return 0, fmt.Errorf("upsert domain confidence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit submit: %w", err)
	}
	return stored, nil
}

// Result is the outcome of one scan.
type Result struct {
	Score     *scoring.VendorScore   `json:"score"`
	Sector    string                 `json:"sector,omitempty"`
	Trend     scoring.TrendDirection `json:"trend"`
	Delta     int                    `json:"delta"`
	Duplicate bool                   `json:"duplicate"`
}

// RunScan scores a vendor from its current findings. scanID is the
// idempotency key; re-running a committed scan returns the stored score and
// appends nothing. An empty scanID gets a fresh one.
//
// The VendorScore is assembled completely off to the side and committed in a
// single transaction, so readers never observe a partially populated score
// and a cancelled context before commit leaves nothing behind.
func (s *Service) RunScan(ctx context.Context, vendorID, scanID string) (*Result, error) {
	if scanID == "" {
		scanID = uuid.New().String()
	}

	var (
		employeeCount int
		sector        string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT employee_count, sector FROM vendors WHERE id = $1`, vendorID,
	).Scan(&employeeCount, &sector)
	if err != nil {
		return nil, fmt.Errorf("load vendor %s: %w", vendorID, err)
	}

	inputs, err := s.loadDomainInputs(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	results := s.scoreDomains(ctx, vendorID, inputs, now)
	score := s.engine.Aggregate(vendorID, scanID, results, scoring.SizeFromEmployees(employeeCount), now)

	trend, delta, duplicate, err := s.commit(ctx, score)
	if err != nil {
		return nil, err
	}
	if duplicate {
		stored, err := s.storedScore(ctx, vendorID, scanID)
		if err != nil {
			return nil, err
		}
		return &Result{Score: stored, Sector: sector, Trend: scoring.TrendStable, Duplicate: true}, nil
	}

	s.archiveScan(ctx, vendorID, scanID, inputs, score)

	return &Result{Score: score, Sector: sector, Trend: trend, Delta: delta}, nil
}

// loadDomainInputs groups the vendor's findings by domain, in insertion
// order, and attaches the collector confidence hints.
func (s *Service) loadDomainInputs(ctx context.Context, vendorID string) (map[scoring.Domain]scoring.DomainInput, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, domain, title, description, severity, cvss_score, source, evidence, recommendation, status, detected_at
		 FROM findings WHERE vendor_id = $1 ORDER BY detected_at, id`,
		vendorID,
	)
	if err != nil {
		return nil, fmt.Errorf("load findings: %w", err)
	}
	defer rows.Close()

	inputs := make(map[scoring.Domain]scoring.DomainInput)
	for rows.Next() {
		f := scoring.Finding{VendorID: vendorID}
		if err := rows.Scan(&f.ID, &f.Domain, &f.Title, &f.Description, &f.Severity, &f.CVSSScore, &f.Source, &f.Evidence, &f.Recommendation, &f.Status, &f.DetectedAt); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		in := inputs[f.Domain]
		in.Domain = f.Domain
		in.Findings = append(in.Findings, f)
		inputs[f.Domain] = in
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	confRows, err := s.db.QueryContext(ctx,
		`SELECT domain, confidence FROM domain_confidence WHERE vendor_id = $1`,
		vendorID,
	)
	if err != nil {
		return nil, fmt.Errorf("load confidence hints: %w", err)
	}
	defer confRows.Close()

	for confRows.Next() {
		var (
			domain     scoring.Domain
			confidence float64
		)
		if err := confRows.Scan(&domain, &confidence); err != nil {
			return nil, fmt.Errorf("scan confidence hint: %w", err)
		}
		if in, ok := inputs[domain]; ok {
			in.Confidence = confidence
			inputs[domain] = in
		}
	}
	return inputs, confRows.Err()
}

// scoreDomains fans out one goroutine per domain and joins the results.
// A domain that exceeds the configured timeout is dropped; aggregation then
// treats it as missing rather than blocking the whole scan.
func (s *Service) scoreDomains(ctx context.Context, vendorID string, inputs map[scoring.Domain]scoring.DomainInput, now time.Time) map[scoring.Domain]*scoring.DomainResult {
	cfg := s.engine.Config()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[scoring.Domain]*scoring.DomainResult, len(inputs))
	)

	for domain, input := range inputs {
		wg.Add(1)
		go func(domain scoring.Domain, input scoring.DomainInput) {
			defer wg.Done()

			dctx, cancel := context.WithTimeout(ctx, cfg.DomainTimeout)
			defer cancel()

			done := make(chan *scoring.DomainResult, 1)
			go func() {
				done <- scoring.ScoreDomain(input, cfg, now)
			}()

			select {
			case result := <-done:
				mu.Lock()
				results[domain] = result
				mu.Unlock()
			case <-dctx.Done():
				log.Printf("scan: domain %s timed out for vendor %s, proceeding without it", domain, vendorID)
			}
		}(domain, input)
	}

	wg.Wait()
	return results
}

// archiveScan writes the raw inputs and the score document to blob storage.
// Archive failures are logged, never fatal to the scan.
func (s *Service) archiveScan(ctx context.Context, vendorID, scanID string, inputs map[scoring.Domain]scoring.DomainInput, score *scoring.VendorScore) {
	if s.archive == nil {
		return
	}
	if data, err := json.Marshal(inputs); err == nil {
		if err := s.archive.PutPayload(ctx, vendorID, scanID, data); err != nil {
			log.Printf("scan: archive payload for %s/%s: %v", vendorID, scanID, err)
		}
	}
	if data, err := json.Marshal(score); err == nil {
		if err := s.archive.PutScore(ctx, vendorID, scanID, data); err != nil {
			log.Printf("scan: archive score for %s/%s: %v", vendorID, scanID, err)
		}
	}
}

// commit publishes the score and its history entry atomically. A scan_id
// already committed makes the whole commit a no-op and reports a duplicate.
func (s *Service) commit(ctx context.Context, score *scoring.VendorScore) (scoring.TrendDirection, int, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, false, fmt.Errorf("begin commit tx: %w", err)
	}
	defer tx.Rollback()

	var previous *scoring.ScoreHistoryEntry
	prev := scoring.ScoreHistoryEntry{}
	err = tx.QueryRowContext(ctx,
		`SELECT recorded_at, score, grade FROM score_history
		 WHERE vendor_id = $1 ORDER BY recorded_at DESC LIMIT 1`,
		score.VendorID,
	).Scan(&prev.Date, &prev.Score, &prev.Grade)
	if err != nil && err != sql.ErrNoRows {
		return "", 0, false, fmt.Errorf("load previous score: %w", err)
	}
	if err == nil {
		previous = &prev
	}

	domainScores, err := json.Marshal(score.DomainScores)
	if err != nil {
		return "", 0, false, fmt.Errorf("marshal domain scores: %w", err)
	}
	weights, err := json.Marshal(score.Weights)
	if err != nil {
		return "", 0, false, fmt.Errorf("marshal weights: %w", err)
	}
	warnings, err := json.Marshal(score.Warnings)
	if err != nil {
		return "", 0, false, fmt.Errorf("marshal warnings: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO vendor_scores (vendor_id, scan_id, global_score, grade, domain_scores, weights, size_category, confidence, warnings, scan_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (vendor_id, scan_id) DO NOTHING`,
		score.VendorID, score.ScanID, score.GlobalScore, score.Grade,
		domainScores, weights, score.SizeCategory, score.Confidence, warnings, score.ScanDate,
	)
	if err != nil {
		return "", 0, false, fmt.Errorf("insert vendor score: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return "", 0, false, fmt.Errorf("insert vendor score: %w", err)
	}
	if affected == 0 {
		// Already committed under this scan_id; history stays untouched.
		return "", 0, true, nil
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO score_history (vendor_id, scan_id, recorded_at, score, grade)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (vendor_id, scan_id) DO NOTHING`,
		score.VendorID, score.ScanID, score.ScanDate, score.GlobalScore, score.Grade,
	); err != nil {
		return "", 0, false, fmt.Errorf("append score history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", 0, false, fmt.Errorf("commit score: %w", err)
	}

	trend, delta := scoring.ClassifyTrend(previous, score.GlobalScore)
	return trend, delta, false, nil
}

func (s *Service) storedScore(ctx context.Context, vendorID, scanID string) (*scoring.VendorScore, error) {
	vs := &scoring.VendorScore{}
	var domainScores, weights, warnings []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT vendor_id, scan_id, global_score, grade, domain_scores, weights, size_category, confidence, warnings, scan_date
		 FROM vendor_scores WHERE vendor_id = $1 AND scan_id = $2`,
		vendorID, scanID,
	).Scan(&vs.VendorID, &vs.ScanID, &vs.GlobalScore, &vs.Grade, &domainScores, &weights, &vs.SizeCategory, &vs.Confidence, &warnings, &vs.ScanDate)
	if err != nil {
		return nil, fmt.Errorf("load stored score %s/%s: %w", vendorID, scanID, err)
	}
	if err := json.Unmarshal(domainScores, &vs.DomainScores); err != nil {
		return nil, fmt.Errorf("decode domain scores: %w", err)
	}
	if err := json.Unmarshal(weights, &vs.Weights); err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}
	if len(warnings) > 0 {
		if err := json.Unmarshal(warnings, &vs.Warnings); err != nil {
			return nil, fmt.Errorf("decode warnings: %w", err)
		}
	}
	return vs, nil
}
