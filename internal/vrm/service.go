package vrm

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

// Service provides dispute and remediation management backed by Postgres.
type Service struct {
	db       *sql.DB
	slaHours int
}

// NewService creates a VRM Service. slaHours is the dispute review window in
// business hours.
func NewService(db *sql.DB, slaHours int) *Service {
	if slaHours <= 0 {
		slaHours = 48
	}
	return &Service{db: db, slaHours: slaHours}
}

// RescoreHint tells the caller a domain's findings changed and the vendor
// should be re-scored.
type RescoreHint struct {
	VendorID string
	Domain   scoring.Domain
}

// CreateDispute opens a dispute against a finding. The finding must be open
// or acknowledged and not already under an active dispute; on success the
// finding flips to disputed.
func (s *Service) CreateDispute(ctx context.Context, vendorID, findingID, requesterEmail string, evidenceURL *string) (*Dispute, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin dispute tx: %w", err)
	}
	defer tx.Rollback()

	var findingStatus scoring.FindingStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM findings WHERE id = $1 AND vendor_id = $2 FOR UPDATE`,
		findingID, vendorID,
	).Scan(&findingStatus)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Resource: "finding", ID: findingID}
	}
	if err != nil {
		return nil, fmt.Errorf("load finding %s: %w", findingID, err)
	}

	var hasActive bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM disputes
		   WHERE finding_id = $1 AND status IN ('open', 'in_review')
		 )`,
		findingID,
	).Scan(&hasActive)
	if err != nil {
		return nil, fmt.Errorf("check active disputes: %w", err)
	}

	if err := CheckDisputeCreation(findingStatus, hasActive); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d := &Dispute{
		ID:             uuid.New().String(),
		VendorID:       vendorID,
		FindingID:      findingID,
		Status:         DisputeOpen,
		EvidenceURL:    evidenceURL,
		RequesterEmail: requesterEmail,
		SLADeadline:    AddBusinessHours(now, s.slaHours),
		CreatedAt:      now,
		Version:        1,
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO disputes (id, vendor_id, finding_id, status, evidence_url, requester_email, sla_deadline, created_at, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.VendorID, d.FindingID, d.Status, d.EvidenceURL, d.RequesterEmail, d.SLADeadline, d.CreatedAt, d.Version,
	)
	if err != nil {
		// The partial unique index on active disputes closes the race two
		// concurrent creations could otherwise win together.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, conflictf("finding already has an active dispute")
		}
		return nil, fmt.Errorf("insert dispute: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE findings SET status = $1, updated_at = now() WHERE id = $2`,
		scoring.FindingDisputed, findingID,
	); err != nil {
		return nil, fmt.Errorf("flip finding to disputed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit dispute: %w", err)
	}
	return d, nil
}

// TransitionDispute moves a dispute through its state machine. Transitions on
// the same dispute are serialized through a version check: a concurrent
// attempt that loses the race gets a ConflictError. Resolving returns a
// RescoreHint so the caller can re-score the affected domain.
func (s *Service) TransitionDispute(ctx context.Context, disputeID string, next DisputeStatus, adminNotes *string) (*Dispute, *RescoreHint, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin transition tx: %w", err)
	}
	defer tx.Rollback()

	d := &Dispute{}
	err = tx.QueryRowContext(ctx,
		`SELECT id, vendor_id, finding_id, status, evidence_url, requester_email, admin_notes, sla_deadline, created_at, resolved_at, version
		 FROM disputes WHERE id = $1`,
		disputeID,
	).Scan(&d.ID, &d.VendorID, &d.FindingID, &d.Status, &d.EvidenceURL, &d.RequesterEmail, &d.AdminNotes, &d.SLADeadline, &d.CreatedAt, &d.ResolvedAt, &d.Version)
	if err == sql.ErrNoRows {
		return nil, nil, &NotFoundError{Resource: "dispute", ID: disputeID}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load dispute %s: %w", disputeID, err)
	}

	if err := CheckTransition(d.Status, next); err != nil {
		return nil, nil, err
	}

	var resolvedAt *time.Time
	if next == DisputeResolved || next == DisputeRejected {
		now := time.Now().UTC()
		resolvedAt = &now
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE disputes
		 SET status = $1,
		     admin_notes = COALESCE($2, admin_notes),
		     resolved_at = COALESCE($3, resolved_at),
		     version = version + 1
		 WHERE id = $4 AND version = $5`,
		next, adminNotes, resolvedAt, disputeID, d.Version,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("update dispute: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, nil, fmt.Errorf("update dispute: %w", err)
	}
	if affected == 0 {
		return nil, nil, conflictf("dispute %s was modified concurrently", disputeID)
	}

	var hint *RescoreHint
	if after := FindingStatusAfter(next); after != "" {
		var domain scoring.Domain
		err = tx.QueryRowContext(ctx,
			`UPDATE findings SET status = $1, updated_at = now() WHERE id = $2 RETURNING domain`,
			after, d.FindingID,
		).Scan(&domain)
		if err != nil {
			return nil, nil, fmt.Errorf("flip finding %s: %w", d.FindingID, err)
		}
		if next == DisputeResolved {
			hint = &RescoreHint{VendorID: d.VendorID, Domain: domain}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit transition: %w", err)
	}

	d.Status = next
	d.Version++
	if adminNotes != nil {
		d.AdminNotes = adminNotes
	}
	if resolvedAt != nil {
		d.ResolvedAt = resolvedAt
	}
	d.Overdue = DisputeOverdue(d, time.Now().UTC())
	return d, hint, nil
}

// ListDisputes returns a vendor's disputes, newest first, with the derived
// SLA-breach flag set.
func (s *Service) ListDisputes(ctx context.Context, vendorID string) ([]Dispute, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, vendor_id, finding_id, status, evidence_url, requester_email, admin_notes, sla_deadline, created_at, resolved_at, version
		 FROM disputes WHERE vendor_id = $1 ORDER BY created_at DESC`,
		vendorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list disputes: %w", err)
	}
	defer rows.Close()

	now := time.Now().UTC()
	var disputes []Dispute
	for rows.Next() {
		var d Dispute
		if err := rows.Scan(&d.ID, &d.VendorID, &d.FindingID, &d.Status, &d.EvidenceURL, &d.RequesterEmail, &d.AdminNotes, &d.SLADeadline, &d.CreatedAt, &d.ResolvedAt, &d.Version); err != nil {
			return nil, fmt.Errorf("scan dispute: %w", err)
		}
		d.Overdue = DisputeOverdue(&d, now)
		disputes = append(disputes, d)
	}
	return disputes, rows.Err()
}

// CreateRemediation records a remediation task for a vendor.
func (s *Service) CreateRemediation(ctx context.Context, vendorID, title, description string, priority RemediationPriority, deadline time.Time, assignedTo *string) (*Remediation, error) {
	r := &Remediation{
		ID:          uuid.New().String(),
		VendorID:    vendorID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Deadline:    deadline,
		Status:      RemediationPending,
		AssignedTo:  assignedTo,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO remediations (id, vendor_id, title, description, priority, deadline, status, assigned_to, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.VendorID, r.Title, r.Description, r.Priority, r.Deadline, r.Status, r.AssignedTo, r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert remediation: %w", err)
	}

	r.Status = EffectiveRemediationStatus(RemediationPending, r.Deadline, r.CreatedAt)
	return r, nil
}

// UpdateRemediationStatus sets the stored status of a remediation item.
// "overdue" is derived, never stored, and is rejected here.
func (s *Service) UpdateRemediationStatus(ctx context.Context, remediationID string, status RemediationStatus) (*Remediation, error) {
	switch status {
	case RemediationPending, RemediationInProgress, RemediationCompleted:
	case RemediationOverdue:
		return nil, conflictf("overdue is derived from the deadline and cannot be set")
	default:
		return nil, conflictf("unknown remediation status %q", status)
	}

	r := &Remediation{}
	err := s.db.QueryRowContext(ctx,
		`UPDATE remediations SET status = $1 WHERE id = $2
		 RETURNING id, vendor_id, title, description, priority, deadline, status, assigned_to, created_at`,
		status, remediationID,
	).Scan(&r.ID, &r.VendorID, &r.Title, &r.Description, &r.Priority, &r.Deadline, &r.Status, &r.AssignedTo, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Resource: "remediation", ID: remediationID}
	}
	if err != nil {
		return nil, fmt.Errorf("update remediation %s: %w", remediationID, err)
	}

	r.Status = EffectiveRemediationStatus(r.Status, r.Deadline, time.Now().UTC())
	return r, nil
}

// ListRemediations returns a vendor's remediation items with derived status.
func (s *Service) ListRemediations(ctx context.Context, vendorID string) ([]Remediation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, vendor_id, title, description, priority, deadline, status, assigned_to, created_at
		 FROM remediations WHERE vendor_id = $1 ORDER BY created_at DESC`,
		vendorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list remediations: %w", err)
	}
	defer rows.Close()

	now := time.Now().UTC()
	var items []Remediation
	for rows.Next() {
		var r Remediation
		if err := rows.Scan(&r.ID, &r.VendorID, &r.Title, &r.Description, &r.Priority, &r.Deadline, &r.Status, &r.AssignedTo, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan remediation: %w", err)
		}
		r.Status = EffectiveRemediationStatus(r.Status, r.Deadline, now)
		items = append(items, r)
	}
	return items, rows.Err()
}
