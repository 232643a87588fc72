// Package vrm manages vendor risk workflows: disputes raised against
// findings and remediation plans, with SLA tracking.
//
// The dispute state machine is the only path allowed to mutate a finding's
// status; no other component writes that field.
package vrm

import "time"

// DisputeStatus is the lifecycle state of a dispute.
type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "open"
	DisputeInReview DisputeStatus = "in_review"
	DisputeResolved DisputeStatus = "resolved"
	DisputeRejected DisputeStatus = "rejected"
)

// Dispute is a contestation of a single finding.
type Dispute struct {
	ID             string        `json:"id"`
	VendorID       string        `json:"vendor_id"`
	FindingID      string        `json:"finding_id"`
	Status         DisputeStatus `json:"status"`
	EvidenceURL    *string       `json:"evidence_url,omitempty"`
	RequesterEmail string        `json:"requester_email"`
	AdminNotes     *string       `json:"admin_notes,omitempty"`
	SLADeadline    time.Time     `json:"sla_deadline"`
	CreatedAt      time.Time     `json:"created_at"`
	ResolvedAt     *time.Time    `json:"resolved_at,omitempty"`

	// Version backs optimistic concurrency on transitions.
	Version int `json:"-"`

	// Overdue is derived on read: the SLA deadline has passed while the
	// dispute is still active. It never triggers a transition by itself.
	Overdue bool `json:"overdue"`
}

// Active reports whether the dispute still blocks new disputes on its finding.
func (d DisputeStatus) Active() bool {
	return d == DisputeOpen || d == DisputeInReview
}

// RemediationPriority orders remediation work.
type RemediationPriority string

const (
	PriorityCritical RemediationPriority = "critical"
	PriorityHigh     RemediationPriority = "high"
	PriorityMedium   RemediationPriority = "medium"
	PriorityLow      RemediationPriority = "low"
)

// RemediationStatus is the stored lifecycle state of a remediation item.
// "overdue" is never stored; it is derived on every read.
type RemediationStatus string

const (
	RemediationPending    RemediationStatus = "pending"
	RemediationInProgress RemediationStatus = "in_progress"
	RemediationCompleted  RemediationStatus = "completed"
	RemediationOverdue    RemediationStatus = "overdue"
)

// Remediation is one tracked remediation task for a vendor.
type Remediation struct {
	ID          string              `json:"id"`
	VendorID    string              `json:"vendor_id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Priority    RemediationPriority `json:"priority"`
	Deadline    time.Time           `json:"deadline"`
	Status      RemediationStatus   `json:"status"`
	AssignedTo  *string             `json:"assigned_to,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}
