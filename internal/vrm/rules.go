package vrm

import (
	"time"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

// CheckDisputeCreation validates that a finding can be disputed. The finding
// must currently be open or acknowledged, and must not already be under an
// active dispute.
func CheckDisputeCreation(findingStatus scoring.FindingStatus, hasActiveDispute bool) error {
	if hasActiveDispute {
		return conflictf("finding already has an active dispute")
	}
	switch findingStatus {
	case scoring.FindingOpen, scoring.FindingAcknowledged:
		return nil
	default:
		return conflictf("finding in status %q cannot be disputed", findingStatus)
	}
}

// CheckTransition validates a dispute status change. The machine is strict:
// open -> in_review -> resolved | rejected, nothing else.
func CheckTransition(current, next DisputeStatus) error {
	switch current {
	case DisputeOpen:
		if next == DisputeInReview {
			return nil
		}
	case DisputeInReview:
		if next == DisputeResolved || next == DisputeRejected {
			return nil
		}
	case DisputeResolved, DisputeRejected:
		return conflictf("dispute already %s, no further transitions allowed", current)
	}
	return conflictf("illegal dispute transition %s -> %s", current, next)
}

// FindingStatusAfter returns the finding status a dispute transition implies,
// or "" when the transition leaves the finding untouched. Resolving a dispute
// resolves the finding; rejecting it reopens the finding.
func FindingStatusAfter(next DisputeStatus) scoring.FindingStatus {
	switch next {
	case DisputeResolved:
		return scoring.FindingResolved
	case DisputeRejected:
		return scoring.FindingOpen
	default:
		return ""
	}
}

// AddBusinessHours advances t by the given number of business hours, skipping
// Saturdays and Sundays. Used to compute SLA deadlines.
func AddBusinessHours(t time.Time, hours int) time.Time {
	remaining := hours
	for remaining > 0 {
		t = t.Add(time.Hour)
		switch t.Weekday() {
		case time.Saturday, time.Sunday:
			// weekend hours don't count against the SLA
		default:
			remaining--
		}
	}
	return t
}

// DisputeOverdue reports whether a dispute has breached its SLA: the deadline
// has passed while the dispute is still active. A breach surfaces as a flag
// for alerting; it never auto-resolves the dispute.
func DisputeOverdue(d *Dispute, now time.Time) bool {
	return d.Status.Active() && now.After(d.SLADeadline)
}

// EffectiveRemediationStatus derives the read-time status of a remediation:
// a pending or in-progress item past its deadline reads as overdue. Completed
// items are never overdue.
func EffectiveRemediationStatus(stored RemediationStatus, deadline, now time.Time) RemediationStatus {
	if stored != RemediationCompleted && deadline.Before(now) {
		return RemediationOverdue
	}
	return stored
}
