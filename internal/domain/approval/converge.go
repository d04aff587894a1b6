package approval

// Converge computes the final status from the full current decision set.
// Any rejection vetoes regardless of approvals, so callers must always
// re-scan every decision and never short-circuit on first quorum.
func Converge(decisions []ApprovalDecision, requiredApprovals int) Status {
	if requiredApprovals < 1 {
		requiredApprovals = 1
	}
	approved := 0
	for _, d := range decisions {
		switch d.Status {
		case StatusRejected:
			return StatusRejected
		case StatusApproved:
			approved++
		}
	}
	if approved >= requiredApprovals {
		return StatusApproved
	}
	return StatusPending
}
