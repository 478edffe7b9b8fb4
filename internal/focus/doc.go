// Package focus is the event/lap accounting engine: the lap ledger, the
// threshold policy, the event state machine and the merge operator.
package focus
