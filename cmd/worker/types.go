package main

// outcome is what happened to one queue message.
type outcome string

const (
	outcomeApplied   outcome = "applied"   // entity written, key marked DONE
	outcomeDuplicate outcome = "duplicate" // key already DONE, nothing written
	outcomeRejected  outcome = "rejected"  // entity can never be written; not retried
	outcomeRetry     outcome = "retry"     // transient failure; reported back to SQS
)
