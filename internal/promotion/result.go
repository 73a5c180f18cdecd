package promotion

// Result is the terminal outcome of a promotion run.
type Result string

const (
	// ResultReleased means the promoted artifact is verified live in production.
	ResultReleased Result = "released"

	// ResultAborted means the referenced artifact did not exist; the run
	// ended cleanly with zero production mutations.
	ResultAborted Result = "aborted"

	// ResultFailed means a fatal error halted the run.
	ResultFailed Result = "failed"
)

// RolloutState tracks the rollout sub-machine within a run.
type RolloutState string

const (
	RolloutNotStarted RolloutState = "not-started"
	RolloutTriggered  RolloutState = "rollout-triggered"
	RolloutSucceeded  RolloutState = "succeeded"
	RolloutFailed     RolloutState = "failed"
	RolloutTimedOut   RolloutState = "timed-out"
)
