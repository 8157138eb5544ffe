package queue

// Result is a Delegate's verdict on one executed action.
type Result int

const (
	// ResultSuccess removes the action from the durable log.
	ResultSuccess Result = iota
	// ResultFailurePause pauses the queue. The action stays at the head and
	// is retried after Resume.
	ResultFailurePause
	// ResultFailureRetry keeps the action at the head and retries it after
	// the queue's retry backoff, without pausing.
	ResultFailureRetry
)

// Delegate executes the actual side effect for one payload. Execute runs on
// the queue's worker goroutine, one invocation at a time, and may block for
// its duration; a long callback stalls subsequent actions but never the
// insert path.
//
// Any Result value outside the three defined constants is treated as
// ResultFailurePause, the conservative outcome.
type Delegate interface {
	Execute(payload []byte) Result
}

// AutoResumeApprover is an optional Delegate extension consulted before an
// automatic resume (timer or reachability trigger). Delegates that do not
// implement it approve by default.
type AutoResumeApprover interface {
	ShouldAutoResume() bool
}

// Keepalive is an environment-provided service spanning each Delegate
// callback, for hosts that impose execution-time budgets on background work.
// Begin is called before Execute; the returned end func after it returns.
type Keepalive interface {
	Begin(queueName string) (end func())
}

// ReachabilityMonitor is an environment-provided connectivity signal. The
// subscription callback receives true when the network becomes reachable.
type ReachabilityMonitor interface {
	Subscribe(fn func(reachable bool)) (cancel func())
}

// Verdict is a Filter predicate's decision for one stored payload.
type Verdict int

const (
	// VerdictKeep leaves the record in place.
	VerdictKeep Verdict = iota
	// VerdictDelete removes the record, best-effort.
	VerdictDelete
)
