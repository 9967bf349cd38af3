package shared

// Task types registered with the asynq mux.
const (
	TypeOverdueSweep = "lending:overdue_sweep"
)

// Queue names, ordered by worker priority.
const (
	QueueLending = "lending"
	QueueDefault = "default"
)
