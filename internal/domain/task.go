package domain

// TaskStatus is the lifecycle state of a background request
type TaskStatus int

const (
	TaskRunning TaskStatus = iota
	TaskCompleted
	TaskFailed
	TaskDiscarded // superseded; its result is dropped
)

func (s TaskStatus) String() string {
	switch s {
	case TaskRunning:
		return "running"
	case TaskCompleted:
		return "completed"
	case TaskFailed:
		return "failed"
	case TaskDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}
