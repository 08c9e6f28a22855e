package model

// TaskStatus represents the state of a download task within its lifecycle
type TaskStatus string

const (
	// TaskStatusIdle means no task exists for the user yet
	TaskStatusIdle TaskStatus = "Idle"

	// TaskStatusFormatsShown means a quality picker has been presented
	TaskStatusFormatsShown TaskStatus = "FormatsShown"

	// TaskStatusDownloading means the fetch is in progress
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusSizeCheck means the downloaded file is being size-gated
	TaskStatusSizeCheck TaskStatus = "SizeCheck"

	// TaskStatusUploading means the file is being delivered to the user
	TaskStatusUploading TaskStatus = "Uploading"

	// TaskStatusDone means the task finished successfully
	TaskStatusDone TaskStatus = "Done"

	// TaskStatusFailed means the task failed at some non-terminal state
	TaskStatusFailed TaskStatus = "Failed"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is between selection and completion
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusDownloading || ts == TaskStatusSizeCheck || ts == TaskStatusUploading
}

// IsTerminal returns true if the task reached a final state
func (ts TaskStatus) IsTerminal() bool {
	return ts == TaskStatusDone || ts == TaskStatusFailed
}

// CanTransitionTo reports whether moving to next is a legal lifecycle step.
// Failed is reachable from every non-terminal state.
func (ts TaskStatus) CanTransitionTo(next TaskStatus) bool {
	if next == TaskStatusFailed {
		return !ts.IsTerminal()
	}

	switch ts {
	case TaskStatusIdle:
		return next == TaskStatusFormatsShown
	case TaskStatusFormatsShown:
		return next == TaskStatusDownloading
	case TaskStatusDownloading:
		return next == TaskStatusSizeCheck
	case TaskStatusSizeCheck:
		return next == TaskStatusUploading
	case TaskStatusUploading:
		return next == TaskStatusDone
	default:
		return false
	}
}

// ProgressPhase distinguishes an in-flight fetch from its terminal event
type ProgressPhase string

const (
	// PhaseFetching means bytes are still being transferred
	PhaseFetching ProgressPhase = "fetching"

	// PhaseFinished means the fetch completed and post-processing begins
	PhaseFinished ProgressPhase = "finished"
)
