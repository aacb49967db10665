package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanStarted Type = iota + 1
	ScanProgress
	ScanComplete
	CopyStarted
	CopyProgress
	CopyComplete
	DirCreated
	DirFailed
	FileCopied
	FileHollowed
	FileExcluded
	FileFailed
)

var typeNames = [...]string{
	ScanStarted:  "ScanStarted",
	ScanProgress: "ScanProgress",
	ScanComplete: "ScanComplete",
	CopyStarted:  "CopyStarted",
	CopyProgress: "CopyProgress",
	CopyComplete: "CopyComplete",
	DirCreated:   "DirCreated",
	DirFailed:    "DirFailed",
	FileCopied:   "FileCopied",
	FileHollowed: "FileHollowed",
	FileExcluded: "FileExcluded",
	FileFailed:   "FileFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Phase names the walk an event belongs to.
type Phase string

const (
	PhaseScan Phase = "scan"
	PhaseCopy Phase = "copy"
)

// Phase reports which walk emitted events of this type.
func (t Type) Phase() Phase {
	switch t {
	case ScanStarted, ScanProgress, ScanComplete:
		return PhaseScan
	default:
		return PhaseCopy
	}
}

// Event represents a single progress event from the engine.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // path relative to the source root
	Size      int64  // file size, or bytes written for FileCopied
	Processed int64  // files handled so far (progress and completion events)
	Total     int64  // expected files (CopyProgress) or files found (ScanComplete)
	TotalSize int64  // bytes to full-copy (ScanComplete)
	Error     error
}

// Fraction returns Processed/Total clamped to [0,1]. A zero Total counts as one.
func (e Event) Fraction() float64 {
	total := e.Total
	if total <= 0 {
		total = 1
	}
	f := float64(e.Processed) / float64(total)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}
