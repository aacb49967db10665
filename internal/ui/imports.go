package ui

import "github.com/bamsammich/hollow/internal/event"

// Event is re-exported so presenters read as ui.Event.
type Event = event.Event

// Re-export event types for convenience.
const (
	ScanStarted  = event.ScanStarted
	ScanProgress = event.ScanProgress
	ScanComplete = event.ScanComplete
	CopyStarted  = event.CopyStarted
	CopyProgress = event.CopyProgress
	CopyComplete = event.CopyComplete
	DirCreated   = event.DirCreated
	DirFailed    = event.DirFailed
	FileCopied   = event.FileCopied
	FileHollowed = event.FileHollowed
	FileExcluded = event.FileExcluded
	FileFailed   = event.FileFailed
)
