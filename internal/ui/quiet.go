package ui

// quietPresenter drains the channel so the walk never blocks on a send.
// Failures still reach the user through the command's failure report.
type quietPresenter struct{}

func (quietPresenter) Run(events <-chan Event) error {
	//nolint:revive // empty-block: draining is the whole job
	for range events {
	}
	return nil
}

func (quietPresenter) Summary() string { return "" }
