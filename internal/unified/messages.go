package unified

import (
	"time"

	"github.com/blackwell-systems/optibridge/internal/backend"
)

// NavigateMsg is emitted when a view wants to switch to another view.
type NavigateMsg struct {
	Target View
}

// QuitAppMsg is emitted when the entire application should quit.
type QuitAppMsg struct{}

// tickMsg drives toast expiry and the copy-highlight timer.
type tickMsg time.Time

// processDoneMsg carries a process request's outcome back into the
// event loop, stamped with the workflow token it was issued under.
type processDoneMsg struct {
	token uint64
	img   *backend.ProcessedImage
	err   error
}

// uploadDoneMsg carries an upload request's outcome.
type uploadDoneMsg struct {
	token uint64
	res   *backend.UploadResult
	err   error
}

// historyLoadedMsg carries a reload response, stamped with the history
// manager's token.
type historyLoadedMsg struct {
	token uint64
	items []backend.HistoryItem
	err   error
}

// deleteDoneMsg reports a delete request's outcome.
type deleteDoneMsg struct {
	item backend.HistoryItem
	err  error
}

// configLoadedMsg carries the daemon config for the settings view.
type configLoadedMsg struct {
	cfg *backend.Config
	err error
}

// configSavedMsg reports a save-config outcome.
type configSavedMsg struct {
	err error
}
