package tui

import (
	"github.com/rsaniceto14/investctl/internal/collection"
	"github.com/rsaniceto14/investctl/internal/model"
)

// reloadRequestMsg asks for a fresh fetch of the page the state currently
// points at. Init sends one so the first page loads on startup.
type reloadRequestMsg struct{}

// investmentsLoadedMsg carries one page-fetch result together with the load
// token minted when the fetch was issued.
type investmentsLoadedMsg struct {
	err         error
	investments []model.Investment
	token       collection.Token
}

// investmentDeletedMsg reports the outcome of a remote delete.
type investmentDeletedMsg struct {
	err error
	id  int64
}

// investmentSavedMsg reports the outcome of a create or update.
type investmentSavedMsg struct {
	err     error
	created bool
}

// noticeExpiredMsg clears the status-line notice it was scheduled for.
// Notices posted later carry a higher seq and stay untouched.
type noticeExpiredMsg struct {
	seq int
}
