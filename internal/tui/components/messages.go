package components

import "github.com/rsaniceto14/investctl/internal/model"

// SaveRequestedMsg asks the parent to persist the form's investment. IsNew
// distinguishes create from update.
type SaveRequestedMsg struct {
	Investment model.Investment
	IsNew      bool
}

// FormCancelledMsg asks the parent to close the form without saving.
type FormCancelledMsg struct{}

// DeleteConfirmedMsg asks the parent to delete the investment the dialog was
// opened for.
type DeleteConfirmedMsg struct {
	Investment model.Investment
}

// DialogCancelledMsg asks the parent to dismiss the confirmation dialog.
type DialogCancelledMsg struct{}
