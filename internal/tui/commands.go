package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rsaniceto14/investctl/internal/collection"
	"github.com/rsaniceto14/investctl/internal/model"
)

const requestTimeout = 30 * time.Second

// Service is the remote investment collection the browser talks to.
// FetchPage takes the zero-based page index the wire protocol uses.
type Service interface {
	FetchPage(ctx context.Context, page, size int) ([]model.Investment, error)
	Create(ctx context.Context, inv model.Investment) error
	Update(ctx context.Context, inv model.Investment) error
	Delete(ctx context.Context, id int64) error
}

// fetchPage loads one page from the service. The UI counts pages from one,
// the wire counts from zero.
func (m Model) fetchPage(token collection.Token, page, size int) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		investments, err := svc.FetchPage(ctx, page-1, size)
		return investmentsLoadedMsg{err: err, investments: investments, token: token}
	}
}

// deleteInvestment removes one record remotely. The local state is only
// touched once the service confirms.
func (m Model) deleteInvestment(id int64) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := svc.Delete(ctx, id)
		return investmentDeletedMsg{err: err, id: id}
	}
}

// saveInvestment creates or updates one record remotely.
func (m Model) saveInvestment(inv model.Investment, isNew bool) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var err error
		if isNew {
			err = svc.Create(ctx, inv)
		} else {
			err = svc.Update(ctx, inv)
		}
		return investmentSavedMsg{err: err, created: isNew}
	}
}
