package tui

import (
	"fmt"

	"github.com/nightledger/nightledger/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewHistory
	viewCaregivers
	viewSettings
)

var viewNames = []string{"Home", "History", "Caregivers", "Settings"}

// --- Messages ---

type shiftLoggedMsg struct {
	shift *store.Shift
}

type shiftDeletedMsg struct{}

type caregiverSavedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatHours(h float64) string {
	return fmt.Sprintf("%.2fh", h)
}
