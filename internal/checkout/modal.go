package checkout

import (
	"errors"
	"fmt"
)

var ErrIllegalTransition = errors.New("illegal transition of order modal state")

type ModalState string

const (
	ModalClosed        ModalState = "CLOSED"
	ModalOpenBrowsing  ModalState = "OPEN_BROWSING"
	ModalOpenConfirmed ModalState = "OPEN_CONFIRMED"
)

func (s ModalState) IsOpen() bool {
	return s == ModalOpenBrowsing || s == ModalOpenConfirmed
}

// IsConfirmed is true only until the modal is closed.
func (s ModalState) IsConfirmed() bool {
	return s == ModalOpenConfirmed
}

// String representation (for logging)
func (s ModalState) String() string {
	return string(s)
}

type Action string

const (
	ActionOpen    Action = "open"
	ActionConfirm Action = "confirm"
	ActionClose   Action = "close"
)

// Modal tracks the order summary dialog. The zero value is closed.
type Modal struct {
	state ModalState
}

func (m *Modal) State() ModalState {
	if m.state == "" {
		return ModalClosed
	}
	return m.state
}

// Next returns the state reached by applying action to from.
//
//	CLOSED         --open-->    OPEN_BROWSING
//	OPEN_BROWSING  --open-->    OPEN_BROWSING
//	OPEN_BROWSING  --confirm--> OPEN_CONFIRMED
//	OPEN_*         --close-->   CLOSED
func Next(from ModalState, action Action) (ModalState, error) {
	switch {
	case action == ActionOpen && (from == ModalClosed || from == ModalOpenBrowsing):
		return ModalOpenBrowsing, nil
	case action == ActionConfirm && from == ModalOpenBrowsing:
		return ModalOpenConfirmed, nil
	case action == ActionClose && from.IsOpen():
		return ModalClosed, nil
	}
	return from, fmt.Errorf("%s from %s: %w", action, from, ErrIllegalTransition)
}

// Apply moves the modal. The state is left as is when the transition is illegal.
func (m *Modal) Apply(action Action) (ModalState, error) {
	next, err := Next(m.State(), action)
	if err != nil {
		return m.State(), err
	}
	m.state = next
	return next, nil
}

func (m *Modal) Open() error {
	_, err := m.Apply(ActionOpen)
	return err
}

func (m *Modal) Confirm() error {
	_, err := m.Apply(ActionConfirm)
	return err
}

func (m *Modal) Close() error {
	_, err := m.Apply(ActionClose)
	return err
}
