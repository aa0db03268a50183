package entity

import (
	"github.com/quoridorlive/quoridor-backend/internal/apperror"
	"github.com/quoridorlive/quoridor-backend/internal/quoridor"
)

// Session is the lobby record: which identity holds which seat, per-seat
// readiness, and whether a match is currently live. Transitions return a
// sentinel error on rejection so the caller can decide whether to log or
// drop it; the record itself never changes on a rejected transition.
type Session struct {
	Roles   map[int]string `json:"roles"`
	Ready   map[int]bool   `json:"readyStatus"`
	Started bool           `json:"isGameStarted"`
}

func NewSession() *Session {
	return &Session{
		Roles: map[int]string{quoridor.RoleP1: "", quoridor.RoleP2: ""},
		Ready: map[int]bool{quoridor.RoleP1: false, quoridor.RoleP2: false},
	}
}

// SelectRole binds the identity to a seat. Role 0 is the explicit "vacate
// my seat" action. Taking a new seat while holding another clears the old
// seat and its readiness; a seat bound to someone else is rejected.
func (that *Session) SelectRole(identity string, role int) error {
	if role == quoridor.RoleNone {
		that.Vacate(identity)
		return nil
	}

	if role != quoridor.RoleP1 && role != quoridor.RoleP2 {
		return apperror.ErrUnknownRole
	}

	if holder := that.Roles[role]; holder != "" && holder != identity {
		return apperror.ErrRoleTaken
	}

	that.Vacate(identity)
	that.Roles[role] = identity

	return nil
}

// ToggleReady flips the readiness flag of a seat, but only for its holder.
func (that *Session) ToggleReady(identity string, role int) error {
	if role != quoridor.RoleP1 && role != quoridor.RoleP2 {
		return apperror.ErrUnknownRole
	}

	if that.Roles[role] != identity {
		return apperror.ErrNotYourRole
	}

	that.Ready[role] = !that.Ready[role]

	return nil
}

// BothReady reports whether both seats are bound and marked ready.
func (that *Session) BothReady() bool {
	return that.Roles[quoridor.RoleP1] != "" && that.Roles[quoridor.RoleP2] != "" &&
		that.Ready[quoridor.RoleP1] && that.Ready[quoridor.RoleP2]
}

// RoleOf returns the seat the identity holds, or RoleNone.
func (that *Session) RoleOf(identity string) int {
	if identity == "" {
		return quoridor.RoleNone
	}

	for role, holder := range that.Roles {
		if holder == identity {
			return role
		}
	}

	return quoridor.RoleNone
}

// Vacate clears any seat the identity holds along with its readiness flag
// and returns the vacated role, or RoleNone if it held no seat.
func (that *Session) Vacate(identity string) int {
	role := that.RoleOf(identity)
	if role != quoridor.RoleNone {
		that.Roles[role] = ""
		that.Ready[role] = false
	}

	return role
}

// ClearReadiness drops both readiness flags and marks the session
// not-started; seats stay bound.
func (that *Session) ClearReadiness() {
	that.Ready[quoridor.RoleP1] = false
	that.Ready[quoridor.RoleP2] = false
	that.Started = false
}

// Clone returns a copy safe to hand to another goroutine.
func (that *Session) Clone() *Session {
	clone := NewSession()
	clone.Started = that.Started

	for role, holder := range that.Roles {
		clone.Roles[role] = holder
	}
	for role, ready := range that.Ready {
		clone.Ready[role] = ready
	}

	return clone
}
