package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType is the direction of money flow of an entry.
type EntryType string

// Possible entry types
const (
	EntryTypeIncome  EntryType = "INCOME"
	EntryTypeExpense EntryType = "EXPENSE"
)

// EntryStatus is the workflow state of an entry.
// Any status may move to any other status; there is no terminal state.
type EntryStatus string

// Possible entry status values
const (
	EntryStatusPending   EntryStatus = "PENDING"
	EntryStatusSettled   EntryStatus = "SETTLED"
	EntryStatusCancelled EntryStatus = "CANCELLED"
)

// Validation messages for Entry, reported in this order.
const (
	MsgInvalidDescription = "Informe uma Descrição válida."
	MsgInvalidMonth       = "Informe um Mês válido."
	MsgInvalidYear        = "Informe um Ano válido."
	MsgMissingOwner       = "Informe um Usuário."
	MsgInvalidAmount      = "Informe um Valor válido."
	MsgMissingEntryType   = "Informe um Tipo de Lançamento."

	// MsgInvalidStatus is reported when a status outside the known set is stored.
	MsgInvalidStatus = "Não foi possível atualizar o status do lançamento, envie um status válido."
)

// Entry is a single income or expense record tied to one user,
// one month/year and one monetary amount.
type Entry struct {
	ID               uuid.UUID        `json:"id"`
	Description      string           `json:"description"`
	Month            int              `json:"month"`
	Year             int              `json:"year"`
	Amount           *decimal.Decimal `json:"amount"`
	OwnerUserID      uuid.UUID        `json:"user"`
	Type             EntryType        `json:"type"`
	Status           EntryStatus      `json:"status"`
	RegistrationDate time.Time        `json:"registration_date"`
}

// IsPersisted reports whether the entry has been assigned an ID by a store.
func (e *Entry) IsPersisted() bool {
	return e.ID != uuid.Nil
}

// entryRule is one step of entry validation.
type entryRule struct {
	field   string
	message string
	valid   func(e *Entry) bool
}

// entryRules are evaluated in order; the first failing rule is reported.
var entryRules = []entryRule{
	{"description", MsgInvalidDescription, func(e *Entry) bool {
		return strings.TrimSpace(e.Description) != ""
	}},
	{"month", MsgInvalidMonth, func(e *Entry) bool {
		return e.Month >= 1 && e.Month <= 12
	}},
	{"year", MsgInvalidYear, func(e *Entry) bool {
		return e.Year >= 1000 && e.Year <= 9999
	}},
	{"user", MsgMissingOwner, func(e *Entry) bool {
		return e.OwnerUserID != uuid.Nil
	}},
	{"amount", MsgInvalidAmount, func(e *Entry) bool {
		return e.Amount != nil
	}},
	{"type", MsgMissingEntryType, func(e *Entry) bool {
		return e.Type.IsValid()
	}},
}

// Validate checks the entry fields in a fixed order and returns a
// *ValidationError for the first field that fails.
func (e *Entry) Validate() error {
	for _, rule := range entryRules {
		if !rule.valid(e) {
			return NewValidationError(rule.field, rule.message)
		}
	}
	return nil
}

// ValidateStatus reports a *ValidationError when the status is not one of
// PENDING, SETTLED or CANCELLED. It is separate from Validate, which does not
// look at the status.
func (e *Entry) ValidateStatus() error {
	if !e.Status.IsValid() {
		return NewValidationError("status", MsgInvalidStatus)
	}
	return nil
}

// IsValid reports whether t is a known entry type.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeIncome, EntryTypeExpense:
		return true
	default:
		return false
	}
}

// IsValid reports whether s is a known entry status.
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusPending, EntryStatusSettled, EntryStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseEntryType converts a case-insensitive string into an EntryType.
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown entry type %q", ErrInvalidFormat, s)
	}
	return t, nil
}

// ParseEntryStatus converts a case-insensitive string into an EntryStatus.
func ParseEntryStatus(s string) (EntryStatus, error) {
	st := EntryStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: unknown entry status %q", ErrInvalidFormat, s)
	}
	return st, nil
}

// Today returns the current date (UTC, midnight) used as registration date.
func Today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
