package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/shopspring/decimal"
)

// EntryFilter holds equality predicates for an example query.
// A nil field leaves the corresponding column unconstrained.
type EntryFilter struct {
	ID               *uuid.UUID
	Description      *string
	Month            *int
	Year             *int
	Amount           *decimal.Decimal
	OwnerUserID      *uuid.UUID
	Type             *domain.EntryType
	Status           *domain.EntryStatus
	RegistrationDate *time.Time
}

// EntryFilterFromTemplate derives a filter from the set fields of a template
// entry. Zero values (uuid.Nil, "", 0, nil, zero time) are treated as unset.
func EntryFilterFromTemplate(tmpl *domain.Entry) EntryFilter {
	var f EntryFilter
	if tmpl == nil {
		return f
	}
	if tmpl.ID != uuid.Nil {
		id := tmpl.ID
		f.ID = &id
	}
	if tmpl.Description != "" {
		d := tmpl.Description
		f.Description = &d
	}
	if tmpl.Month != 0 {
		m := tmpl.Month
		f.Month = &m
	}
	if tmpl.Year != 0 {
		y := tmpl.Year
		f.Year = &y
	}
	if tmpl.Amount != nil {
		a := *tmpl.Amount
		f.Amount = &a
	}
	if tmpl.OwnerUserID != uuid.Nil {
		o := tmpl.OwnerUserID
		f.OwnerUserID = &o
	}
	if tmpl.Type != "" {
		t := tmpl.Type
		f.Type = &t
	}
	if tmpl.Status != "" {
		s := tmpl.Status
		f.Status = &s
	}
	if !tmpl.RegistrationDate.IsZero() {
		r := tmpl.RegistrationDate
		f.RegistrationDate = &r
	}
	return f
}

// IsEmpty reports whether the filter has no predicates.
func (f EntryFilter) IsEmpty() bool {
	return f.ID == nil && f.Description == nil && f.Month == nil && f.Year == nil &&
		f.Amount == nil && f.OwnerUserID == nil && f.Type == nil && f.Status == nil &&
		f.RegistrationDate == nil
}

// Matches reports whether e satisfies every predicate of the filter.
func (f EntryFilter) Matches(e *domain.Entry) bool {
	if e == nil {
		return false
	}
	switch {
	case f.ID != nil && *f.ID != e.ID:
		return false
	case f.Description != nil && *f.Description != e.Description:
		return false
	case f.Month != nil && *f.Month != e.Month:
		return false
	case f.Year != nil && *f.Year != e.Year:
		return false
	case f.Amount != nil && (e.Amount == nil || !f.Amount.Equal(*e.Amount)):
		return false
	case f.OwnerUserID != nil && *f.OwnerUserID != e.OwnerUserID:
		return false
	case f.Type != nil && *f.Type != e.Type:
		return false
	case f.Status != nil && *f.Status != e.Status:
		return false
	case f.RegistrationDate != nil && !sameDate(*f.RegistrationDate, e.RegistrationDate):
		return false
	}
	return true
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
