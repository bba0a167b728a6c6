// Package fields resolves logical card fields out of CCMS attribute maps.
package fields

import (
	"github.com/comda/boi-proxy/internal/boi/domain"
	"github.com/comda/boi-proxy/pkg/config"
)

// Role is a logical card field, independent of the key a caller uses for it
type Role string

const (
	IdNumber       Role = "id_number"
	EmployeeNumber Role = "employee_number"
	CardNumber     Role = "card_number"
	FirstName      Role = "first_name"
	LastName       Role = "last_name"
	FirstNameEng   Role = "first_name_eng"
	LastNameEng    Role = "last_name_eng"
	EmployeeType   Role = "employee_type"
	HireDate       Role = "hire_date"
	FireDate       Role = "fire_date"
	PhoneNumber    Role = "phone_number"
	Email          Role = "email"
	UPN            Role = "upn"
	Photo          Role = "photo"
	PhotoBase64    Role = "photo_base64"
)

// photoChain is tried in order; the first non-empty value wins
var photoChain = []Role{PhotoBase64, Photo}

// Table maps roles to the literal CardData keys. It is built once and never mutated.
type Table struct {
	keys map[Role]string
}

// NewTable builds the mapping table from configuration
func NewTable(cfg config.CardFieldsConfig) *Table {
	return &Table{keys: map[Role]string{
		IdNumber:       cfg.IdNumber,
		EmployeeNumber: cfg.EmployeeNumber,
		CardNumber:     cfg.CardNumber,
		FirstName:      cfg.FirstName,
		LastName:       cfg.LastName,
		FirstNameEng:   cfg.FirstNameEng,
		LastNameEng:    cfg.LastNameEng,
		EmployeeType:   cfg.EmployeeType,
		HireDate:       cfg.HireDate,
		FireDate:       cfg.FireDate,
		PhoneNumber:    cfg.PhoneNumber,
		Email:          cfg.Email,
		UPN:            cfg.UPN,
		Photo:          cfg.Photo,
		PhotoBase64:    cfg.PhotoBase64,
	}}
}

// Key returns the CardData key configured for role
func (t *Table) Key(role Role) string {
	return t.keys[role]
}

// Resolve returns the stringified value for role, or "" when it is
// unmapped, absent or null.
func (t *Table) Resolve(attrs domain.AttributeMap, role Role) string {
	key := t.keys[role]
	if key == "" {
		return ""
	}
	v, ok := attrs[key]
	if !ok {
		return ""
	}
	return v.String()
}

// Photo resolves the picture, preferring the base64 field over the raw one
func (t *Table) Photo(attrs domain.AttributeMap) string {
	for _, role := range photoChain {
		if v := t.Resolve(attrs, role); v != "" {
			return v
		}
	}
	return ""
}
