package models

import (
	"fmt"
	"time"
)

// Pos is a point of sale in the campus catalog.
//
// Invariants:
//   - Name is non-empty and unique across all persisted records
//   - ID == 0 means the record has not been persisted yet; the store assigns
//     the identity and timestamps on the first upsert
//   - Street, HouseNumber and City are non-empty for persisted records
type Pos struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        PosType    `json:"type"`
	Campus      CampusType `json:"campus"`
	Street      string     `json:"street"`
	HouseNumber string     `json:"house_number"`
	PostalCode  int        `json:"postal_code"`
	City        string     `json:"city"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Persisted reports whether the record carries a store-assigned identity.
func (p Pos) Persisted() bool {
	return p.ID != 0
}

// PosType classifies what kind of outlet a point of sale is.
//
// Usage: construct via ParsePosType at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type PosType string

const (
	PosTypeCafe           PosType = "CAFE"
	PosTypeCafeteria      PosType = "CAFETERIA"
	PosTypeBakery         PosType = "BAKERY"
	PosTypeVendingMachine PosType = "VENDING_MACHINE"
)

// validPosTypes is the single source of truth for valid POS types.
var validPosTypes = map[PosType]bool{
	PosTypeCafe:           true,
	PosTypeCafeteria:      true,
	PosTypeBakery:         true,
	PosTypeVendingMachine: true,
}

// ParsePosType constructs a PosType from external input.
func ParsePosType(s string) (PosType, error) {
	t := PosType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown pos type: %q", s)
	}
	return t, nil
}

// IsValid checks if the POS type is one of the supported enum values.
func (t PosType) IsValid() bool {
	return validPosTypes[t]
}

func (t PosType) String() string {
	return string(t)
}
