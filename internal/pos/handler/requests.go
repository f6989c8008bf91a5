package handler

import (
	"fmt"
	"strings"

	"campuscoffee/internal/pos/models"
)

// UpsertPosRequest is the HTTP request DTO for creating or updating a POS.
type UpsertPosRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Campus      string `json:"campus"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	PostalCode  int    `json:"postal_code"`
	City        string `json:"city"`
}

// ToPos validates the request and builds the domain record. The ID is set by
// the caller for update routes and left zero for creates.
func (r UpsertPosRequest) ToPos(id int64) (models.Pos, error) {
	if strings.TrimSpace(r.Name) == "" {
		return models.Pos{}, fmt.Errorf("name is required")
	}
	posType, err := models.ParsePosType(r.Type)
	if err != nil {
		return models.Pos{}, err
	}
	campus, err := models.ParseCampusType(r.Campus)
	if err != nil {
		return models.Pos{}, err
	}
	if r.Street == "" || r.HouseNumber == "" || r.City == "" {
		return models.Pos{}, fmt.Errorf("street, house_number and city are required")
	}
	if r.PostalCode <= 0 {
		return models.Pos{}, fmt.Errorf("postal_code must be positive")
	}

	return models.Pos{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Type:        posType,
		Campus:      campus,
		Street:      r.Street,
		HouseNumber: r.HouseNumber,
		PostalCode:  r.PostalCode,
		City:        r.City,
	}, nil
}
