package service

import (
	"strconv"
	"strings"

	"campuscoffee/internal/pos/models"
)

// convertOsmNode builds a creation candidate from a fetched OSM node.
// Name, street, house number, postal code and city must all be present and
// the postal code must contain digits; otherwise the node cannot back a
// valid POS record and OsmNodeMissingFieldsError is returned. The candidate
// always has ID zero.
func convertOsmNode(node models.OsmNode) (models.Pos, error) {
	if node.Name == nil || node.Street == nil || node.HouseNumber == nil ||
		node.PostalCode == nil || node.City == nil {
		return models.Pos{}, &models.OsmNodeMissingFieldsError{NodeID: node.NodeID}
	}

	postalCode, err := parsePostalCode(*node.PostalCode)
	if err != nil {
		return models.Pos{}, &models.OsmNodeMissingFieldsError{NodeID: node.NodeID}
	}

	description := ""
	if node.Description != nil {
		description = *node.Description
	}

	return models.Pos{
		Name:        *node.Name,
		Description: description,
		Type:        derivePosType(node),
		Campus:      deriveCampus(node.Campus),
		Street:      *node.Street,
		HouseNumber: *node.HouseNumber,
		PostalCode:  postalCode,
		City:        *node.City,
	}, nil
}

// parsePostalCode strips every non-digit character and parses the rest.
// "D-69117" parses to 69117; a string without digits is an error.
func parsePostalCode(raw string) (int, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return strconv.Atoi(digits.String())
}

// typeRules and nameRules are ordered; the first matching substring wins.
// Note the "caf" rule sits before "cafeteria", so a type tag of "cafeteria"
// classifies as CAFE. That ordering is long-standing observed behavior and
// is kept; the cafeteria rule only catches "mensa" in practice.
var typeRules = []struct {
	substrings []string
	result     models.PosType
}{
	{[]string{"bakery", "baker"}, models.PosTypeBakery},
	{[]string{"vending"}, models.PosTypeVendingMachine},
	{[]string{"caf"}, models.PosTypeCafe},
	{[]string{"cafeteria", "mensa"}, models.PosTypeCafeteria},
}

var nameRules = []struct {
	substrings []string
	result     models.PosType
}{
	{[]string{"bäck", "bakery", "baker"}, models.PosTypeBakery},
	{[]string{"automat", "vending"}, models.PosTypeVendingMachine},
	{[]string{"mensa", "cafeteria"}, models.PosTypeCafeteria},
}

// derivePosType classifies the outlet type from the node's type tag, falling
// back to heuristics on the display name, and finally to CAFE.
func derivePosType(node models.OsmNode) models.PosType {
	if node.Type != nil {
		t := strings.ToLower(*node.Type)
		for _, rule := range typeRules {
			if containsAny(t, rule.substrings) {
				return rule.result
			}
		}
	}

	if node.Name != nil {
		name := strings.ToLower(*node.Name)
		for _, rule := range nameRules {
			if containsAny(name, rule.substrings) {
				return rule.result
			}
		}
	}

	return models.PosTypeCafe
}

// deriveCampus matches the campus tag against the closed campus enumeration,
// uppercased. An absent, empty or unrecognized tag falls back to the default.
func deriveCampus(campusTag *string) models.CampusType {
	if campusTag == nil {
		return models.DefaultCampus
	}
	campus, err := models.ParseCampusType(strings.ToUpper(*campusTag))
	if err != nil {
		return models.DefaultCampus
	}
	return campus
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
