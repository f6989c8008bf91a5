package models

import "fmt"

// CampusType identifies the physical campus a point of sale belongs to.
type CampusType string

// Supported campuses. DefaultCampus is used whenever imported data carries no
// recognizable campus tag.
const (
	CampusAltstadt  CampusType = "ALTSTADT"
	CampusBergheim  CampusType = "BERGHEIM"
	CampusNeuenheim CampusType = "NEUENHEIM"
	CampusINF       CampusType = "INF"

	DefaultCampus = CampusAltstadt
)

var validCampuses = map[CampusType]bool{
	CampusAltstadt:  true,
	CampusBergheim:  true,
	CampusNeuenheim: true,
	CampusINF:       true,
}

// ParseCampusType constructs a CampusType from external input.
// The match is exact; callers normalize case before parsing.
func ParseCampusType(s string) (CampusType, error) {
	c := CampusType(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown campus: %q", s)
	}
	return c, nil
}

// IsValid checks if the campus is one of the supported enum values.
func (c CampusType) IsValid() bool {
	return validCampuses[c]
}

func (c CampusType) String() string {
	return string(c)
}
