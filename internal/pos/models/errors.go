package models

import "fmt"

// Domain error taxonomy. The store layer reports infrastructure facts via
// pkg/platform/sentinel; the service translates them into these typed errors
// so callers can match on the failure kind with errors.As.
//
// None of these are retried or downgraded internally: each is raised at its
// point of detection and propagated unchanged to the caller.

// OsmNodeNotFoundError reports that an OSM node could not be fetched.
// It covers true 404s, other HTTP failures and unparseable responses alike;
// the distinction is logged at the fetch boundary but not exposed here.
type OsmNodeNotFoundError struct {
	NodeID int64
}

func (e *OsmNodeNotFoundError) Error() string {
	return fmt.Sprintf("OSM node %d not found", e.NodeID)
}

// OsmNodeMissingFieldsError reports that a fetched OSM node lacks one or
// more tags required to build a valid Pos, or that its postal code could
// not be parsed as a number.
type OsmNodeMissingFieldsError struct {
	NodeID int64
}

func (e *OsmNodeMissingFieldsError) Error() string {
	return fmt.Sprintf("OSM node %d is missing fields required for a POS record", e.NodeID)
}

// DuplicatePosNameError reports that the store rejected a candidate because
// its name is already taken.
type DuplicatePosNameError struct {
	Name string
}

func (e *DuplicatePosNameError) Error() string {
	return fmt.Sprintf("POS with name %q already exists", e.Name)
}

// PosNotFoundError reports that no POS record exists for the given ID.
type PosNotFoundError struct {
	ID int64
}

func (e *PosNotFoundError) Error() string {
	return fmt.Sprintf("POS with ID %d not found", e.ID)
}
