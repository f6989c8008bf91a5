package models

// OsmNode is the flattened tag snapshot of a single OpenStreetMap node at
// fetch time. It carries only the tags relevant for building a Pos record.
//
// Optional fields are pointers so that an absent tag stays distinguishable
// from an empty value. Instances are built only by the OSM client and are
// not mutated afterwards.
type OsmNode struct {
	NodeID      int64
	Name        *string
	Description *string
	Type        *string
	Campus      *string
	Street      *string
	HouseNumber *string
	PostalCode  *string
	City        *string
}
