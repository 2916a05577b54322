// Package catalog holds the static reference data describing the restaurant's
// seating: which tables exist in which space and how many guests each seats.
// The catalog is built once at startup and passed to the components that need
// it; it is read-only for the lifetime of the process.
package catalog

import "errors"

// Space identifiers for the three physical seating areas.
const (
	SpaceIndoor  = "indoor"
	SpaceOutdoor = "outdoor"
	SpaceLounge  = "lounge"
)

// ErrUnknownSpace is returned when a request names a space the catalog does
// not contain.  Handlers translate it into a 400 response.
var ErrUnknownSpace = errors.New("unknown space")

// ErrUnknownTable is returned when a request names a table identifier that
// does not exist in the given space.
var ErrUnknownTable = errors.New("unknown table for space")

// Table is a fixed seating unit within a space.
type Table struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
}

// Catalog maps each space to its ordered list of tables.
type Catalog struct {
	spaces map[string][]Table
	order  []string
}

// New builds a catalog from the given space layout.  The iteration order of
// Spaces follows the order slice.
func New(order []string, spaces map[string][]Table) *Catalog {
	return &Catalog{spaces: spaces, order: order}
}

// Default returns the production floor plan of the restaurant.
func Default() *Catalog {
	return New(
		[]string{SpaceIndoor, SpaceOutdoor, SpaceLounge},
		map[string][]Table{
			SpaceIndoor: {
				{ID: "I1", Capacity: 2}, {ID: "I2", Capacity: 2},
				{ID: "I3", Capacity: 4}, {ID: "I4", Capacity: 4},
				{ID: "I5", Capacity: 4}, {ID: "I6", Capacity: 3},
				{ID: "I7", Capacity: 2}, {ID: "I8", Capacity: 4},
			},
			SpaceOutdoor: {
				{ID: "O1", Capacity: 4}, {ID: "O2", Capacity: 4},
				{ID: "O3", Capacity: 6}, {ID: "O4", Capacity: 2},
				{ID: "O5", Capacity: 4}, {ID: "O6", Capacity: 6},
				{ID: "O7", Capacity: 2}, {ID: "O8", Capacity: 4},
				{ID: "O9", Capacity: 6}, {ID: "O10", Capacity: 4},
			},
			SpaceLounge: {
				{ID: "L1", Capacity: 6}, {ID: "L2", Capacity: 8},
				{ID: "L3", Capacity: 4}, {ID: "L4", Capacity: 6},
				{ID: "L5", Capacity: 8}, {ID: "L6", Capacity: 4},
			},
		},
	)
}

// TablesForSpace returns the ordered tables of a space.  The returned slice
// is a copy; callers may not mutate catalog state through it.
func (c *Catalog) TablesForSpace(space string) ([]Table, error) {
	tables, ok := c.spaces[space]
	if !ok {
		return nil, ErrUnknownSpace
	}
	out := make([]Table, len(tables))
	copy(out, tables)
	return out, nil
}

// Table looks up a single table by space and identifier.
func (c *Catalog) Table(space, tableID string) (Table, error) {
	tables, ok := c.spaces[space]
	if !ok {
		return Table{}, ErrUnknownSpace
	}
	for _, t := range tables {
		if t.ID == tableID {
			return t, nil
		}
	}
	return Table{}, ErrUnknownTable
}

// HasSpace reports whether the space exists in the catalog.
func (c *Catalog) HasSpace(space string) bool {
	_, ok := c.spaces[space]
	return ok
}

// Spaces returns the space names in their configured order.
func (c *Catalog) Spaces() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
