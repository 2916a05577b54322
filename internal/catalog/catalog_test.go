package catalog

import (
	"errors"
	"testing"
)

func TestDefaultLayout(t *testing.T) {
	c := Default()
	cases := []struct {
		space      string
		count      int
		capacities []int
	}{
		{SpaceIndoor, 8, []int{2, 2, 4, 4, 4, 3, 2, 4}},
		{SpaceOutdoor, 10, []int{4, 4, 6, 2, 4, 6, 2, 4, 6, 4}},
		{SpaceLounge, 6, []int{6, 8, 4, 6, 8, 4}},
	}
	for _, tc := range cases {
		tables, err := c.TablesForSpace(tc.space)
		if err != nil {
			t.Fatalf("TablesForSpace(%s): %v", tc.space, err)
		}
		if len(tables) != tc.count {
			t.Fatalf("%s: got %d tables, want %d", tc.space, len(tables), tc.count)
		}
		for i, tab := range tables {
			if tab.Capacity != tc.capacities[i] {
				t.Errorf("%s table %s: capacity %d, want %d", tc.space, tab.ID, tab.Capacity, tc.capacities[i])
			}
		}
	}
}

func TestUnknownSpace(t *testing.T) {
	c := Default()
	if _, err := c.TablesForSpace("rooftop"); !errors.Is(err, ErrUnknownSpace) {
		t.Fatalf("got %v, want ErrUnknownSpace", err)
	}
	if c.HasSpace("rooftop") {
		t.Fatal("HasSpace accepted unknown space")
	}
}

func TestTableLookup(t *testing.T) {
	c := Default()
	tab, err := c.Table(SpaceIndoor, "I3")
	if err != nil {
		t.Fatalf("Table(indoor, I3): %v", err)
	}
	if tab.Capacity != 4 {
		t.Fatalf("I3 capacity = %d, want 4", tab.Capacity)
	}
	if _, err := c.Table(SpaceIndoor, "O1"); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("got %v, want ErrUnknownTable", err)
	}
	if _, err := c.Table("patio", "I1"); !errors.Is(err, ErrUnknownSpace) {
		t.Fatalf("got %v, want ErrUnknownSpace", err)
	}
}

func TestInjectedCatalog(t *testing.T) {
	small := New([]string{"indoor"}, map[string][]Table{
		"indoor": {{ID: "T1", Capacity: 2}},
	})
	tables, err := small.TablesForSpace("indoor")
	if err != nil || len(tables) != 1 {
		t.Fatalf("custom catalog lookup failed: %v %v", tables, err)
	}
	if got := small.Spaces(); len(got) != 1 || got[0] != "indoor" {
		t.Fatalf("Spaces() = %v", got)
	}
}

func TestTablesForSpaceReturnsCopy(t *testing.T) {
	c := Default()
	tables, _ := c.TablesForSpace(SpaceLounge)
	tables[0].Capacity = 99
	again, _ := c.TablesForSpace(SpaceLounge)
	if again[0].Capacity == 99 {
		t.Fatal("catalog state mutated through returned slice")
	}
}
