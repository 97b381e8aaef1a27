package domain

// CatalogEntry is a predefined merchandise product a design can be placed on.
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Catalog is a read-only product table. The zero value is empty.
type Catalog struct {
	entries []CatalogEntry
	byID    map[string]int
}

// NewCatalog builds a catalog from entries. Later duplicates of an id are ignored.
func NewCatalog(entries ...CatalogEntry) Catalog {
	c := Catalog{
		entries: make([]CatalogEntry, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.byID[e.ID]; dup || e.ID == "" {
			continue
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

var merchCatalog = NewCatalog(
	CatalogEntry{ID: "tshirt", Name: "White T-Shirt", Icon: "shirt", Description: "Classic fit cotton tee"},
	CatalogEntry{ID: "mug", Name: "Ceramic Mug", Icon: "mug", Description: "11oz glossy white mug"},
	CatalogEntry{ID: "tote", Name: "Canvas Tote Bag", Icon: "bag", Description: "Eco-friendly shopping bag"},
	CatalogEntry{ID: "hoodie", Name: "Black Hoodie", Icon: "shirt", Description: "Premium heavy blend"},
	CatalogEntry{ID: "cap", Name: "Baseball Cap", Icon: "hat", Description: "Embroidered style cap"},
	CatalogEntry{ID: "notebook", Name: "Spiral Notebook", Icon: "note", Description: "Hardcover journal"},
)

// MerchCatalog returns the built-in product table.
func MerchCatalog() Catalog {
	return merchCatalog
}

// Entries returns a copy of the entries in display order.
func (c Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c Catalog) Lookup(id string) (CatalogEntry, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return CatalogEntry{}, false
	}
	return c.entries[idx], true
}

func (c Catalog) Len() int {
	return len(c.entries)
}
