package catalog

// ServiceEntry is one bookable salon service with its full price in whole USD.
type ServiceEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Catalog is an immutable service price list, fixed at deployment time.
type Catalog struct {
	entries map[string]ServiceEntry
}

func New(entries []ServiceEntry) *Catalog {
	m := make(map[string]ServiceEntry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return &Catalog{entries: m}
}

// Lookup resolves a service by exact id. No fuzzy matching, no case folding.
func (c *Catalog) Lookup(id string) (ServiceEntry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Default returns the production price list.
func Default() *Catalog {
	return New([]ServiceEntry{
		{ID: "wig-install", Name: "Wig Install", Price: 50},
		{ID: "wig-install-style", Name: "Wig Install + Style", Price: 60},
		{ID: "qw-middle-side", Name: "Quick Weave Middle/Side Part", Price: 70},
		{ID: "qw-fulani", Name: "Fulani Quick Weave", Price: 85},
		{ID: "island-small", Name: "Island Twist Small", Price: 115},
		{ID: "island-medium", Name: "Island Twist Medium", Price: 100},
		{ID: "softlocs-small", Name: "Soft Locs Small", Price: 130},
		{ID: "softlocs-medium", Name: "Soft Locs Medium", Price: 100},
		{ID: "knotless-xs", Name: "Knotless Xtra Small", Price: 180},
		{ID: "knotless-small", Name: "Knotless Small", Price: 130},
		{ID: "knotless-medium", Name: "Knotless Medium", Price: 115},
		{ID: "knotless-large", Name: "Knotless Large", Price: 90},
		{ID: "knotless-bob", Name: "Knotless Bob", Price: 100},
		{ID: "stitch-small-freestyle", Name: "Stitch Braids Small Freestyle", Price: 115},
		{ID: "stitch-freestyle", Name: "Stitch Braids Freestyle", Price: 105},
		{ID: "stitch-fulani", Name: "Fulani Braids", Price: 115},
		{ID: "stitch-2braids", Name: "2 Braids", Price: 40},
		{ID: "natural-cornrows", Name: "Men's Cornrows", Price: 45},
		{ID: "natural-plaits", Name: "Plaits", Price: 60},
		{ID: "natural-twist", Name: "Twist", Price: 45},
		{ID: "locs-starter", Name: "Starter Locs", Price: 65},
		{ID: "locs-retwist", Name: "Retwist", Price: 45},
		{ID: "locs-twostrand", Name: "Two Strand", Price: 65},
		{ID: "locs-barrels", Name: "Barrels", Price: 75},
	})
}
