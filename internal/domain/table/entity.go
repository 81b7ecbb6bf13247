package table

// Table is one physical bookable unit. Tables are seeded once at setup time
// and carry no mutable state; Seq preserves insertion order for display.
type Table struct {
	ID  string
	Seq int32
}

// Filter returns the tables whose ids are not in the exclusion list,
// preserving order.
func Filter(tables []Table, excluded []string) []Table {
	if len(excluded) == 0 {
		return tables
	}
	skip := make(map[string]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}
	out := make([]Table, 0, len(tables))
	for _, t := range tables {
		if !skip[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// IDs projects the tables to their ids, preserving order.
func IDs(tables []Table) []string {
	ids := make([]string, len(tables))
	for i, t := range tables {
		ids[i] = t.ID
	}
	return ids
}
