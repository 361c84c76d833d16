package benchdata

// fixOrder records the first-appearance order of tests and allocators.
// It runs once when the table is built.
func (t *Table) fixOrder() {
	t.testOrder = firstAppearance(t.Records, func(r Record) string { return r.Test })
	t.allocatorOrder = firstAppearance(t.Records, func(r Record) string { return r.Allocator })
}

// TestOrder is the category axis order: distinct Test values by first appearance.
func (t *Table) TestOrder() []string {
	if t.testOrder == nil {
		t.fixOrder()
	}
	out := make([]string, len(t.testOrder))
	copy(out, t.testOrder)
	return out
}

// AllocatorOrder is the hue order: distinct Allocator values by first appearance.
func (t *Table) AllocatorOrder() []string {
	if t.allocatorOrder == nil {
		t.fixOrder()
	}
	out := make([]string, len(t.allocatorOrder))
	copy(out, t.allocatorOrder)
	return out
}

func firstAppearance(records []Record, key func(Record) string) []string {
	seen := make(map[string]bool)
	order := make([]string, 0)
	for _, r := range records {
		k := key(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		order = append(order, k)
	}
	return order
}
