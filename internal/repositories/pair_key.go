package repositories

// pairKey builds the deterministic document id for a toggle relation from
// its ordered pair. Using the pair as the record's own identity makes a
// toggle an atomic delete-by-key or insert-by-key: two concurrent toggles
// cannot both insert, because the second insert hits a duplicate key.
// Firebase UIDs and post ids never contain ':'.
func pairKey(a, b string) string {
	return a + ":" + b
}
