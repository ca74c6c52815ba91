package table

// FindIndexOfName resolves a logical column name to its position in the schema.
// Matching is exact and case-sensitive; if the name is duplicated the first
// occurrence wins.
func FindIndexOfName(schema *Schema, name string) (int, bool) {
	for i := 0; i < schema.NumFields(); i++ {
		if schema.fields[i].Name == name {
			return i, true
		}
	}
	return -1, false
}
