package sheets

// ColumnLetter converts a 1-based column index to its A1 letters
// (1 → A, 26 → Z, 27 → AA). Indexes below 1 yield "".
func ColumnLetter(index int) string {
	var out []byte
	for index > 0 {
		index--
		out = append([]byte{byte('A' + index%26)}, out...)
		index /= 26
	}
	return string(out)
}
