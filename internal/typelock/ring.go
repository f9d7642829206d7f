package typelock

// NextID returns the slot following current in a ring of size count,
// wrapping modulo count (not modulo u8::MAX).
func NextID(current, count uint8) uint8 {
	return uint8((int(current) + 1) % int(count))
}

// PrevID returns the slot preceding current in a ring of size count.
func PrevID(current, count uint8) uint8 {
	return uint8((int(current) + int(count) - 1) % int(count))
}

// WalkBack returns the n slots reached by applying PrevID repeatedly
// starting at tip: { tip, prev(tip), prev^2(tip), ..., prev^(n-1)(tip) }.
func WalkBack(tip uint8, n int, count uint8) []uint8 {
	ids := make([]uint8, n)
	cur := tip
	for i := 0; i < n; i++ {
		ids[i] = cur
		cur = PrevID(cur, count)
	}
	return ids
}
