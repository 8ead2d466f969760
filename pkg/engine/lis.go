package engine

// LongestIncreasingSubsequence returns the indices of a longest
// strictly increasing subsequence of arr, in ascending order.
//
// Entries with value 0 are placeholders for "no old counterpart" in
// the keyed diff's new-index-to-old-index array and never join the
// subsequence. Patience sorting with binary-search insertion and
// predecessor back-pointers keeps it O(n log n); downstream move
// decisions depend on the exact indices chosen, not just the length.
func LongestIncreasingSubsequence(arr []int) []int {
	if len(arr) == 0 {
		return nil
	}
	// p[i] is the index of the element preceding i in the best
	// subsequence ending at i.
	p := make([]int, len(arr))
	copy(p, arr)
	var result []int
	for i, v := range arr {
		if v == 0 {
			continue
		}
		if len(result) == 0 {
			result = append(result, i)
			continue
		}
		last := result[len(result)-1]
		if arr[last] < v {
			p[i] = last
			result = append(result, i)
			continue
		}
		// Binary search for the first tail >= v.
		lo, hi := 0, len(result)-1
		for lo < hi {
			mid := (lo + hi) >> 1
			if arr[result[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if v < arr[result[lo]] {
			if lo > 0 {
				p[i] = result[lo-1]
			}
			result[lo] = i
		}
	}
	// Walk the back-pointers from the final tail.
	u := len(result)
	if u == 0 {
		return nil
	}
	v := result[u-1]
	for u > 0 {
		u--
		result[u] = v
		v = p[v]
	}
	return result
}
