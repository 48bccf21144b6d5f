package wire

import "fmt"

// runLength collapses maximal runs of equal values into flattened
// (value, count) pairs. An all-distinct input yields one pair per element;
// a uniform input yields a single pair covering the whole sequence.
func runLength(values []int) []int {
	if len(values) == 0 {
		return nil
	}

	out := make([]int, 0, 2*len(values))
	value := values[0]
	count := 1
	for _, v := range values[1:] {
		if v == value {
			count++
			continue
		}
		out = append(out, value, count)
		value = v
		count = 1
	}
	return append(out, value, count)
}

// expand inverts runLength, reproducing a sequence of exactly total values.
func expand(pairs []int, total int) ([]int, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("odd pair list length %d", len(pairs))
	}

	out := make([]int, 0, total)
	for i := 0; i < len(pairs); i += 2 {
		value, count := pairs[i], pairs[i+1]
		if count <= 0 {
			return nil, fmt.Errorf("run %d has non-positive count %d", i/2, count)
		}
		if len(out)+count > total {
			return nil, fmt.Errorf("runs expand past %d values", total)
		}
		for j := 0; j < count; j++ {
			out = append(out, value)
		}
	}
	if len(out) != total {
		return nil, fmt.Errorf("runs expand to %d values, expected %d", len(out), total)
	}
	return out, nil
}
