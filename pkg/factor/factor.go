// Package factor decodes, classifies and aggregates inherited factor ids.
//
// A factor id carries a base (trait identity, all digits but the last) and a
// star level (last digit). The decimal digit count of the original id selects
// its color category.
package factor

import (
	"strconv"

	"umaspark/pkg/schema"
)

// Category is the color bucket of a factor.
type Category int

const (
	Blue Category = iota
	Pink
	Green
	White
)

func (c Category) String() string {
	switch c {
	case Blue:
		return "blue"
	case Pink:
		return "pink"
	case Green:
		return "green"
	}
	return "white"
}

// Decode splits an id into base, star and category. The category comes from
// the digit count: 3=blue, 4=pink, 7=white, 8=green. Unknown lengths fall
// back to white; see Classify.
func Decode(id int64) (base string, star int, cat Category) {
	s := strconv.FormatInt(id, 10)
	base = s[:len(s)-1]
	star = int(s[len(s)-1] - '0')
	return base, star, categoryOf(len(s))
}

// Encode re-materializes an id from a base and a star total. The star is
// floored at 1 so an aggregated id never carries star 0.
func Encode(base string, star int) (int64, error) {
	if star < 1 {
		star = 1
	}
	id, err := strconv.ParseInt(base+strconv.Itoa(star), 10, 64)
	if err != nil {
		return 0, schema.Newf("umadump_data.json", "invalid factor id: %s%d", base, star)
	}
	return id, nil
}

func categoryOf(digits int) Category {
	switch digits {
	case 3:
		return Blue
	case 4:
		return Pink
	case 7:
		return White
	case 8:
		return Green
	}
	// unknown sizes: treat as white by default
	return White
}

// Classified holds factor ids partitioned by category, preserving the
// relative input order within each bucket.
type Classified struct {
	Blue  []int64
	Pink  []int64
	Green []int64
	White []int64
}

// Classify partitions a flat id list into the four color buckets.
func Classify(ids []int64) Classified {
	var c Classified
	for _, id := range ids {
		switch categoryOf(len(strconv.FormatInt(id, 10))) {
		case Blue:
			c.Blue = append(c.Blue, id)
		case Pink:
			c.Pink = append(c.Pink, id)
		case Green:
			c.Green = append(c.Green, id)
		default:
			c.White = append(c.White, id)
		}
	}
	return c
}

// Aggregate sums star values for identical bases across the subject's list
// and both ancestor lists, visiting main first, then left, then right. It
// returns one id per distinct base in first-encounter order, each carrying
// the summed star total. Encounter order is deliberate: it ties output
// ordering to breeding slot priority rather than an arbitrary numeric sort.
func Aggregate(main, left, right []int64) ([]int64, error) {
	sums := make(map[string]int)
	var order []string

	for _, lst := range [][]int64{main, left, right} {
		for _, id := range lst {
			base, star, _ := Decode(id)
			if _, seen := sums[base]; !seen {
				order = append(order, base)
			}
			sums[base] += star
		}
	}

	out := make([]int64, 0, len(order))
	for _, base := range order {
		id, err := Encode(base, sums[base])
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
