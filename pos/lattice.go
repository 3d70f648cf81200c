package pos

import "math"

// cell is one (position, tag) node of the Viterbi lattice. Score is the path
// probability, or its natural log in log space; back indexes the best cell of
// the previous column and is -1 in the first column.
type cell struct {
	tag   string
	score float64
	back  int
}

type candidate struct {
	tag      string
	emission float64
}

type lattice [][]cell

// bestIndex is the arg-max of the last column. Ties keep the first cell.
func (l lattice) bestIndex() int {
	last := l[len(l)-1]
	best := 0
	for i := 1; i < len(last); i++ {
		if last[i].score > last[best].score {
			best = i
		}
	}
	return best
}

func (l lattice) indexOf(tag string) int {
	for i, c := range l[len(l)-1] {
		if c.tag == tag {
			return i
		}
	}
	return -1
}

// path follows backpointers from the given cell of the last column.
func (l lattice) path(idx int) []string {
	tags := make([]string, len(l))
	for pos := len(l) - 1; pos >= 0; pos-- {
		c := l[pos][idx]
		tags[pos] = c.tag
		idx = c.back
	}
	return tags
}

func (l lattice) tags(pos int) []string {
	tags := make([]string, len(l[pos]))
	for i, c := range l[pos] {
		tags[i] = c.tag
	}
	return tags
}

// scoring multiplies probabilities, or adds their logs. Exactly equal
// products stay equal, so first seen tie-breaks hold; log sums may differ in
// the last bit and are only used when asked for.
type scoring struct {
	logSpace bool
}

func (sc scoring) weight(p float64) float64 {
	if sc.logSpace {
		return math.Log(p)
	}
	return p
}

func (sc scoring) floor() float64 {
	if sc.logSpace {
		return math.Inf(-1)
	}
	return 0
}

func (sc scoring) start(trans float64, emission float64) float64 {
	if sc.logSpace {
		return trans + emission
	}
	return trans * emission
}

func (sc scoring) extend(score float64, trans float64, emission float64) float64 {
	if sc.logSpace {
		return score + trans + emission
	}
	return score * trans * emission
}
