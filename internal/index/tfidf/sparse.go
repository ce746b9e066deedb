package tfidf

import "math"

// Entry is one non-zero component of a sparse vector.
type Entry struct {
	Term   int
	Weight float64
}

// Vector is a sparse term-weight vector with entries sorted by term index.
// All vectors produced by one Model share the model's dimensionality.
type Vector []Entry

// Dot returns the dot product of two sparse vectors.
func Dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Term == b[j].Term:
			sum += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].Term < b[j].Term:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean norm of v.
func Norm(v Vector) float64 {
	var sum float64
	for _, e := range v {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b in [0,1].
// A zero vector compares as 0.0 to everything, never NaN.
func Cosine(a, b Vector) float64 {
	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return 0.0
	}
	s := Dot(a, b) / (na * nb)
	// Guard against float drift outside [0,1].
	if s < 0 {
		return 0.0
	}
	if s > 1 {
		return 1.0
	}
	return s
}

// normalize scales v to unit length in place. Zero vectors are left as-is.
func normalize(v Vector) Vector {
	n := Norm(v)
	if n == 0 {
		return v
	}
	for i := range v {
		v[i].Weight /= n
	}
	return v
}
