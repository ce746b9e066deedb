package sortkey

import "testing"

func TestIsValid(t *testing.T) {
	for _, k := range []Key{Relevance, Date, WordCount, Topic} {
		if !k.IsValid() {
			t.Errorf("expected %q to be valid", k)
		}
	}
	for _, k := range []Key{"", "popularity", "RELEVANCE"} {
		if k.IsValid() {
			t.Errorf("expected %q to be invalid", k)
		}
	}
}
