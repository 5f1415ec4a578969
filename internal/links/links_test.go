package links

import "testing"

func TestGeeksForGeeks(t *testing.T) {
	got := GeeksForGeeks("Dynamic Programming")
	want := "https://www.geeksforgeeks.org/tag/dynamic-programming/"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStriverSearch(t *testing.T) {
	got := StriverSearch("binary search")
	want := "https://www.youtube.com/results?search_query=striver+binary+search"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
