// Package links builds external study resource URLs for topic tags.
package links

import (
	"net/url"
	"strings"
)

// GeeksForGeeks returns the topic tag page on GeeksforGeeks for a tag such
// as "dynamic programming".
func GeeksForGeeks(topic string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(topic)), " ", "-")
	return "https://www.geeksforgeeks.org/tag/" + url.PathEscape(slug) + "/"
}

// StriverSearch returns a YouTube search URL for Striver videos on a topic.
func StriverSearch(topic string) string {
	q := url.QueryEscape("striver " + strings.TrimSpace(topic))
	return "https://www.youtube.com/results?search_query=" + q
}
