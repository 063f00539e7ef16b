package model

// Feed is a parsed syndication feed
type Feed struct {
	Title   string
	Entries []Entry
}

// Entry is a single feed entry. Content and Summary are empty when absent.
type Entry struct {
	Title   string
	Content string
	Summary string
	URL     string
}

// Body returns the content, falling back to the summary
func (e Entry) Body() string {
	if e.Content != "" {
		return e.Content
	}
	return e.Summary
}

// FilteredEntry is the projection returned for entries judged technical
type FilteredEntry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// FetchResult holds a successfully fetched response
type FetchResult struct {
	URL         string // final URL after redirects
	ContentType string
	Body        []byte
}
