package model

// Tag is a post tag as returned by the Ghost Content API.
type Tag struct {
	Name string `json:"name"`
}

// Author is a post author as returned by the Ghost Content API.
type Author struct {
	Name string `json:"name"`
}

// Post represents a single Ghost post. Only ID is guaranteed by the API;
// every other field may be absent and persists as its zero value.
// Timestamps stay as the API's RFC3339 strings so dumps round-trip untouched.
type Post struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Excerpt      string   `json:"excerpt"`
	HTML         string   `json:"html"`
	FeatureImage string   `json:"feature_image,omitempty"`
	PublishedAt  string   `json:"published_at"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
	ReadingTime  int      `json:"reading_time"`
	Tags         []Tag    `json:"tags"`
	Authors      []Author `json:"authors"`
	URL          string   `json:"url"`
}

// TagNames returns the post's tag names in order.
func (p Post) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

// AuthorNames returns the post's author names in order.
func (p Post) AuthorNames() []string {
	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		names = append(names, a.Name)
	}
	return names
}

// IndexEntry is the slim projection of a post written to index.json.
type IndexEntry struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	PublishedAt string   `json:"published_at"`
	ReadingTime int      `json:"reading_time"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
}

// IndexOf projects a post into its index entry.
func IndexOf(p Post) IndexEntry {
	return IndexEntry{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		PublishedAt: p.PublishedAt,
		ReadingTime: p.ReadingTime,
		Tags:        p.TagNames(),
		URL:         p.URL,
	}
}

// Metadata is the envelope written alongside posts in a full JSON dump.
type Metadata struct {
	FetchedAt  string `json:"fetched_at"`
	TotalPosts int    `json:"total_posts"`
	Source     string `json:"source"`
}

// Archive is the full JSON dump document.
type Archive struct {
	Metadata Metadata `json:"metadata"`
	Posts    []Post   `json:"posts"`
}
