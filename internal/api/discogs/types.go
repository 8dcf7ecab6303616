package discogs

// Search and fetch payloads for the Discogs database API. Search rows are
// much thinner than full release records: the title field combines artist
// and release title, and the genre/style arrays are coarse.

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID     int      `json:"id"`
	Type   string   `json:"type"`
	Title  string   `json:"title"`
	Year   string   `json:"year"`
	Genres []string `json:"genre"`
	Styles []string `json:"style"`
}

// Release is a full release record as returned by /releases/{id}.
type Release struct {
	ID      int             `json:"id"`
	Title   string          `json:"title"`
	Year    int             `json:"year"`
	Genres  []string        `json:"genres"`
	Styles  []string        `json:"styles"`
	Artists []ReleaseArtist `json:"artists"`
}

// ReleaseArtist is one credited artist on a full release record.
type ReleaseArtist struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
