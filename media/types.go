package media

// Wire types for the Google Custom Search JSON API. Only the fields the
// adapter reads are declared.

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title   string       `json:"title"`
	Link    string       `json:"link"`
	Image   *itemImage   `json:"image,omitempty"`
	Pagemap *itemPagemap `json:"pagemap,omitempty"`
}

type itemImage struct {
	ContextLink   string `json:"contextLink"`
	ThumbnailLink string `json:"thumbnailLink"`
}

type itemPagemap struct {
	CSEImage []pagemapImage `json:"cse_image"`
}

type pagemapImage struct {
	Src string `json:"src"`
}

// pageThumbnail returns the page's own thumbnail metadata if present.
func (i searchItem) pageThumbnail() string {
	if i.Pagemap == nil || len(i.Pagemap.CSEImage) == 0 {
		return ""
	}
	return i.Pagemap.CSEImage[0].Src
}
