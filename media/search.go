// Package media finds supporting images and videos for a query using the
// Google Custom Search JSON API.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	searchEndpoint = "https://www.googleapis.com/customsearch/v1"

	maxImages  = 6
	maxVideos  = 4
	generalNum = 10
	imageNum   = 8
)

// Image is one image result.
type Image struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Src       string `json:"src"`
	Thumbnail string `json:"thumbnail"`
}

// Video is one recognized video result.
type Video struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Thumbnail string `json:"thumbnail"`
	VideoID   string `json:"videoId"`
}

// ResultSet is the bounded, normalized media result for one query.
type ResultSet struct {
	Images []Image `json:"images"`
	Videos []Video `json:"videos"`
}

// Empty reports whether the set carries no results at all.
func (r ResultSet) Empty() bool {
	return len(r.Images) == 0 && len(r.Videos) == 0
}

// Searcher issues media searches. The zero value is not usable; use
// NewSearcher.
type Searcher struct {
	APIKey   string
	Endpoint string
	Client   *http.Client
	Logger   *log.Logger
}

// NewSearcher returns a Searcher for the given API key.
func NewSearcher(apiKey string) *Searcher {
	return &Searcher{
		APIKey:   apiKey,
		Endpoint: searchEndpoint,
		Client:   &http.Client{Timeout: 15 * time.Second},
		Logger:   log.Default(),
	}
}

// Search runs a general and an image search concurrently and partitions the
// results into videos and images. It never fails: any network or decode error
// degrades to an empty result set. An empty scope id (cx) skips the search
// entirely.
func (s *Searcher) Search(ctx context.Context, query, scopeID string) ResultSet {
	if scopeID == "" {
		s.Logger.Printf("No search scope id configured for media search. Skipping.")
		return ResultSet{}
	}
	if s.APIKey == "" {
		s.Logger.Printf("No search API key configured for media search. Skipping.")
		return ResultSet{}
	}

	type fetched struct {
		resp searchResponse
		err  error
	}
	generalCh := make(chan fetched, 1)
	imageCh := make(chan fetched, 1)

	go func() {
		resp, err := s.fetch(ctx, query, scopeID, false)
		generalCh <- fetched{resp, err}
	}()
	go func() {
		resp, err := s.fetch(ctx, query, scopeID, true)
		imageCh <- fetched{resp, err}
	}()

	general := <-generalCh
	image := <-imageCh
	if general.err != nil {
		s.Logger.Printf("Media search error: %v", general.err)
		return ResultSet{}
	}
	if image.err != nil {
		s.Logger.Printf("Media search error: %v", image.err)
		return ResultSet{}
	}

	return ResultSet{
		Images: collectImages(image.resp.Items),
		Videos: collectVideos(general.resp.Items),
	}
}

func (s *Searcher) fetch(ctx context.Context, query, scopeID string, imageSearch bool) (searchResponse, error) {
	params := url.Values{}
	params.Set("key", s.APIKey)
	params.Set("cx", scopeID)
	params.Set("q", query)
	if imageSearch {
		params.Set("searchType", "image")
		params.Set("num", fmt.Sprintf("%d", imageNum))
	} else {
		params.Set("num", fmt.Sprintf("%d", generalNum))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return searchResponse{}, fmt.Errorf("error creating search request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return searchResponse{}, fmt.Errorf("error calling custom search API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return searchResponse{}, fmt.Errorf("error reading search response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return searchResponse{}, fmt.Errorf("custom search API returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return searchResponse{}, fmt.Errorf("error unmarshalling search response: %w", err)
	}
	return decoded, nil
}

// collectImages keeps items exposing both a direct image link and a thumbnail,
// capped at maxImages in response order.
func collectImages(items []searchItem) []Image {
	images := []Image{}
	for _, item := range items {
		if item.Link == "" || item.Image == nil || item.Image.ThumbnailLink == "" {
			continue
		}
		images = append(images, Image{
			Title:     item.Title,
			Link:      item.Image.ContextLink,
			Src:       item.Link,
			Thumbnail: item.Image.ThumbnailLink,
		})
		if len(images) == maxImages {
			break
		}
	}
	return images
}

// collectVideos keeps recognized YouTube links, de-duplicated by video id.
// The last occurrence of an id wins but keeps its first position, then the
// list is capped at maxVideos.
func collectVideos(items []searchItem) []Video {
	order := []string{}
	byID := map[string]Video{}

	for _, item := range items {
		id := extractVideoID(item.Link)
		if id == "" {
			continue
		}

		thumbnail := item.pageThumbnail()
		if thumbnail == "" {
			thumbnail = fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
		}

		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		byID[id] = Video{
			Title:     item.Title,
			Link:      item.Link,
			Thumbnail: thumbnail,
			VideoID:   id,
		}
	}

	videos := []Video{}
	for _, id := range order {
		videos = append(videos, byID[id])
		if len(videos) == maxVideos {
			break
		}
	}
	return videos
}

// extractVideoID pulls a YouTube video id out of a watch or short link.
// Returns "" for links it does not recognize.
func extractVideoID(link string) string {
	if link == "" {
		return ""
	}
	if idx := strings.Index(link, "youtube.com/watch?v="); idx != -1 {
		id := link[idx+len("youtube.com/watch?v="):]
		if amp := strings.Index(id, "&"); amp != -1 {
			id = id[:amp]
		}
		return id
	}
	if idx := strings.Index(link, "youtu.be/"); idx != -1 {
		id := link[idx+len("youtu.be/"):]
		if q := strings.Index(id, "?"); q != -1 {
			id = id[:q]
		}
		return id
	}
	return ""
}
