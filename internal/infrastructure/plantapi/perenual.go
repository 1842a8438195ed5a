// Package plantapi looks up species data from a Perenual-compatible
// plant API and maps it onto catalog rows.
package plantapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"heyday/internal/domain/entity"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

// Client calls the plant-data API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        logger.Logger
}

// NewClient creates a Client for the given API base URL and key.
func NewClient(baseURL, apiKey string, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

type searchCandidate struct {
	ID             int      `json:"id"`
	CommonName     string   `json:"common_name"`
	ScientificName []string `json:"scientific_name"`
	OtherName      []string `json:"other_name"`
}

type searchResponse struct {
	Data []searchCandidate `json:"data"`
}

type imageInfo struct {
	RegularURL  string `json:"regular_url"`
	OriginalURL string `json:"original_url"`
}

type wateringBenchmark struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

type detailsResponse struct {
	ID                int               `json:"id"`
	CommonName        string            `json:"common_name"`
	ScientificName    []string          `json:"scientific_name"`
	Watering          string            `json:"watering"`
	WateringBenchmark wateringBenchmark `json:"watering_general_benchmark"`
	Sunlight          []string          `json:"sunlight"`
	Maintenance       string            `json:"maintenance"`
	PoisonousToHumans int               `json:"poisonous_to_humans"`
	PoisonousToPets   int               `json:"poisonous_to_pets"`
	DefaultImage      *imageInfo        `json:"default_image"`
}

type careSection struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type careGuideResponse struct {
	Data []struct {
		Section []careSection `json:"section"`
	} `json:"data"`
}

// Lookup resolves name against the API and returns a catalog row ready
// to upsert. It returns ErrSpeciesNotFound when the search has no
// candidates and ErrPlantAPI for transport or decoding failures. A care
// guide failure only costs the care notes.
func (c *Client) Lookup(ctx context.Context, name string) (*entity.Species, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty species name", appErrors.ErrInvalidArgument)
	}

	candidates, err := c.search(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates for %q", appErrors.ErrSpeciesNotFound, normalized)
	}
	best := bestMatch(normalized, candidates)

	details, err := c.details(ctx, best.ID)
	if err != nil {
		return nil, err
	}

	careNotes, err := c.careGuide(ctx, best.ID)
	if err != nil {
		c.log.Warn(fmt.Sprintf("Care guide lookup failed for species %d: %v", best.ID, err))
		careNotes = ""
	}

	perenualID := best.ID
	species := &entity.Species{
		Name:                 normalized,
		PerenualID:           &perenualID,
		CommonName:           firstNonEmpty(details.CommonName, best.CommonName),
		ScientificName:       strings.Join(details.ScientificName, ", "),
		WateringBenchmark:    benchmarkText(details),
		WateringIntervalDays: intervalFromWatering(details.Watering),
		Sunlight:             strings.Join(details.Sunlight, ", "),
		MaintenanceCategory:  details.Maintenance,
		PoisonousToHumans:    details.PoisonousToHumans != 0,
		PoisonousToPets:      details.PoisonousToPets != 0,
		DefaultImageURL:      imageURL(details.DefaultImage),
		CareNotes:            careNotes,
	}
	return species, nil
}

func (c *Client) search(ctx context.Context, name string) ([]searchCandidate, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", name)

	var out searchResponse
	if err := c.getJSON(ctx, c.baseURL+"/species-list?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) details(ctx context.Context, id int) (*detailsResponse, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)

	var out detailsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/species/details/%d?%s", c.baseURL, id, q.Encode()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) careGuide(ctx context.Context, id int) (string, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("species_id", fmt.Sprintf("%d", id))

	var out careGuideResponse
	if err := c.getJSON(ctx, c.baseURL+"/species-care-guide-list?"+q.Encode(), &out); err != nil {
		return "", err
	}

	var notes []string
	for _, guide := range out.Data {
		for _, section := range guide.Section {
			if strings.TrimSpace(section.Description) == "" {
				continue
			}
			notes = append(notes, strings.TrimSpace(section.Description))
		}
	}
	return strings.Join(notes, "\n\n"), nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrPlantAPI, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrPlantAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d from %s", appErrors.ErrPlantAPI, resp.StatusCode, req.URL.Path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", appErrors.ErrPlantAPI, req.URL.Path, err)
	}
	return nil
}

// bestMatch prefers a candidate whose scientific or other name matches
// the query exactly (case-insensitive), falling back to the first.
func bestMatch(name string, candidates []searchCandidate) searchCandidate {
	for _, cand := range candidates {
		for _, s := range cand.ScientificName {
			if strings.EqualFold(s, name) {
				return cand
			}
		}
		for _, s := range cand.OtherName {
			if strings.EqualFold(s, name) {
				return cand
			}
		}
		if strings.EqualFold(cand.CommonName, name) {
			return cand
		}
	}
	return candidates[0]
}

// intervalFromWatering maps the API's watering category onto a default
// cadence in days. Unknown categories give no default.
func intervalFromWatering(text string) *int {
	t := strings.ToLower(text)
	var days int
	switch {
	case strings.Contains(t, "daily") || strings.Contains(t, "frequent"):
		days = 1
	case strings.Contains(t, "average") || strings.Contains(t, "moderate"):
		days = 3
	case strings.Contains(t, "minimum") || strings.Contains(t, "rare"):
		days = 7
	default:
		return nil
	}
	return &days
}

func benchmarkText(d *detailsResponse) string {
	if d.WateringBenchmark.Value != "" {
		return strings.TrimSpace(d.WateringBenchmark.Value + " " + d.WateringBenchmark.Unit)
	}
	return d.Watering
}

func imageURL(img *imageInfo) string {
	if img == nil {
		return ""
	}
	if img.RegularURL != "" {
		return img.RegularURL
	}
	return img.OriginalURL
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
