package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"heyday/internal/application/dto"
	"heyday/internal/domain/entity"
	"heyday/internal/domain/repository"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

// defaultRecommendationLimit caps a run when the caller does not ask
// for a specific count.
const defaultRecommendationLimit = 5

type recommendService struct {
	profileRepo repository.UserProfileRepository
	recRepo     repository.RecommendationRepository
	catalog     CatalogService
	generator   Generator
	now         func() time.Time
	log         logger.Logger
}

// NewRecommendService creates a new instance of RecommendService implementation.
func NewRecommendService(
	profileRepo repository.UserProfileRepository,
	recRepo repository.RecommendationRepository,
	catalog CatalogService,
	generator Generator,
	now func() time.Time,
	log logger.Logger,
) RecommendService {
	return &recommendService{
		profileRepo: profileRepo,
		recRepo:     recRepo,
		catalog:     catalog,
		generator:   generator,
		now:         now,
		log:         log,
	}
}

// ForLocation suggests plants for the user's stored location.
func (s *recommendService) ForLocation(ctx context.Context, userID string, limit int) (dto.RecommendationResponse, error) {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	// A user without a profile still gets recommendations; the prompt
	// just loses its location context.
	label := entity.UnspecifiedLocation
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err == nil {
		label = profile.LocationLabel()
	} else if !errors.Is(err, appErrors.ErrProfileNotFound) {
		s.log.Error(fmt.Sprintf("Failed to load profile for user %s", userID), err)
		return dto.RecommendationResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	text, err := s.generator.GenerateJSON(ctx, buildRecommendationPrompt(label, limit))
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to generate recommendations for user %s", userID), err)
		return dto.RecommendationResponse{}, err
	}

	names, err := parseSuggestedNames(text, limit)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to parse recommendation output for user %s", userID), err)
		return dto.RecommendationResponse{}, fmt.Errorf("%w: %v", appErrors.ErrGenerative, err)
	}

	plants := make([]dto.RecommendedPlant, 0, len(names))
	rows := make([]*entity.Recommendation, 0, len(names))
	for _, name := range names {
		// Enrichment is best-effort: a catalog miss keeps the bare name.
		species, err := s.catalog.Enrich(ctx, name)
		if err != nil {
			s.log.Warn(fmt.Sprintf("Failed to enrich recommendation %q: %v", name, err))
			species = nil
		}
		plants = append(plants, dto.ToRecommendedPlant(name, species))

		row := &entity.Recommendation{
			UserID:        userID,
			SourceModel:   s.generator.Model(),
			LocationLabel: label,
			PlantName:     name,
		}
		if species != nil && species.ID != 0 {
			id := species.ID
			row.SpeciesID = &id
		}
		rows = append(rows, row)
	}

	if len(rows) > 0 {
		if err := s.recRepo.CreateAll(ctx, rows); err != nil {
			s.log.Error(fmt.Sprintf("Failed to persist recommendation run for user %s", userID), err)
			return dto.RecommendationResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}
	}

	s.log.Info(fmt.Sprintf("Recommended %d plants for user %s (%s)", len(plants), userID, label))
	return dto.RecommendationResponse{
		Location:    label,
		SourceModel: s.generator.Model(),
		Plants:      plants,
		GeneratedAt: s.now(),
	}, nil
}

// buildRecommendationPrompt asks for common names only, as JSON, so the
// response parses without a second round trip.
func buildRecommendationPrompt(locationLabel string, limit int) string {
	return "You are a horticulture expert. Suggest plants that thrive in the user's home area. " +
		fmt.Sprintf("Location: %s. Return ONLY plant common names, no care text. ", locationLabel) +
		fmt.Sprintf("Return JSON: {\"plants\": [\"name1\", \"name2\", ...]} with at most %d items. ", limit) +
		"Avoid invasive or banned species; default to widely available houseplants and balcony-friendly options."
}

// parseSuggestedNames extracts up to limit plant names from the model
// output. Models wrap JSON in markdown fences and flip between
// {"plants": [...]} and a bare array, or emit {"name": ...} objects
// instead of strings, so all of those parse. Duplicate names are
// dropped case-insensitively, keeping the first spelling seen.
func parseSuggestedNames(text string, limit int) ([]string, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.Trim(cleaned, "`")
		if idx := strings.IndexByte(cleaned, '\n'); idx >= 0 {
			cleaned = cleaned[idx+1:]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	var payload any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("unparseable model output: %v", err)
	}

	var items []any
	switch v := payload.(type) {
	case map[string]any:
		items, _ = v["plants"].([]any)
	case []any:
		items = v
	}

	names := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		var candidate string
		switch v := item.(type) {
		case string:
			candidate = strings.TrimSpace(v)
		case map[string]any:
			if name, ok := v["name"].(string); ok {
				candidate = strings.TrimSpace(name)
			}
		}
		if candidate == "" {
			continue
		}
		lowered := strings.ToLower(candidate)
		if _, dup := seen[lowered]; dup {
			continue
		}
		seen[lowered] = struct{}{}
		names = append(names, candidate)
		if len(names) == limit {
			break
		}
	}
	return names, nil
}
