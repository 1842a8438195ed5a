// Package seedfile loads the bundled species catalog from a YAML file
// and watches it for edits.
package seedfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"heyday/internal/domain/entity"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

type seedDocument struct {
	Species []seedSpecies `yaml:"species"`
}

type seedSpecies struct {
	Name                 string `yaml:"name"`
	CommonName           string `yaml:"common_name"`
	ScientificName       string `yaml:"scientific_name"`
	WateringBenchmark    string `yaml:"watering_benchmark"`
	WateringIntervalDays *int   `yaml:"watering_interval_days"`
	Sunlight             string `yaml:"sunlight"`
	MaintenanceCategory  string `yaml:"maintenance"`
	PoisonousToHumans    bool   `yaml:"poisonous_to_humans"`
	PoisonousToPets      bool   `yaml:"poisonous_to_pets"`
	DefaultImageURL      string `yaml:"image_url"`
	CareNotes            string `yaml:"care_notes"`
}

// Load reads the seed file at path and returns its species rows.
// Entries without a name are skipped.
func Load(path string) ([]entity.Species, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read seed file: %v", appErrors.ErrInternalServer, err)
	}

	var doc seedDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse seed file: %v", appErrors.ErrInternalServer, err)
	}

	species := make([]entity.Species, 0, len(doc.Species))
	for _, s := range doc.Species {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name == "" {
			continue
		}
		species = append(species, entity.Species{
			Name:                 name,
			CommonName:           s.CommonName,
			ScientificName:       s.ScientificName,
			WateringBenchmark:    s.WateringBenchmark,
			WateringIntervalDays: s.WateringIntervalDays,
			Sunlight:             s.Sunlight,
			MaintenanceCategory:  s.MaintenanceCategory,
			PoisonousToHumans:    s.PoisonousToHumans,
			PoisonousToPets:      s.PoisonousToPets,
			DefaultImageURL:      s.DefaultImageURL,
			CareNotes:            s.CareNotes,
		})
	}
	return species, nil
}

// Watch invokes onChange whenever the file at path is written or
// recreated, until ctx is canceled. It returns after the watch is
// installed; events are handled on a background goroutine.
func Watch(ctx context.Context, path string, log logger.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
					log.Info(fmt.Sprintf("Seed file %s changed, reloading.", event.Name))
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn(fmt.Sprintf("Seed file watch error: %v", err))
			}
		}
	}()

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("%w: watch %s: %v", appErrors.ErrInternalServer, path, err)
	}
	return nil
}
