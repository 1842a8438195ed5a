package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"heyday/internal/domain/caldate"
	"heyday/internal/domain/entity"
	"heyday/internal/infrastructure/database"
	appErrors "heyday/internal/pkg/errors"
)

// newTestDB opens a named in-memory sqlite database. The name keeps the
// database private to one test while gorm's connection pool shares it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return db
}

func TestPlantRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := database.NewPlantRepository(db)

	seed := []*entity.UserPlant{
		{
			ID:            "p1",
			UserID:        "u1",
			Nickname:      "Fernie",
			IntervalDays:  7,
			LastWateredOn: caldate.New(2024, time.March, 1),
			NextWaterOn:   caldate.New(2024, time.March, 8),
		},
		{
			ID:          "p2",
			UserID:      "u2",
			NextWaterOn: caldate.New(2024, time.March, 10),
		},
		{
			ID:     "p3",
			UserID: "u1",
		},
	}
	for _, p := range seed {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	t.Run("it should return ErrPlantNotFound for an unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "nope")
		if !errors.Is(err, appErrors.ErrPlantNotFound) {
			t.Errorf("unmatch: (actual, expected) = (%v, ErrPlantNotFound)", err)
		}
	})

	t.Run("it should treat next_water_on equal to now as due", func(t *testing.T) {
		due, err := repo.FindDue(ctx, caldate.New(2024, time.March, 8))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(due) != 1 || due[0].ID != "p1" {
			t.Fatalf("unmatch: (actual, expected) = (%v, [p1])", ids(due))
		}
	})

	t.Run("it should exclude future and never-computed schedules", func(t *testing.T) {
		due, err := repo.FindDue(ctx, caldate.New(2024, time.March, 10))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(due) != 2 {
			t.Fatalf("unmatch: (actual, expected) = (%v, [p1 p2])", ids(due))
		}
	})

	t.Run("it should update schedule dates without touching the handle", func(t *testing.T) {
		handle := "h-1"
		if err := repo.UpdateHandle(ctx, "p1", &handle); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := repo.UpdateSchedule(ctx, "p1",
			caldate.New(2024, time.March, 8), caldate.New(2024, time.March, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := repo.FindByID(ctx, "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.LastWateredOn.Equal(caldate.New(2024, time.March, 8)) {
			t.Errorf("unmatch last_watered_on: (actual, expected) = (%s, 2024-03-08)", got.LastWateredOn)
		}
		if !got.NextWaterOn.Equal(caldate.New(2024, time.March, 15)) {
			t.Errorf("unmatch next_water_on: (actual, expected) = (%s, 2024-03-15)", got.NextWaterOn)
		}
		if got.PendingNotificationHandle == nil || *got.PendingNotificationHandle != "h-1" {
			t.Errorf("handle should be untouched, got %v", got.PendingNotificationHandle)
		}
	})

	t.Run("it should advance next_water_on without touching last_watered_on", func(t *testing.T) {
		if err := repo.AdvanceNextWater(ctx, "p1", caldate.New(2024, time.March, 22)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := repo.FindByID(ctx, "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.NextWaterOn.Equal(caldate.New(2024, time.March, 22)) {
			t.Errorf("unmatch next_water_on: (actual, expected) = (%s, 2024-03-22)", got.NextWaterOn)
		}
		if !got.LastWateredOn.Equal(caldate.New(2024, time.March, 8)) {
			t.Errorf("unmatch last_watered_on: (actual, expected) = (%s, 2024-03-08)", got.LastWateredOn)
		}
	})

	t.Run("it should clear the handle with nil", func(t *testing.T) {
		if err := repo.UpdateHandle(ctx, "p1", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := repo.FindByID(ctx, "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.PendingNotificationHandle != nil {
			t.Errorf("handle should be nil, got %q", *got.PendingNotificationHandle)
		}
	})

	t.Run("it should drop missing ids from FindByIDs", func(t *testing.T) {
		plants, err := repo.FindByIDs(ctx, []string{"p1", "ghost", "p3"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(plants) != 2 {
			t.Errorf("unmatch: (actual, expected) = (%v, [p1 p3])", ids(plants))
		}
	})

	t.Run("it should delete a plant row", func(t *testing.T) {
		if err := repo.Delete(ctx, "p3"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.FindByID(ctx, "p3"); !errors.Is(err, appErrors.ErrPlantNotFound) {
			t.Errorf("unmatch: (actual, expected) = (%v, ErrPlantNotFound)", err)
		}
	})
}

func TestPlantRepositoryPreloadsSpecies(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	plantRepo := database.NewPlantRepository(db)
	speciesRepo := database.NewSpeciesRepository(db)

	five := 5
	sp := &entity.Species{Name: "monstera deliciosa", CommonName: "Monstera", WateringIntervalDays: &five}
	if err := speciesRepo.Upsert(ctx, sp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plant := &entity.UserPlant{ID: "p1", UserID: "u1", SpeciesID: &sp.ID}
	if err := plantRepo.Create(ctx, plant); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := plantRepo.FindByID(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Species == nil || got.Species.CommonName != "Monstera" {
		t.Fatalf("species should be preloaded, got %+v", got.Species)
	}
	if got.EffectiveInterval() != 5 {
		t.Errorf("unmatch: (actual, expected) = (%d, 5)", got.EffectiveInterval())
	}
}

func ids(plants []*entity.UserPlant) []string {
	out := make([]string, len(plants))
	for i, p := range plants {
		out[i] = p.ID
	}
	return out
}
