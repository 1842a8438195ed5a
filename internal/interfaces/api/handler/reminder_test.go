package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"testing"

	"heyday/internal/application/dto"
	"heyday/internal/interfaces/api/handler"
	"heyday/internal/pkg/logger"
)

func TestReminderResync(t *testing.T) {
	t.Run("it should resync every owned plant when the body is empty", func(t *testing.T) {
		var gotUser string
		var gotIDs []string
		watering := &fakeWateringService{
			resync: func(ctx context.Context, userID string, plantIDs []string) (dto.ResyncResponse, error) {
				gotUser, gotIDs = userID, plantIDs
				return dto.ResyncResponse{Scheduled: 2, Skipped: 1}, nil
			},
		}
		h := handler.NewReminderHandler(watering, logger.New())

		c, rec := newTestContext(http.MethodPost, "/api/v1/reminders/resync", "", "u1")
		if err := h.Resync(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotUser != "u1" {
			t.Errorf("unmatch: (actual, expected) = (%s, %s)", gotUser, "u1")
		}
		if len(gotIDs) != 0 {
			t.Errorf("unmatch: (actual, expected) = (%v, %v)", gotIDs, "no ids")
		}
		if rec.Code != http.StatusOK {
			t.Errorf("unmatch: (actual, expected) = (%d, %d)", rec.Code, http.StatusOK)
		}

		var res dto.ResyncResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Scheduled != 2 || res.Skipped != 1 {
			t.Errorf("unmatch: (actual, expected) = (%+v, %+v)", res, dto.ResyncResponse{Scheduled: 2, Skipped: 1})
		}
	})

	t.Run("it should forward the listed plant ids", func(t *testing.T) {
		var gotIDs []string
		watering := &fakeWateringService{
			resync: func(ctx context.Context, userID string, plantIDs []string) (dto.ResyncResponse, error) {
				gotIDs = plantIDs
				return dto.ResyncResponse{Scheduled: 1}, nil
			},
		}
		h := handler.NewReminderHandler(watering, logger.New())

		c, _ := newTestContext(http.MethodPost, "/api/v1/reminders/resync", `{"plant_ids":["p1","p2"]}`, "u1")
		if err := h.Resync(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !reflect.DeepEqual(gotIDs, []string{"p1", "p2"}) {
			t.Errorf("unmatch: (actual, expected) = (%v, %v)", gotIDs, []string{"p1", "p2"})
		}
	})

	t.Run("it should report the notification permission flag", func(t *testing.T) {
		h := handler.NewReminderHandler(&fakeWateringService{granted: true}, logger.New())

		c, rec := newTestContext(http.MethodGet, "/api/v1/reminders/permission", "", "u1")
		if err := h.Permission(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var res dto.PermissionResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Granted {
			t.Errorf("unmatch: (actual, expected) = (%v, %v)", res.Granted, true)
		}
	})
}
