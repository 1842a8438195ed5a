package service

import (
	"context"
	"fmt"

	"heyday/internal/domain/notification"
	"heyday/internal/domain/repository"
	"heyday/internal/pkg/logger"
)

// ReminderNotifier forwards fired local timers to the plant owner's
// devices through the push gateway. Every failure is absorbed here;
// a reminder is a convenience, never a hard dependency.
type ReminderNotifier struct {
	plantRepo  repository.PlantRepository
	deviceRepo repository.DeviceTokenRepository
	gateway    PushGateway
	log        logger.Logger
}

// NewReminderNotifier creates a ReminderNotifier.
func NewReminderNotifier(
	plantRepo repository.PlantRepository,
	deviceRepo repository.DeviceTokenRepository,
	gateway PushGateway,
	log logger.Logger,
) *ReminderNotifier {
	return &ReminderNotifier{
		plantRepo:  plantRepo,
		deviceRepo: deviceRepo,
		gateway:    gateway,
		log:        log,
	}
}

// DeliverReminder pushes one fired reminder. The timer does not carry a
// context of its own, so delivery runs under a background one.
func (n *ReminderNotifier) DeliverReminder(payload notification.ReminderPayload) {
	ctx := context.Background()

	plant, err := n.plantRepo.FindByID(ctx, payload.PlantID)
	if err != nil {
		n.log.Warn(fmt.Sprintf("Reminder fired for plant %s but it could not be loaded (removed?): %v", payload.PlantID, err))
		return
	}

	tokens, err := n.deviceRepo.FindActiveByUser(ctx, plant.UserID)
	if err != nil {
		n.log.Error(fmt.Sprintf("Failed to resolve push address for user %s after a reminder fired", plant.UserID), err)
		return
	}
	if len(tokens) == 0 {
		n.log.Warn(fmt.Sprintf("Reminder fired for plant %s but user %s has no active push address.", plant.ID, plant.UserID))
		return
	}

	messages := make([]notification.PushMessage, 0, len(tokens))
	for _, token := range tokens {
		messages = append(messages, notification.PushMessage{
			Token: token.Token,
			Title: payload.Title,
			Body:  payload.Body,
			Data:  map[string]string{"plant_id": plant.ID},
		})
	}

	if err := n.gateway.SendBatch(ctx, messages); err != nil {
		n.log.Error(fmt.Sprintf("Failed to deliver fired reminder for plant %s", plant.ID), err)
		return
	}
	n.log.Info(fmt.Sprintf("Delivered reminder for plant %s to %d device(s).", plant.ID, len(messages)))
}
