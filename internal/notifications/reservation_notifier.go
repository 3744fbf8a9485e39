package notifications

import (
	"context"
	"fmt"
	"time"

	"roomly/internal/reservations"
)

// ReservationNotifier adapts the notification service to the Notifier
// interface the reservations service expects. The adapter keeps the
// reservations package free of any Kafka or notification imports.
type ReservationNotifier struct {
	service NotificationService
}

func NewReservationNotifier(service NotificationService) *ReservationNotifier {
	return &ReservationNotifier{
		service: service,
	}
}

func (rn *ReservationNotifier) ReservationConfirmed(ctx context.Context, reservation *reservations.Reservation) error {
	notification := rn.build(NotificationTypeReservationConfirmed, reservation)
	notification.Subject = fmt.Sprintf("✅ Reservation confirmed: %s room", reservation.RoomCategory)
	return rn.service.SendNotification(ctx, notification)
}

func (rn *ReservationNotifier) ReservationCancelled(ctx context.Context, reservation *reservations.Reservation) error {
	notification := rn.build(NotificationTypeReservationCancelled, reservation)
	notification.Subject = fmt.Sprintf("❌ Reservation cancelled: %s room", reservation.RoomCategory)
	return rn.service.SendNotification(ctx, notification)
}

func (rn *ReservationNotifier) build(notType NotificationType, reservation *reservations.Reservation) *Notification {
	name := reservation.GuestName
	if name == "" {
		name = "Guest"
	}

	return NewNotificationBuilder().
		WithType(notType).
		WithRecipient(reservation.GuestEmail, name).
		WithReservationContext(reservation.ID, reservation.RoomCategory).
		WithTemplateData(map[string]interface{}{
			"room_category":     reservation.RoomCategory,
			"check_in":          reservation.StartTime.Format(time.RFC3339),
			"check_out":         reservation.EndTime.Format(time.RFC3339),
			"confirmation_code": reservation.ID.String(),
		}).
		Build()
}
