package support

import (
	"testing"
	"time"

	"mani_electrical_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func deliveredOrder(createdAgo, deliveredAgo time.Duration) models.Order {
	deliveredAt := time.Now().Add(-deliveredAgo)
	return models.Order{
		Status:      models.OrderStatusDelivered,
		CreatedAt:   time.Now().Add(-createdAgo),
		DeliveredAt: &deliveredAt,
	}
}

func TestReturnDeadlineFromDeliveryDate(t *testing.T) {
	// livrée il y a 6 jours : fenêtre encore ouverte
	open := deliveredOrder(12*24*time.Hour, 6*24*time.Hour)
	assert.True(t, time.Now().Before(returnDeadline(open)))

	// livrée il y a 8 jours : fenêtre de 7 jours dépassée
	expired := deliveredOrder(12*24*time.Hour, 8*24*time.Hour)
	assert.True(t, time.Now().After(returnDeadline(expired)))
}

func TestReturnDeadlineExactWindow(t *testing.T) {
	deliveredAt := time.Now().Add(-3 * 24 * time.Hour)
	order := models.Order{
		Status:      models.OrderStatusDelivered,
		CreatedAt:   deliveredAt.Add(-2 * 24 * time.Hour),
		DeliveredAt: &deliveredAt,
	}

	assert.Equal(t, deliveredAt.Add(ReturnWindow), returnDeadline(order))
}

func TestReturnDeadlineWithoutDeliveryDate(t *testing.T) {
	// date de livraison non suivie : borne sur commande + acheminement
	// forfaitaire + fenêtre. Une commande de 29 jours est refusée.
	old := models.Order{
		Status:    models.OrderStatusDelivered,
		CreatedAt: time.Now().Add(-29 * 24 * time.Hour),
	}
	assert.True(t, time.Now().After(returnDeadline(old)))

	// une commande de 15 jours reste dans la fenêtre
	recent := models.Order{
		Status:    models.OrderStatusDelivered,
		CreatedAt: time.Now().Add(-15 * 24 * time.Hour),
	}
	assert.True(t, time.Now().Before(returnDeadline(recent)))
}
