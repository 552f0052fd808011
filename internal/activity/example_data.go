package activity

import (
	"time"

	"github.com/agrocampo/api/internal/domain"
)

// ExampleActivities is the illustrative dataset shown when the real
// activity list cannot be loaded. The records carry the caller's user ID
// so the client renders them like any other list, and the surrounding
// ListResult flags them as example data.
func ExampleActivities(userID string, now time.Time) []domain.Activity {
	today := now.Truncate(24 * time.Hour)
	return []domain.Activity{
		{
			ID:             "example-1",
			UserID:         userID,
			Tipo:           "Pulverização",
			Descricao:      "Aplicação de defensivo na soja",
			Status:         domain.StatusPending,
			DataProgramada: today.Add(9 * time.Hour),
		},
		{
			ID:             "example-2",
			UserID:         userID,
			Tipo:           "Adubação",
			Descricao:      "Adubação de cobertura no milho",
			Status:         domain.StatusPlanned,
			DataProgramada: today.AddDate(0, 0, 2).Add(8 * time.Hour),
		},
		{
			ID:             "example-3",
			UserID:         userID,
			Tipo:           "Irrigação",
			Descricao:      "Irrigação do talhão norte",
			Status:         domain.StatusCompleted,
			DataProgramada: today.AddDate(0, 0, -1).Add(7 * time.Hour),
			DataConclusao:  ptrTime(today.AddDate(0, 0, -1).Add(10 * time.Hour)),
		},
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
