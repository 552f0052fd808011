package domain

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ActivityStatus is the closed set of activity lifecycle states.
// The backend historically stored free-text status strings; every known
// spelling is folded to one canonical variant at the ingestion boundary
// so internal logic never string-matches raw text.
type ActivityStatus string

const (
	StatusPending   ActivityStatus = "pendente"
	StatusPlanned   ActivityStatus = "planejada"
	StatusCompleted ActivityStatus = "concluído"
	StatusUnknown   ActivityStatus = ""
)

// Activity represents an atividade: a scheduled or completed agricultural
// task tied to a plot.
type Activity struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	TalhaoID       string         `json:"talhao_id"`
	Tipo           string         `json:"tipo"`
	Descricao      string         `json:"descricao,omitempty"`
	Status         ActivityStatus `json:"status"`
	DataProgramada time.Time      `json:"data_programada"`
	DataConclusao  *time.Time     `json:"data_conclusao,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// IsCompleted reports whether the activity has reached its terminal state.
func (a Activity) IsCompleted() bool {
	return NormalizeStatus(string(a.Status)) == StatusCompleted
}

var statusFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldStatus lowercases and strips diacritics so "Concluída" and
// "CONCLUIDO" compare equal.
func foldStatus(s string) string {
	folded, _, err := transform.String(statusFolder, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return folded
}

// NormalizeStatus maps any known backend spelling of a status onto the
// canonical variant. Unrecognized strings map to StatusUnknown and are
// rendered neutrally rather than failing.
func NormalizeStatus(raw string) ActivityStatus {
	switch folded := foldStatus(raw); folded {
	case "pendente":
		return StatusPending
	case "planejada", "planejado":
		return StatusPlanned
	case "concluido", "concluida", "completa", "completada", "finalizada":
		return StatusCompleted
	default:
		return StatusUnknown
	}
}
