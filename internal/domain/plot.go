package domain

import "time"

// Plot represents a talhão: a subdivision of a farm with its own crop
// and growth-phase tracking. LavouraID must reference an existing farm.
type Plot struct {
	ID               string     `json:"id"`
	LavouraID        string     `json:"lavoura_id"`
	Nome             string     `json:"nome"`
	Cultura          string     `json:"cultura"`
	FaseCrescimento  string     `json:"fase_crescimento"`
	Status           string     `json:"status"`
	Area             float64    `json:"area"`
	DataPlantio      *time.Time `json:"data_plantio,omitempty"`
	PrevisaoColheita *time.Time `json:"previsao_colheita,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// PlotUpdate carries the mutable fields of a plot.
type PlotUpdate struct {
	Nome             *string    `json:"nome,omitempty"`
	Cultura          *string    `json:"cultura,omitempty"`
	FaseCrescimento  *string    `json:"fase_crescimento,omitempty"`
	Status           *string    `json:"status,omitempty"`
	Area             *float64   `json:"area,omitempty"`
	DataPlantio      *time.Time `json:"data_plantio,omitempty"`
	PrevisaoColheita *time.Time `json:"previsao_colheita,omitempty"`
}
