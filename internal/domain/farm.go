package domain

import "time"

// Farm represents a lavoura: a top-level property record owned by a user.
type Farm struct {
	ID          string    `json:"id"`
	Nome        string    `json:"nome"`
	Localizacao string    `json:"localizacao"`
	AreaTotal   float64   `json:"area_total"`
	UnidadeArea string    `json:"unidade_area"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FarmUpdate carries the mutable fields of a farm. Nil pointers mean
// "leave unchanged".
type FarmUpdate struct {
	Nome        *string  `json:"nome,omitempty"`
	Localizacao *string  `json:"localizacao,omitempty"`
	AreaTotal   *float64 `json:"area_total,omitempty"`
	UnidadeArea *string  `json:"unidade_area,omitempty"`
}
