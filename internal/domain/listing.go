package domain

import "time"

// Listing is a marketplace advertisement for a product, independent of
// farm/plot data. There is no status field: present means active.
type Listing struct {
	ID          string    `json:"id"`
	Titulo      string    `json:"titulo"`
	Descricao   string    `json:"descricao"`
	Preco       float64   `json:"preco"`
	Localizacao string    `json:"localizacao"`
	Telefone    string    `json:"telefone"`
	ImagemURL   string    `json:"imagem_url,omitempty"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListingUpdate carries the mutable fields of a listing.
type ListingUpdate struct {
	Titulo      *string  `json:"titulo,omitempty"`
	Descricao   *string  `json:"descricao,omitempty"`
	Preco       *float64 `json:"preco,omitempty"`
	Localizacao *string  `json:"localizacao,omitempty"`
	Telefone    *string  `json:"telefone,omitempty"`
	ImagemURL   *string  `json:"imagem_url,omitempty"`
}
