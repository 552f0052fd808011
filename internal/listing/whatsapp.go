package listing

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/agrocampo/api/internal/domain"
)

// BuildWhatsAppLink constructs the wa.me deep link for contacting a
// seller: digits-only phone plus a prefilled message referencing the
// listing title.
func BuildWhatsAppLink(listing *domain.Listing) (string, error) {
	phone := digitsOnly(listing.Telefone)
	if phone == "" {
		return "", fmt.Errorf("%w: listing has no contact phone", domain.ErrInvalidInput)
	}

	message := fmt.Sprintf("Olá! Vi seu anúncio %q no AgroCampo e tenho interesse.", listing.Titulo)
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message)), nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
