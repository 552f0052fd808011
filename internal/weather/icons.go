package weather

import (
	"strings"

	"github.com/agrocampo/api/internal/domain"
)

// MapIconCode maps a provider icon code onto the small semantic icon set
// the UI understands, by prefix. Unrecognized or empty codes default to
// cloud-sun.
func MapIconCode(code string) domain.IconCategory {
	switch {
	case strings.HasPrefix(code, "01"):
		return domain.IconSun
	case strings.HasPrefix(code, "02"), strings.HasPrefix(code, "03"):
		return domain.IconCloudSun
	case strings.HasPrefix(code, "04"):
		return domain.IconCloud
	case strings.HasPrefix(code, "09"), strings.HasPrefix(code, "10"), strings.HasPrefix(code, "11"):
		return domain.IconCloudRain
	default:
		return domain.IconCloudSun
	}
}
