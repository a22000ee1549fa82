package serializer

import (
	"github.com/mdouchement/neoloadutility/internal/model"
)

// Conversions returns the serialized form of the given models.
func Conversions(conversions []*model.Conversion) []map[string]interface{} {
	sl := make([]map[string]interface{}, 0, len(conversions))

	for _, conversion := range conversions {
		sl = append(sl, Conversion(conversion))
	}

	return sl
}

// Conversion returns the serialized form of the given model.
func Conversion(conversion *model.Conversion) map[string]interface{} {
	s := map[string]interface{}{
		"id":         conversion.ID,
		"kind":       conversion.Kind,
		"title":      conversion.Title,
		"requests":   conversion.Requests,
		"paths":      conversion.Paths,
		"bytes":      conversion.Size,
		"checksum":   conversion.Checksum,
		"created_at": conversion.CreatedAt,
	}
	if !conversion.TTL.IsZero() {
		s["expires_at"] = conversion.TTL
	}
	return s
}
