package utils

import (
	"strings"

	"github.com/google/uuid"
)

// OrgSlug dérive l'identifiant public d'une organisation depuis son nom :
// minuscules, espaces et underscores remplacés par des tirets, plus un suffixe
// aléatoire pour que deux ONG homonymes gardent des slugs distincts.
func OrgSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")
	if slug == "" {
		slug = "org"
	}
	return slug + "-" + uuid.NewString()[:8]
}
