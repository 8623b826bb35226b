package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrgSlugNormalizesName(t *testing.T) {
	slug := OrgSlug("  Green Earth_Foundation ")

	require.True(t, strings.HasPrefix(slug, "green-earth-foundation-"), slug)
	// suffixe aléatoire de 8 caractères
	require.Len(t, slug, len("green-earth-foundation-")+8)
}

func TestOrgSlugEmptyNameFallsBack(t *testing.T) {
	slug := OrgSlug("   ")
	require.True(t, strings.HasPrefix(slug, "org-"), slug)
}

func TestOrgSlugDistinctForSameName(t *testing.T) {
	require.NotEqual(t, OrgSlug("Solidarité"), OrgSlug("Solidarité"))
}
