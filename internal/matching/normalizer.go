// internal/matching/normalizer.go
package matching

// Normalizer canonicalizes raw skill tokens against the taxonomy.
type Normalizer struct {
	taxonomy *Taxonomy
}

func NewNormalizer(taxonomy *Taxonomy) *Normalizer {
	return &Normalizer{taxonomy: taxonomy}
}

// Normalize resolves each raw token to its canonical form and category.
// Lookup is case-insensitive and trims whitespace; duplicates collapse to
// the first occurrence; empty tokens drop; unknown tokens pass through as
// their own canonical form with the uncategorized tag.
func (n *Normalizer) Normalize(raw []string) []NormalizedSkill {
	seen := make(map[string]struct{}, len(raw))
	skills := make([]NormalizedSkill, 0, len(raw))

	for _, token := range raw {
		canonical := n.taxonomy.Canonical(token)
		if canonical == "" {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		skills = append(skills, NormalizedSkill{
			Canonical: canonical,
			Category:  n.taxonomy.Category(canonical),
		})
	}

	return skills
}
