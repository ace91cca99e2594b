// internal/matching/taxonomy.go
package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// UncategorizedCategory tags skills the taxonomy does not know.
const UncategorizedCategory = "uncategorized"

// taxonomyFile is the on-disk shape of configs/taxonomy.yaml.
type taxonomyFile struct {
	Aliases    map[string]string          `mapstructure:"aliases"`
	Categories map[string][]string        `mapstructure:"categories"`
	Resources  map[string]resourceEntries `mapstructure:"resources"`
}

type resourceEntries struct {
	Skills    []string `mapstructure:"skills"`
	Templates []string `mapstructure:"templates"`
	Upper     bool     `mapstructure:"upper"` // render skill names uppercase (cloud acronyms)
}

// ResourceFamily groups training-resource templates for a set of skills.
// Templates contain a single %s placeholder for the skill name.
type ResourceFamily struct {
	Name      string
	Templates []string
	Upper     bool
}

// Taxonomy is the process-wide skill table: alias resolution, category
// membership and training-resource families. Immutable after load; any
// number of concurrent match computations may read it without coordination.
type Taxonomy struct {
	aliases    map[string]string
	categories map[string]string
	members    map[string][]string
	families   map[string]ResourceFamily
	familyOf   map[string]string
}

// LoadTaxonomy reads the taxonomy file and merges it over the built-in
// defaults. An empty path returns the defaults unchanged.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	file := defaultTaxonomyFile()

	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
		}

		var overlay taxonomyFile
		if err := v.Unmarshal(&overlay); err != nil {
			return nil, fmt.Errorf("failed to parse taxonomy file %s: %w", path, err)
		}

		for alias, canonical := range overlay.Aliases {
			file.Aliases[alias] = canonical
		}
		for category, skills := range overlay.Categories {
			file.Categories[category] = skills
		}
		for name, entry := range overlay.Resources {
			file.Resources[name] = entry
		}
	}

	return buildTaxonomy(file), nil
}

// DefaultTaxonomy returns the built-in alias/category table.
func DefaultTaxonomy() *Taxonomy {
	return buildTaxonomy(defaultTaxonomyFile())
}

func buildTaxonomy(file taxonomyFile) *Taxonomy {
	t := &Taxonomy{
		aliases:    make(map[string]string, len(file.Aliases)),
		categories: make(map[string]string),
		members:    make(map[string][]string, len(file.Categories)),
		families:   make(map[string]ResourceFamily, len(file.Resources)),
		familyOf:   make(map[string]string),
	}

	for alias, canonical := range file.Aliases {
		t.aliases[normalizeToken(alias)] = normalizeToken(canonical)
	}

	// Deterministic iteration so a skill listed under two categories always
	// resolves to the same one.
	categoryNames := make([]string, 0, len(file.Categories))
	for category := range file.Categories {
		categoryNames = append(categoryNames, category)
	}
	sort.Strings(categoryNames)

	for _, category := range categoryNames {
		for _, skill := range file.Categories[category] {
			canonical := normalizeToken(skill)
			if _, seen := t.categories[canonical]; !seen {
				t.categories[canonical] = category
				t.members[category] = append(t.members[category], canonical)
			}
		}
	}

	for name, entry := range file.Resources {
		t.families[name] = ResourceFamily{
			Name:      name,
			Templates: entry.Templates,
			Upper:     entry.Upper,
		}
		for _, skill := range entry.Skills {
			t.familyOf[normalizeToken(skill)] = name
		}
	}

	return t
}

func normalizeToken(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Canonical resolves a raw skill token to its canonical form.
// Unknown tokens pass through lowercased and trimmed.
func (t *Taxonomy) Canonical(raw string) string {
	token := normalizeToken(raw)
	if canonical, ok := t.aliases[token]; ok {
		return canonical
	}
	return token
}

// Category returns the category tag for a canonical skill.
func (t *Taxonomy) Category(canonical string) string {
	if category, ok := t.categories[canonical]; ok {
		return category
	}
	return UncategorizedCategory
}

// Adjacent returns the other skills in the same category as canonical,
// in taxonomy order. Uncategorized skills have no neighbours.
func (t *Taxonomy) Adjacent(canonical string) []string {
	category, ok := t.categories[canonical]
	if !ok {
		return nil
	}
	var adjacent []string
	for _, member := range t.members[category] {
		if member != canonical {
			adjacent = append(adjacent, member)
		}
	}
	return adjacent
}

// Resources returns the training-resource family for a canonical skill,
// falling back to the default family.
func (t *Taxonomy) Resources(canonical string) ResourceFamily {
	if name, ok := t.familyOf[canonical]; ok {
		if family, ok := t.families[name]; ok {
			return family
		}
	}
	return t.families["default"]
}

func defaultTaxonomyFile() taxonomyFile {
	return taxonomyFile{
		Aliases: map[string]string{
			"js":           "javascript",
			"ts":           "typescript",
			"k8s":          "kubernetes",
			"tf":           "tensorflow",
			"ml":           "machine learning",
			"ai":           "artificial intelligence",
			"dl":           "deep learning",
			"cv":           "computer vision",
			"nlp":          "natural language processing",
			"aws ec2":      "aws",
			"aws s3":       "aws",
			"gcp bigquery": "gcp",
			"react.js":     "react",
			"node.js":      "nodejs",
			"vue.js":       "vue",
		},
		Categories: map[string][]string{
			"programming":      {"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust", "scala"},
			"cloud":            {"aws", "gcp", "azure", "cloud", "ec2", "s3", "lambda", "bigquery"},
			"data":             {"sql", "nosql", "mongodb", "postgresql", "mysql", "redis", "elasticsearch"},
			"ml_ai":            {"tensorflow", "pytorch", "scikit-learn", "machine learning", "deep learning", "natural language processing", "computer vision"},
			"devops":           {"docker", "kubernetes", "terraform", "jenkins", "ci/cd", "ansible", "prometheus"},
			"frontend":         {"react", "angular", "vue", "html", "css"},
			"backend":          {"microservices", "api", "rest", "graphql", "flask", "django", "spring"},
			"data_engineering": {"spark", "kafka", "airflow", "etl", "data pipeline", "hadoop"},
		},
		Resources: map[string]resourceEntries{
			"languages": {
				Skills: []string{"python", "java", "javascript"},
				Templates: []string{
					"Codecademy %s Course",
					"LeetCode %s Practice",
					"%s Official Documentation",
				},
			},
			"cloud": {
				Skills: []string{"aws", "gcp", "azure"},
				Upper:  true,
				Templates: []string{
					"%s Cloud Practitioner Certification",
					"%s Free Tier Hands-on Practice",
					"A Cloud Guru %s Course",
				},
			},
			"containers": {
				Skills: []string{"docker", "kubernetes"},
				Templates: []string{
					"%s Official Tutorial",
					"Hands-on %s Labs",
					"CNCF %s Certification",
				},
			},
			"default": {
				Templates: []string{
					"Online course: %s Fundamentals",
					"Certification: Professional %s",
					"Hands-on projects with %s",
				},
			},
		},
	}
}
