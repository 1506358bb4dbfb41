package knowledge

// The engineering parameter and inventive principle tables are fixed
// taxonomies: 39 parameters and 40 principles. The loaders treat the files
// as opaque data and never rewrite them.
const (
	ParameterCount = 39
	PrincipleCount = 40
)

type Parameter struct {
	ID          int    `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

type Principle struct {
	ID          int      `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Examples    []string `yaml:"examples" json:"examples"`
}

// Effect is one entry of the fixed scientific-effects catalog.
type Effect struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Applications      []string `json:"applications"`
	RelatedPrinciples []int    `json:"related_principles"`
	TechnicalDomains  []string `json:"technical_domains"`
}

// PairKey identifies a contradiction matrix cell. The matrix is symmetric:
// both orderings of a pair are inserted at load time.
type PairKey struct {
	Improving int
	Worsening int
}
