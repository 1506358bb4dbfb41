package knowledge

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data
var defaultData embed.FS

const (
	parametersFile = "39_parameters.yaml"
	principlesFile = "40_principles.yaml"
	matrixFile     = "contradiction_matrix.csv"
)

// Base is the immutable knowledge context shared by every pipeline stage.
// It is constructed once (see Default) and only read afterwards.
type Base struct {
	parameters map[int]Parameter
	principles map[int]Principle
	matrix     map[PairKey][]int
	effects    []Effect
	effectByID map[string]Effect

	parameterOrder []int
	principleOrder []int
}

var (
	defaultOnce sync.Once
	defaultBase *Base
	defaultErr  error
)

// Default returns the process-wide knowledge base loaded from the embedded
// tables. The load happens once; subsequent calls return the cached value.
func Default() (*Base, error) {
	defaultOnce.Do(func() {
		defaultBase, defaultErr = load(defaultData, "data")
	})
	return defaultBase, defaultErr
}

// LoadDir loads a knowledge base from an external directory containing the
// three table files. A missing or unreadable file is a configuration error
// and propagates to the caller.
func LoadDir(dir string) (*Base, error) {
	return load(os.DirFS(dir), ".")
}

func load(fsys fs.FS, root string) (*Base, error) {
	b := &Base{
		parameters: map[int]Parameter{},
		principles: map[int]Principle{},
		matrix:     map[PairKey][]int{},
		effectByID: map[string]Effect{},
	}

	if err := b.loadParameters(fsys, path.Join(root, parametersFile)); err != nil {
		return nil, err
	}
	if err := b.loadPrinciples(fsys, path.Join(root, principlesFile)); err != nil {
		return nil, err
	}
	if err := b.loadMatrix(fsys, path.Join(root, matrixFile)); err != nil {
		return nil, err
	}

	b.effects = append(b.effects, DefaultEffects...)
	for _, e := range b.effects {
		b.effectByID[e.ID] = e
	}
	return b, nil
}

func (b *Base) loadParameters(fsys fs.FS, path string) error {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read parameters table: %w", err)
	}
	var doc struct {
		Parameters []Parameter `yaml:"parameters"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse parameters table: %w", err)
	}
	for _, p := range doc.Parameters {
		b.parameters[p.ID] = p
		b.parameterOrder = append(b.parameterOrder, p.ID)
	}
	sort.Ints(b.parameterOrder)
	return nil
}

func (b *Base) loadPrinciples(fsys fs.FS, path string) error {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read principles table: %w", err)
	}
	var doc struct {
		Principles []Principle `yaml:"principles"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse principles table: %w", err)
	}
	for _, p := range doc.Principles {
		b.principles[p.ID] = p
		b.principleOrder = append(b.principleOrder, p.ID)
	}
	sort.Ints(b.principleOrder)
	return nil
}

func (b *Base) loadMatrix(fsys fs.FS, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("read contradiction matrix: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read contradiction matrix header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"improving_parameter", "worsening_parameter", "recommended_principles"} {
		if _, ok := col[required]; !ok {
			return fmt.Errorf("contradiction matrix missing column %q", required)
		}
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read contradiction matrix row: %w", err)
		}
		imp, err := strconv.Atoi(strings.TrimSpace(row[col["improving_parameter"]]))
		if err != nil {
			return fmt.Errorf("contradiction matrix improving id: %w", err)
		}
		wors, err := strconv.Atoi(strings.TrimSpace(row[col["worsening_parameter"]]))
		if err != nil {
			return fmt.Errorf("contradiction matrix worsening id: %w", err)
		}
		var principles []int
		for _, part := range strings.Split(row[col["recommended_principles"]], ";") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return fmt.Errorf("contradiction matrix principle id: %w", err)
			}
			principles = append(principles, id)
		}
		// Both orderings point at the same recommendation list.
		b.matrix[PairKey{imp, wors}] = principles
		b.matrix[PairKey{wors, imp}] = principles
	}
	return nil
}

func (b *Base) Parameter(id int) (Parameter, bool) {
	p, ok := b.parameters[id]
	return p, ok
}

func (b *Base) Principle(id int) (Principle, bool) {
	p, ok := b.principles[id]
	return p, ok
}

func (b *Base) Effect(id string) (Effect, bool) {
	e, ok := b.effectByID[id]
	return e, ok
}

// Parameters returns all parameters in table order.
func (b *Base) Parameters() []Parameter {
	out := make([]Parameter, 0, len(b.parameterOrder))
	for _, id := range b.parameterOrder {
		out = append(out, b.parameters[id])
	}
	return out
}

// Principles returns all principles in table order.
func (b *Base) Principles() []Principle {
	out := make([]Principle, 0, len(b.principleOrder))
	for _, id := range b.principleOrder {
		out = append(out, b.principles[id])
	}
	return out
}

// Effects returns the fixed scientific-effects catalog in catalog order.
func (b *Base) Effects() []Effect {
	out := make([]Effect, len(b.effects))
	copy(out, b.effects)
	return out
}

// PrinciplesFor returns the recommended principle ids for a contradiction
// pair, or nil when the pair has no matrix entry. An absent pair is a normal
// condition, not an error.
func (b *Base) PrinciplesFor(improving, worsening int) []int {
	return b.matrix[PairKey{improving, worsening}]
}

// MatrixPairs returns every populated matrix key, both orderings included.
func (b *Base) MatrixPairs() []PairKey {
	keys := make([]PairKey, 0, len(b.matrix))
	for k := range b.matrix {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Improving != keys[j].Improving {
			return keys[i].Improving < keys[j].Improving
		}
		return keys[i].Worsening < keys[j].Worsening
	})
	return keys
}

// SearchParameters returns every parameter whose name or description
// contains the query, case-insensitively, in table order.
func (b *Base) SearchParameters(query string) []Parameter {
	q := strings.ToLower(query)
	var out []Parameter
	for _, id := range b.parameterOrder {
		p := b.parameters[id]
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// SearchPrinciples returns every principle whose name or description
// contains the query, case-insensitively, in table order.
func (b *Base) SearchPrinciples(query string) []Principle {
	q := strings.ToLower(query)
	var out []Principle
	for _, id := range b.principleOrder {
		p := b.principles[id]
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// SearchEffects returns every effect whose name, description or application
// list contains the query, case-insensitively, in catalog order.
func (b *Base) SearchEffects(query string) []Effect {
	q := strings.ToLower(query)
	var out []Effect
	for _, e := range b.effects {
		if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.Description), q) {
			out = append(out, e)
			continue
		}
		for _, app := range e.Applications {
			if strings.Contains(strings.ToLower(app), q) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
