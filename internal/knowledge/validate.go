package knowledge

import "fmt"

// ValidationReport collects cross-table findings. It is a diagnostic, not a
// gate: loading never runs validation automatically.
type ValidationReport struct {
	OK             bool `json:"ok"`
	ParameterCount int  `json:"parameter_count"`
	PrincipleCount int  `json:"principle_count"`
	// MatrixEntries counts unordered pairs, matching the source table
	// rows, not the mirrored cells held in memory.
	MatrixEntries int      `json:"matrix_entries"`
	EffectCount   int      `json:"effect_count"`
	Findings      []string `json:"findings"`
}

// Validate checks that every id referenced by a matrix entry or an effect's
// related-principle list exists in its table, and that the tables carry the
// expected row counts. It never fails hard; all problems land in Findings.
func (b *Base) Validate() ValidationReport {
	report := ValidationReport{
		ParameterCount: len(b.parameters),
		PrincipleCount: len(b.principles),
		MatrixEntries:  b.matrixRowCount(),
		EffectCount:    len(b.effects),
	}

	if len(b.parameters) != ParameterCount {
		report.Findings = append(report.Findings,
			fmt.Sprintf("parameter table has %d rows, want %d", len(b.parameters), ParameterCount))
	}
	if len(b.principles) != PrincipleCount {
		report.Findings = append(report.Findings,
			fmt.Sprintf("principle table has %d rows, want %d", len(b.principles), PrincipleCount))
	}

	for _, key := range b.MatrixPairs() {
		if _, ok := b.parameters[key.Improving]; !ok {
			report.Findings = append(report.Findings,
				fmt.Sprintf("matrix pair (%d,%d) references unknown parameter %d", key.Improving, key.Worsening, key.Improving))
		}
		if _, ok := b.parameters[key.Worsening]; !ok {
			report.Findings = append(report.Findings,
				fmt.Sprintf("matrix pair (%d,%d) references unknown parameter %d", key.Improving, key.Worsening, key.Worsening))
		}
		for _, pid := range b.matrix[key] {
			if _, ok := b.principles[pid]; !ok {
				report.Findings = append(report.Findings,
					fmt.Sprintf("matrix pair (%d,%d) recommends unknown principle %d", key.Improving, key.Worsening, pid))
			}
		}
	}

	for _, effect := range b.effects {
		for _, pid := range effect.RelatedPrinciples {
			if _, ok := b.principles[pid]; !ok {
				report.Findings = append(report.Findings,
					fmt.Sprintf("effect %q references unknown principle %d", effect.ID, pid))
			}
		}
	}

	report.OK = len(report.Findings) == 0
	return report
}

// Valid is the boolean form of Validate for callers that only need the soft
// health-check answer.
func (b *Base) Valid() bool {
	return b.Validate().OK
}

// matrixRowCount counts each unordered pair once. The in-memory map holds
// both orderings of every loaded row.
func (b *Base) matrixRowCount() int {
	n := 0
	for k := range b.matrix {
		if k.Improving <= k.Worsening {
			n++
		}
	}
	return n
}
