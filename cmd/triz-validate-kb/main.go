package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/trizworks/triz-engine/internal/knowledge"
)

func main() {
	kbDir := flag.String("kb", "", "knowledge base directory (defaults to the embedded tables)")
	asJSON := flag.Bool("json", false, "emit the validation report as JSON")
	flag.Parse()

	base, err := loadKnowledge(*kbDir)
	if err != nil {
		log.Fatalf("load knowledge base: %v", err)
	}

	rep := base.Validate()
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			log.Fatalf("encode report: %v", err)
		}
		return
	}

	fmt.Printf("parameters: %d\nprinciples: %d\nmatrix entries: %d\neffects: %d\n",
		rep.ParameterCount, rep.PrincipleCount, rep.MatrixEntries, rep.EffectCount)
	if rep.OK {
		fmt.Println("ok: no findings")
		return
	}
	fmt.Printf("findings (%d):\n", len(rep.Findings))
	for _, f := range rep.Findings {
		fmt.Printf("  - %s\n", f)
	}
}

func loadKnowledge(dir string) (*knowledge.Base, error) {
	if dir != "" {
		return knowledge.LoadDir(dir)
	}
	return knowledge.Default()
}
