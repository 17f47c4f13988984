package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/npc-engine/pkg/npc"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <npc.json> [<npc.json> ...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if err := validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
			failed = true
			continue
		}
		fmt.Printf("%s: ok\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

var filenamePattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

func validateFile(filename string) error {
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("definition file must have .json extension")
	}
	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !filenamePattern.MatchString(nameWithoutExt) {
		return fmt.Errorf("filename %q must be lowercase snake_case", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if !json.Valid(data) {
		return fmt.Errorf("invalid JSON")
	}

	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()

	var def npc.Definition
	if err := decoder.Decode(&def); err != nil {
		return fmt.Errorf("strict decode failed: %w", err)
	}

	if def.ID != nameWithoutExt {
		return fmt.Errorf("id %q must match filename %q", def.ID, nameWithoutExt)
	}

	return def.ApplyDefaults().Validate()
}
