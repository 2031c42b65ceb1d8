package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"hn-scraper/internal/scraper"
)

// LoadSelectors reads a selector set from a YAML file. Built-in sets for the
// known page layouts live in the scraper package; a file lets the tool follow
// a markup change without a rebuild.
func LoadSelectors(filePath string) (*scraper.Selectors, error) {
	if filePath == "" {
		return nil, fmt.Errorf("selectors file path is empty")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open selectors file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close selectors file: %v", closeErr)
		}
	}()

	var selectors scraper.Selectors
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&selectors); err != nil {
		return nil, fmt.Errorf("failed to parse selectors YAML: %w", err)
	}

	if err := validateSelectors(&selectors); err != nil {
		return nil, err
	}

	return &selectors, nil
}

// validateSelectors checks the minimal set a run needs. Rank selectors may be
// empty (the positional-anchor layout carries no rank).
func validateSelectors(s *scraper.Selectors) error {
	if s.ItemSelector == "" {
		return fmt.Errorf("item_selector is required")
	}
	if !s.AnchorMode {
		if len(s.TitleSelectors) == 0 {
			return fmt.Errorf("title_selectors is required")
		}
		if len(s.URLSelectors) == 0 {
			return fmt.Errorf("url_selectors is required")
		}
	}
	return nil
}
