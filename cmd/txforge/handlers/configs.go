package handlers

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func libraryPath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return defaultLibraryPath()
}

// ConfigsList prints the saved configurations, most recently updated first.
func ConfigsList(dbPath string) error {
	lib, err := openLibrary(libraryPath(dbPath))
	if err != nil {
		return fmt.Errorf("failed to open config library: %w", err)
	}
	defer lib.Close()

	configs, err := lib.List()
	if err != nil {
		return fmt.Errorf("failed to list configs: %w", err)
	}
	if len(configs) == 0 {
		fmt.Println("No saved configurations. Run 'txforge init --save' to create one.")
		return nil
	}

	fmt.Printf("%-36s %-8s %-20s %s\n", "ID", "ECO", "NETWORK", "TITLE")
	for _, cfg := range configs {
		fmt.Printf("%-36s %-8s %-20s %s\n", cfg.ID, cfg.Ecosystem, cfg.NetworkID, cfg.Title)
	}
	return nil
}

// ConfigsShow prints one saved configuration as YAML.
func ConfigsShow(dbPath, id string) error {
	lib, err := openLibrary(libraryPath(dbPath))
	if err != nil {
		return fmt.Errorf("failed to open config library: %w", err)
	}
	defer lib.Close()

	cfg, err := lib.Get(id)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

// ConfigsDelete removes one saved configuration.
func ConfigsDelete(dbPath, id string) error {
	lib, err := openLibrary(libraryPath(dbPath))
	if err != nil {
		return fmt.Errorf("failed to open config library: %w", err)
	}
	defer lib.Close()

	if err := lib.Delete(id); err != nil {
		return fmt.Errorf("failed to delete config %s: %w", id, err)
	}
	fmt.Printf("Deleted %s\n", id)
	return nil
}
