package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	opportunityID := flag.String("opportunity", "", "Opportunity id whose line items to display (required)")
	dbPath := flag.String("db", "", "Path to the deal database (defaults to the config dir)")
	theme := flag.String("theme", "", "Markdown rendering theme: auto, light, or dark")
	locale := flag.String("locale", "", "Column label locale: en or fr")
	flag.Parse()

	cfg, cfgPath := loadUIConfig()
	changed := false
	if *theme != "" && *theme != cfg.Theme {
		cfg.Theme = *theme
		changed = true
	}
	if *locale != "" && *locale != cfg.Locale {
		cfg.Locale = *locale
		changed = true
	}
	if changed {
		_ = saveUIConfig(cfg, cfgPath)
	}
	// The database path stays a per-invocation override.
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}
	setMarkdownTheme(markdownThemeFromString(cfg.Theme))

	if *opportunityID == "" {
		fmt.Fprintln(os.Stderr, "error: --opportunity is required")
		os.Exit(2)
	}

	store, err := openDealStore(cfg.databasePath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer store.Close()

	events := newEventLog(filepath.Join(resolveConfigDir(), "ui-events.ndjson"), *opportunityID)
	events.Emit("session_started", map[string]string{"db": cfg.databasePath()})

	if _, err := tea.NewProgram(
		newModel(store, cfg, *opportunityID, events),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
