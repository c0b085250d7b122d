package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/backendren/Web-Directory/internal/browser"
	"github.com/backendren/Web-Directory/internal/config"
	"github.com/backendren/Web-Directory/internal/directory"
	"github.com/backendren/Web-Directory/internal/exporter"
	"github.com/backendren/Web-Directory/internal/importer"
	"github.com/backendren/Web-Directory/internal/logger"
	"github.com/backendren/Web-Directory/internal/model"
	"github.com/backendren/Web-Directory/internal/picker"
	"github.com/backendren/Web-Directory/internal/search"
	"github.com/backendren/Web-Directory/internal/storage"
	"github.com/backendren/Web-Directory/internal/tags"
	"github.com/backendren/Web-Directory/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "add":
			if len(os.Args) < 4 {
				fmt.Fprintf(os.Stderr, "Usage: webdir add <name> <url> [tags]\n")
				os.Exit(1)
			}
			runAdd(os.Args[2], os.Args[3], os.Args[4:])
			return
		case "list":
			runList(os.Args[2:])
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: webdir import <file.html|file.yaml>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			// Export with optional path
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `webdir - local bookmark directory

Usage:
  webdir                       Open interactive TUI
  webdir <query>               Quick search → select → open
  webdir add <name> <url> [tags]   Add a bookmark
  webdir list [keyword] [page]     Print a page of bookmarks
  webdir import <file>         Import bookmarks from HTML or YAML
  webdir export [path]         Export bookmarks to CSV
  webdir help                  Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    h/l         Previous/next page
    g/G         Jump to top/bottom of page

  Actions:
    o/Enter     Open bookmark in browser
    Y           Copy URL to clipboard
    /           Filter by keyword

  Editing:
    a           Add bookmark
    e           Edit selected bookmark
    d           Delete (with confirmation)

  Other:
    q           Quit

Data Storage:
  ~/.config/webdir/bookmarks.db
`
	fmt.Print(help)
}

// openDirectory loads config, the logger and the record store and wires the
// directory over them. The returned cleanup closes the store and flushes
// the log.
func openDirectory() (*directory.Directory, func()) {
	cfgPath, err := config.DefaultConfigFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving config path: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logPath, err := cfg.LogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving log path: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening bookmark store: %v\n", err)
		os.Exit(1)
	}

	dir := directory.New(store, cfg, log)
	return dir, func() {
		_ = dir.Close()
		_ = log.Sync()
	}
}

// runTUI runs the full interactive TUI.
func runTUI() {
	dir, cleanup := openDirectory()
	defer cleanup()

	app := tui.NewApp(tui.AppParams{Directory: dir})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runAdd adds a single bookmark from the command line.
func runAdd(name, url string, rawTags []string) {
	dir, cleanup := openDirectory()
	defer cleanup()

	id, err := dir.Create(model.Draft{
		Name: name,
		URL:  url,
		Tags: rawTags,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding bookmark: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Added #%d %s\n", id, name)
}

// runList prints one page of bookmarks, newest first. A trailing numeric
// argument selects the page, everything before it is the filter keyword.
func runList(args []string) {
	dir, cleanup := openDirectory()
	defer cleanup()

	page := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[len(args)-1]); err == nil {
			page = n
			args = args[:len(args)-1]
		}
	}
	keyword := strings.Join(args, " ")

	result, err := dir.List(keyword, page)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing bookmarks: %v\n", err)
		os.Exit(1)
	}

	if result.TotalFiltered == 0 {
		if keyword != "" {
			fmt.Printf("No bookmarks match '%s'\n", keyword)
		} else {
			fmt.Println("No bookmarks yet")
		}
		return
	}

	for _, record := range result.Items {
		line := fmt.Sprintf("%4d  %s  %s", record.ID, record.Name, record.URL)
		if len(record.Tags) > 0 {
			line += "  [" + tags.Join(record.Tags) + "]"
		}
		line += "  " + model.FormatTime(record.CreatedAt)
		fmt.Println(line)
	}

	fmt.Printf("\nPage %d/%d (%d of %d bookmarks)\n",
		result.CurrentPage, result.TotalPages,
		result.TotalFiltered, result.TotalUnfiltered)
}

// runQuickSearch performs a fuzzy search and opens the selected bookmark.
func runQuickSearch(query string) {
	dir, cleanup := openDirectory()
	defer cleanup()

	records, err := dir.Snapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}

	results := search.Records(records, query)

	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *model.BookmarkRecord

	if len(results) == 1 {
		// Single result - select it directly
		selected = &results[0].Record
		fmt.Printf("Opening: %s\n", selected.Name)
	} else {
		// Multiple results - show picker
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.Selected()
	}

	if selected == nil {
		os.Exit(0)
	}

	browser.Open(selected.URL)
}

// runImport handles the import subcommand. The parser is chosen by file
// extension.
func runImport(filePath string) {
	dir, cleanup := openDirectory()
	defer cleanup()

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	var entries []importer.Entry
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".html", ".htm":
		entries, err = importer.ParseHTML(file)
	case ".yaml", ".yml":
		entries, err = importer.ParseYAML(file)
	default:
		fmt.Fprintf(os.Stderr, "Unsupported import format %q (want .html or .yaml)\n", filepath.Ext(filePath))
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", filePath, err)
		os.Exit(1)
	}

	added, skipped, err := dir.Import(entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing bookmarks: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d bookmarks", added)
	if skipped > 0 {
		fmt.Printf(" (%d skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	dir, cleanup := openDirectory()
	defer cleanup()

	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	records, err := dir.Snapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}

	if err := exporter.WriteCSVFile(outputPath, records); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d bookmarks to %s\n", len(records), outputPath)
}
