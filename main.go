// spektra plays a local audio file and draws its live frequency spectrum.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/spektra/internal/media"
	"github.com/olivier-w/spektra/internal/player"
	"github.com/olivier-w/spektra/internal/ui"
)

func main() {
	var path string

	if len(os.Args) < 2 {
		browser := ui.NewBrowser()
		if err := browser.Error(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		p := tea.NewProgram(browser, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		bm, ok := finalModel.(ui.BrowserModel)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unexpected model type from browser\n")
			os.Exit(1)
		}
		result := bm.Result()
		if result.Cancelled {
			os.Exit(0)
		}
		path = result.Path
	} else {
		path = os.Args[1]
	}

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open %s: %v\n", path, err)
		os.Exit(1)
	}
	if ext := strings.ToLower(filepath.Ext(path)); !media.IsSupportedExt(ext) {
		fmt.Fprintf(os.Stderr, "Error: unsupported format %q (supported: %s)\n",
			ext, media.SupportedExtsList())
		os.Exit(1)
	}

	meta := player.ReadMetadata(path)

	m := ui.New(path, meta)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
