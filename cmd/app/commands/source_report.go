package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vttbridge/relay/internal/app"
	"github.com/vttbridge/relay/internal/catalog/domain"
	"github.com/vttbridge/relay/internal/config"
)

// RunSourceReport fetches the full item and spell catalogs for a credential
// and prints the per-source ownership breakdown.
func RunSourceReport(ctx context.Context, cookie, format string, ioTuple IOTuple) error {
	if strings.TrimSpace(cookie) == "" {
		return fmt.Errorf("cookie cannot be blank")
	}

	container := app.NewContainer(config.Load())
	logger := container.Logger()
	defer closeContainer(container, logger)

	itemUseCase, err := container.ItemUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize item use case: %w", err)
	}
	spellUseCase, err := container.SpellUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize spell use case: %w", err)
	}

	items, err := itemUseCase.FetchAllItems(ctx, cookie, nil, false)
	if err != nil {
		return fmt.Errorf("item fetch failed: %w", err)
	}
	spells, err := spellUseCase.FetchAllSpells(ctx, cookie, nil, false)
	if err != nil {
		return fmt.Errorf("spell fetch failed: %w", err)
	}

	rows := domain.BuildSourceReport(items, spells)
	return renderSourceReport(rows, format, ioTuple.Writer)
}

// renderSourceReport writes the report rows as a text table or JSON.
func renderSourceReport(rows []domain.SourceReportRow, format string, w io.Writer) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	case "text":
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "SOURCE\tITEMS\tSPELLS\tOWNED")
		for _, row := range rows {
			owned := "no"
			if row.Owned {
				owned = "yes"
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", row.SourceName, row.ItemCount, row.SpellCount, owned)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}
