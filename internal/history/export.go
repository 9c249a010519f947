package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/internal/parquet"
)

// ErrNoHistory is returned when there is nothing to export.
var ErrNoHistory = errors.New("no lookup history found to export")

// ExecuteHistoryExport exports every recorded lookup from store to a Parquet file.
func ExecuteHistoryExport(w io.Writer, store contract.LookupStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("lookup history is disabled. Set --history-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalLookups == 0 {
		return ErrNoHistory
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total lookups: %d\n", status.TotalLookups)

	lookups, err := store.GetAllLookups()
	if err != nil {
		return fmt.Errorf("failed to retrieve lookups: %w", err)
	}

	rows := parquet.ConvertLookupRecords(lookups)
	if err := parquet.WriteLookupsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write lookups: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d lookups to: %s\n", len(rows), outputFile)
	return nil
}
