package history

import (
	"fmt"
	"io"
	"sort"

	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/schema"
)

// PrintHistoryStatus prints history status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Lookups: %d\n", status.TotalLookups)
	if status.TotalLookups > 0 {
		_, _ = fmt.Fprintf(w, "Distinct Schools: %d\n", status.DistinctSchools)
		_, _ = fmt.Fprintf(w, "Failed Lookups: %d\n", status.FailedLookups)
		_, _ = fmt.Fprintf(w, "Last Lookup ID: %d\n", status.LastLookupID)
		_, _ = fmt.Fprintf(w, "Last Lookup: %s\n", status.LastLookupTime.Local().Format(contract.DateTimeFormat))
		_, _ = fmt.Fprintf(w, "Oldest Lookup: %s\n", status.OldestLookup.Local().Format(contract.DateTimeFormat))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)

	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	_, _ = fmt.Fprintln(w, "Table Rows:")
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
