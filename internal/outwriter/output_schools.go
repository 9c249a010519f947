package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/internal/parquet"
	"github.com/huangsam/satscout/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// maxNameWidth caps the school name column in table output.
const maxNameWidth = 45

// NoSchoolsLabel is shown in place of an empty school table.
const NoSchoolsLabel = "No schools found"

// WriteSchools outputs the school list, dispatching based on the output format configured.
func WriteSchools(result schema.DirectoryResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteSchoolsJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSchoolsCSV(w, result.Schools)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteSchoolsParquet(parquet.ConvertSchools(result.Schools), w)
		}, "Wrote Parquet")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := WriteSchoolListTo(w, result, cfg); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Showing %d schools. Fetched in %v\n", len(result.Schools), duration.Round(time.Millisecond))
			return err
		}, "Wrote table")
	}
}

// WriteSchoolListTo writes the school table to w.
func WriteSchoolListTo(w io.Writer, result schema.DirectoryResult, cfg *contract.Config) error {
	if len(result.Schools) == 0 {
		_, err := fmt.Fprintln(w, NoSchoolsLabel)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "DBN", "School", "Location", "Map"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	locationWidth := GetMaxTableLocationWidth(cfg)
	data := make([][]string, 0, len(result.Schools))
	for i, s := range result.Schools {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			s.DBN,
			contract.TruncateText(s.Name, maxNameWidth),
			contract.TruncateText(s.Location, locationWidth),
			mapStatus(s),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// mapStatus is the short map column value for the school table.
func mapStatus(s schema.School) string {
	if _, ok := s.Coordinates(); ok {
		return "yes"
	}
	return "-"
}

// writeSchoolsCSV writes the school list in CSV format.
func writeSchoolsCSV(w io.Writer, schools []schema.School) error {
	header := []string{"rank", "dbn", "school_name", "location", "latitude", "longitude", "map_url"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, s := range schools {
			lat, lon, mapURL := "", "", ""
			if c, ok := s.Coordinates(); ok {
				lat = strconv.FormatFloat(c.Lat, 'f', -1, 64)
				lon = strconv.FormatFloat(c.Lon, 'f', -1, 64)
				mapURL = contract.MapURL(c)
			}
			rec := []string{strconv.Itoa(i + 1), s.DBN, s.Name, s.Location, lat, lon, mapURL}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// jsonSchool is a school with its rank and parsed location.
type jsonSchool struct {
	Rank int `json:"rank"`
	schema.School
	Coordinates *schema.Coordinates `json:"coordinates,omitempty"`
	MapURL      string              `json:"map_url,omitempty"`
}

// WriteSchoolsJSON writes the school list and fetch outcome in JSON format.
func WriteSchoolsJSON(w io.Writer, result schema.DirectoryResult) error {
	output := struct {
		Outcome schema.FetchOutcome `json:"outcome"`
		Count   int                 `json:"count"`
		Schools []jsonSchool        `json:"schools"`
	}{
		Outcome: result.Outcome,
		Count:   len(result.Schools),
		Schools: make([]jsonSchool, len(result.Schools)),
	}
	for i, s := range result.Schools {
		js := jsonSchool{Rank: i + 1, School: s}
		if c, ok := s.Coordinates(); ok {
			js.Coordinates = &c
			js.MapURL = contract.MapURL(c)
		}
		output.Schools[i] = js
	}
	return writeJSON(w, output)
}
