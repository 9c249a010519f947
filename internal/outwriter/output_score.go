package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// ErrUnsupportedOutput is returned for output formats a view cannot produce.
var ErrUnsupportedOutput = errors.New("unsupported output format")

// WriteScore outputs one score lookup, dispatching based on the output format configured.
func WriteScore(result schema.ScoreResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteScoreTo(w, result, cfg)
	}, "Wrote score")
}

// WriteScoreTo writes one score lookup to w in the configured output format.
func WriteScoreTo(w io.Writer, result schema.ScoreResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return WriteScoreJSON(w, result)
	case schema.CSVOut:
		return writeScoreCSV(w, result)
	case schema.ParquetOut:
		return fmt.Errorf("%w: parquet is only available for the school list", ErrUnsupportedOutput)
	default:
		return writeScoreText(w, result, cfg)
	}
}

// writeScoreText renders the score detail view.
// Scores are only shown when the school reported test takers.
func writeScoreText(w io.Writer, result schema.ScoreResult, cfg *contract.Config) error {
	school := schoolOf(result)

	title := school.DBN
	if school.Name != "" {
		title = fmt.Sprintf("%s (%s)", school.Name, school.DBN)
	}
	if _, err := fmt.Fprintf(w, "🏫 %s\n", title); err != nil {
		return err
	}
	if school.Location != "" {
		if _, err := fmt.Fprintf(w, "📍 %s\n", school.Location); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "🗺️  %s\n", mapLine(school)); err != nil {
		return err
	}

	if !result.Score.HasData() {
		_, err := fmt.Fprintln(w, contract.NoDataLabel)
		return err
	}

	if _, err := fmt.Fprintf(w, "Test takers: %d\n", result.Score.TestTakers); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Subject", "Average", "Tier"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := make([][]string, 0, len(schema.AllSubjects))
	for _, subject := range schema.AllSubjects {
		tier := result.Score.TierOf(subject)
		label := contract.GetPlainLabel(tier)
		if cfg.UseColors {
			label = contract.GetColorLabel(tier)
		}
		data = append(data, []string{subjectTitle(subject), strconv.Itoa(result.Score.Value(subject)), label})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeScoreCSV writes one score lookup in CSV format.
// Score columns are empty when there is no data to show.
func writeScoreCSV(w io.Writer, result schema.ScoreResult) error {
	header := []string{
		"dbn", "school_name", "status", "test_takers",
		"reading", "reading_tier", "math", "math_tier", "writing", "writing_tier", "map_url",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		school := schoolOf(result)
		rec := []string{school.DBN, school.Name, string(result.Outcome.Status), "", "", "", "", "", "", "", ""}
		if result.Score.HasData() {
			rec[3] = strconv.Itoa(result.Score.TestTakers)
			for i, subject := range schema.AllSubjects {
				rec[4+2*i] = strconv.Itoa(result.Score.Value(subject))
				rec[5+2*i] = contract.GetPlainLabel(result.Score.TierOf(subject))
			}
		}
		if c, ok := school.Coordinates(); ok {
			rec[10] = contract.MapURL(c)
		}
		return cw.Write(rec)
	})
}

// jsonSubject is one subject row of the JSON score view.
type jsonSubject struct {
	Subject schema.Subject `json:"subject"`
	Average int            `json:"average"`
	Tier    schema.Tier    `json:"tier"`
}

// WriteScoreJSON writes one score lookup in JSON format, including the fetch outcome.
func WriteScoreJSON(w io.Writer, result schema.ScoreResult) error {
	school := schoolOf(result)
	output := struct {
		DBN        string              `json:"dbn"`
		SchoolName string              `json:"school_name,omitempty"`
		Location   string              `json:"location,omitempty"`
		Outcome    schema.FetchOutcome `json:"outcome"`
		HasData    bool                `json:"has_data"`
		TestTakers int                 `json:"test_takers"`
		Subjects   []jsonSubject       `json:"subjects,omitempty"`
		MapURL     string              `json:"map_url,omitempty"`
	}{
		DBN:        school.DBN,
		SchoolName: school.Name,
		Location:   school.Location,
		Outcome:    result.Outcome,
		HasData:    result.Score.HasData(),
	}
	if output.HasData {
		output.TestTakers = result.Score.TestTakers
		for _, subject := range schema.AllSubjects {
			output.Subjects = append(output.Subjects, jsonSubject{
				Subject: subject,
				Average: result.Score.Value(subject),
				Tier:    result.Score.TierOf(subject),
			})
		}
	}
	if c, ok := school.Coordinates(); ok {
		output.MapURL = contract.MapURL(c)
	}
	return writeJSON(w, output)
}

// schoolOf returns the school of a result, falling back to the score's DBN.
func schoolOf(result schema.ScoreResult) schema.School {
	if result.School != nil {
		return *result.School
	}
	if result.Score != nil {
		return schema.School{DBN: result.Score.DBN}
	}
	return schema.School{}
}

// mapLine is the map link for a school, or the unavailable label.
func mapLine(school schema.School) string {
	if c, ok := school.Coordinates(); ok {
		return "Map: " + contract.MapURL(c)
	}
	return contract.LocationUnavailableLabel
}

// subjectTitle is the display name of a subject.
func subjectTitle(subject schema.Subject) string {
	switch subject {
	case schema.ReadingSubject:
		return "Critical Reading"
	case schema.MathSubject:
		return "Math"
	case schema.WritingSubject:
		return "Writing"
	default:
		return string(subject)
	}
}
