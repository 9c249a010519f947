package core

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/internal/outwriter"
	"github.com/huangsam/satscout/schema"
)

const browsePrompt = "Select a school by rank or DBN (q to quit): "

// ExecuteBrowse lists the schools and then reads selections from in, printing the
// score detail for each to out. A selection made while an earlier one is still loading
// supersedes it, and the earlier result is never shown.
// It serves as the main entry point for the 'browse' command.
func ExecuteBrowse(ctx context.Context, cfg *contract.Config, client contract.SchoolsClient, mgr contract.HistoryManager, in io.Reader, out io.Writer) error {
	dir := loadDirectory(WithSuppressHeader(ctx), cfg, client)
	if err := outwriter.WriteSchoolListTo(out, dir, cfg); err != nil {
		return err
	}
	if len(dir.Schools) == 0 {
		return nil
	}

	var outMu sync.Mutex
	printf := func(format string, args ...any) {
		outMu.Lock()
		defer outMu.Unlock()
		_, _ = fmt.Fprintf(out, format, args...)
	}

	sel := NewSelector(
		func(ctx context.Context, school schema.School) schema.ScoreResult {
			return lookupScore(ctx, client, mgr, school)
		},
		func(_ schema.School, result schema.ScoreResult) {
			outMu.Lock()
			defer outMu.Unlock()
			if err := outwriter.WriteScoreTo(out, result, cfg); err != nil {
				contract.LogWarn("Failed to print score", err)
			}
			_, _ = fmt.Fprint(out, browsePrompt)
		},
	)
	defer sel.Close()

	scanner := bufio.NewScanner(in)
	printf("%s", browsePrompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		}

		school, ok := resolveSelection(dir.Schools, line)
		if !ok {
			printf("No school matches %q\n%s", line, browsePrompt)
			continue
		}
		printf("Loading %s (%s)...\n", school.Name, school.DBN)
		sel.Select(ctx, school)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read selection: %w", err)
	}

	// Input ended; let the last selection finish before returning
	sel.Wait()
	return nil
}

// resolveSelection maps user input to a school: a 1-based rank or a DBN.
func resolveSelection(schools []schema.School, input string) (schema.School, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(schools) {
			return schools[n-1], true
		}
		return schema.School{}, false
	}
	return findSchool(schools, input)
}
