package gmpcheck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/matcher"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/parser"
)

// Input is one input file, fully buffered.
type Input struct {
	// Name is the file name; its extension selects the reader.
	Name string
	// Data is the raw file content.
	Data []byte
}

// ReadInput reads a file from disk into an Input.
func ReadInput(path string) (Input, error) {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Input{}, NewFileError(name, "", ErrFileNotFound)
		}
		return Input{}, NewFileError(name, "", err)
	}
	return Input{Name: name, Data: data}, nil
}

// CheckFiles reads both files and runs Check on them.
func CheckFiles(targetPath, databasePath string, opts Options) (*models.Report, error) {
	target, err := ReadInput(targetPath)
	if err != nil {
		return nil, err
	}
	database, err := ReadInput(databasePath)
	if err != nil {
		return nil, err
	}
	return Check(target, database, opts)
}

// loadedFile is an input after ingestion and header location.
type loadedFile struct {
	input  Input
	role   models.FileRole
	source string
	table  *models.StructuredTable
}

// Check cross-references the target list with the certificate database.
// With pinned roles first is the target list and second the database; with
// auto roles the classifier decides. Any file-level failure aborts the run.
func Check(first, second Input, opts Options) (*models.Report, error) {
	report := &models.Report{RunID: uuid.NewString()}
	log := opts.logger().WithField("run_id", report.RunID)

	firstRole, secondRole := models.RoleTarget, models.RoleDatabase
	if opts.Roles == RolesAuto {
		firstRole, secondRole = "", ""
	}

	a, err := load(first, firstRole, opts, log)
	if err != nil {
		return nil, err
	}
	b, err := load(second, secondRole, opts, log)
	if err != nil {
		return nil, err
	}

	if opts.Roles == RolesAuto {
		a.role, b.role = parser.ClassifyPair(a.table, b.table)
		if a.role == models.RoleDatabase {
			a, b = b, a
		}
		log.WithFields(logrus.Fields{
			"target":   a.input.Name,
			"database": b.input.Name,
		}).Info("file roles detected")
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("roles detected automatically: %q is the target list, %q the certificate database", a.input.Name, b.input.Name))
	}
	target, database := a, b

	targetCols, err := resolveColumns(target, parser.ProductName, parser.Manufacturer)
	if err != nil {
		return nil, err
	}
	databaseCols, err := resolveColumns(database, parser.CertifiedProductsList, parser.Manufacturer, parser.ExpiryDate)
	if err != nil {
		return nil, err
	}

	ix, stats := matcher.BuildIndex(database.table, matcher.Columns{
		Manufacturer: databaseCols[parser.Manufacturer],
		Products:     databaseCols[parser.CertifiedProductsList],
		Expiry:       databaseCols[parser.ExpiryDate],
	}, matcher.IndexOptions{
		Now:          opts.now(),
		NoDatePolicy: opts.noDatePolicy(),
		Logger:       log,
	})

	targets := make([]matcher.Target, 0, target.table.Len())
	for r := range target.table.Rows {
		name, _ := target.table.Cell(r, targetCols[parser.ProductName])
		manufacturer := ""
		if label := targetCols[parser.Manufacturer]; label != "" {
			manufacturer, _ = target.table.Cell(r, label)
		}
		targets = append(targets, matcher.Target{
			Product:      strings.TrimSpace(name),
			Manufacturer: strings.TrimSpace(manufacturer),
		})
	}

	report.Verdicts = matcher.MatchAll(targets, ix, opts.Workers)
	report.Summary = matcher.Summarize(report.Verdicts)
	report.Index = stats
	report.Target = summarize(target, targetCols)
	report.Database = summarize(database, databaseCols)

	for _, f := range []*loadedFile{target, database} {
		if f.table.BlindMode() {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s file %q: header row not found, columns addressed by position", f.role, f.input.Name))
		}
	}
	if databaseCols[parser.ExpiryDate] == "" {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("database file %q: no expiry date column, certificate validity unknown", database.input.Name))
	}
	if stats.DroppedRows > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("database file %q: %d malformed rows dropped", database.input.Name, stats.DroppedRows))
	}

	log.WithFields(logrus.Fields{
		"processed": report.Summary.Processed,
		"ok":        report.Summary.OK,
		"expired":   report.Summary.Expired,
		"not_found": report.Summary.NotFound,
	}).Info("cross-check finished")
	return report, nil
}

// load reads one input and locates its header. An empty role means the role
// is not known yet and both header keyword sets are used.
func load(in Input, role models.FileRole, opts Options, log logrus.FieldLogger) (*loadedFile, error) {
	raw, source, err := parser.ReadTable(in.Name, in.Data)
	if errors.Is(err, ErrUnsupportedFormat) {
		return nil, NewFileError(in.Name, role, err)
	}
	if err != nil {
		return nil, NewFileError(in.Name, role, fmt.Errorf("%w: %v", ErrUnreadableFile, err))
	}

	table := parser.Structure(raw, parser.HeaderKeywords(role), opts.HeaderScanRows)
	entry := log.WithFields(logrus.Fields{
		"file":       in.Name,
		"source":     source,
		"rows":       table.Len(),
		"header_row": table.HeaderRow,
	})
	if table.BlindMode() {
		entry.Warn("header row not found, using positional columns")
	} else {
		entry.Info("table loaded")
	}

	return &loadedFile{input: in, role: role, source: source, table: table}, nil
}

// resolveColumns resolves the given column roles of a file. Unresolved
// optional roles map to "".
func resolveColumns(f *loadedFile, roles ...parser.ColumnRole) (map[parser.ColumnRole]string, error) {
	cols := make(map[parser.ColumnRole]string, len(roles))
	for _, role := range roles {
		spec, ok := parser.ColumnSpecFor(f.role, role)
		if !ok {
			continue
		}
		label, ok := parser.ResolveColumn(f.table, spec)
		if !ok && spec.Required {
			return nil, NewFileError(f.input.Name, f.role, &MissingColumnError{
				Role:    role,
				Columns: append([]string(nil), f.table.Labels...),
			})
		}
		cols[role] = label
	}
	return cols, nil
}

func summarize(f *loadedFile, cols map[parser.ColumnRole]string) models.FileSummary {
	resolved := make(map[string]string, len(cols))
	for role, label := range cols {
		if label != "" {
			resolved[role.String()] = label
		}
	}
	return models.FileSummary{
		File:      f.input.Name,
		Role:      f.role,
		Source:    f.source,
		HeaderRow: f.table.HeaderRow,
		BlindMode: f.table.BlindMode(),
		Labels:    f.table.Labels,
		Columns:   resolved,
		Rows:      f.table.Len(),
	}
}
