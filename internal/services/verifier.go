package services

import (
	"fmt"
	"io"
	"strings"

	"ecomingest/internal/repositories"
)

// TableCount is the number of rows found in one table.
type TableCount struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}

// Verifier counts the rows of each loaded table.
type Verifier struct {
	repo   repositories.StatsRepository
	tables []string
}

// NewVerifier creates a verifier over tables, reported in the given order.
func NewVerifier(repo repositories.StatsRepository, tables []string) *Verifier {
	return &Verifier{
		repo:   repo,
		tables: tables,
	}
}

// Verify counts every table. The first store error aborts the count.
func (v *Verifier) Verify() ([]TableCount, error) {
	counts := make([]TableCount, 0, len(v.tables))
	for _, table := range v.tables {
		count, err := v.repo.CountRows(table)
		if err != nil {
			return nil, err
		}
		counts = append(counts, TableCount{Table: table, Count: count})
	}
	return counts, nil
}

// WriteReport prints counts as a fixed-width table framed by banners.
func WriteReport(w io.Writer, counts []TableCount) {
	fmt.Fprintf(w, "\n%s\n", banner)
	fmt.Fprintln(w, "Data Verification:")
	fmt.Fprintln(w, banner)
	for _, c := range counts {
		fmt.Fprintf(w, "%-15s : %4d records\n", c.Table, c.Count)
	}
	fmt.Fprintln(w, banner)
}

var (
	banner    = strings.Repeat("=", 50)
	separator = strings.Repeat("-", 50)
)
