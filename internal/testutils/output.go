// Package testutils holds helpers shared by package tests.
package testutils

import (
	"testing"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// Case is one input/expected/actual row.
type Case struct {
	Input    string
	Expected string
	Actual   string
}

// Pass reports whether the row matched.
func (c Case) Pass() bool {
	return c.Expected == c.Actual
}

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// PrintTestTable logs cases as a table and fails t for every row whose
// actual value differs from the expected one.
func PrintTestTable(t testing.TB, cases []Case) {
	t.Helper()

	rows := make([][]string, 0, len(cases))
	for _, c := range cases {
		mark := "ok"
		if !c.Pass() {
			mark = "FAIL"
		}
		rows = append(rows, []string{mark, c.Input, c.Expected, c.Actual})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "Input", "Expected", "Returned").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headStyle
			}
			if col == 0 || col == 3 {
				if cases[row].Pass() {
					return cellStyle.Inherit(passStyle)
				}
				return cellStyle.Inherit(failStyle)
			}
			return cellStyle
		})
	t.Log("\n" + tbl.String())

	for _, c := range cases {
		if !c.Pass() {
			t.Errorf("input %q: expected %q, got %q", c.Input, c.Expected, c.Actual)
		}
	}
}
