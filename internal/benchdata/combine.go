package benchdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Combine concatenates tables into one. The first table's header wins; rows of
// later tables are rearranged into it by column name. Every table must carry the
// same set of columns.
func Combine(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("nothing to combine: %w", ErrEmptyTable)
	}

	first := tables[0]
	out := &Table{
		Source:  "combined",
		Columns: append([]string(nil), first.Columns...),
	}

	for _, t := range tables {
		if !sameColumnSet(first.Columns, t.Columns) {
			return nil, fmt.Errorf("%w: %s has columns %v, expected %v",
				ErrInputMalformed, t.Source, t.Columns, first.Columns)
		}

		mapping := make([]int, len(out.Columns))
		for i, name := range out.Columns {
			mapping[i] = t.ColumnIndex(name)
		}

		for _, r := range t.Records {
			raw := make([]string, len(out.Columns))
			for i, src := range mapping {
				raw[i] = r.Cell(src)
			}
			rec := r
			rec.raw = raw
			out.Records = append(out.Records, rec)
		}
	}

	if len(out.Records) == 0 {
		return nil, fmt.Errorf("combined: %w", ErrEmptyTable)
	}

	out.fixOrder()
	return out, nil
}

// WriteCSV writes the header and the verbatim cells of every record.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	for _, r := range t.Records {
		if err := writer.Write(r.raw); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func sameColumnSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	return strings.Join(as, "\x00") == strings.Join(bs, "\x00")
}
