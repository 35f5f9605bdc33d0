package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/rootsroads/internal/domain/contributor"
)

const byteOrderMark = "\ufeff"

// Tokenize splits CSV text into its header and rows keyed by header label.
// Labels are kept verbatim (trailing spaces included) because the
// normalizer's column variants depend on them. Short rows are padded with "",
// and when a label repeats the first non-empty value is kept.
func Tokenize(text string) ([]string, []contributor.Row, error) {
	const op = "sheet.tokenize"

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, byteOrderMark)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%s: %w: missing header row", op, ErrParse)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %w", op, ErrParse, err)
	}

	var rows []contributor.Row
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w: %w", op, ErrParse, err)
		}
		if blank(record) {
			continue
		}
		row := make(contributor.Row, len(header))
		for i, label := range header {
			var v string
			if i < len(record) {
				v = record[i]
			}
			if prev, ok := row[label]; ok && strings.TrimSpace(prev) != "" {
				continue
			}
			row[label] = v
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
