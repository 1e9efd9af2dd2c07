package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// convertRows writes header unchanged, then converts and writes every data
// row as it is read. Rows are numbered from 1 with the header as row 1.
func convertRows(ctx context.Context, reader *csv.Reader, writer *csv.Writer, header []string, sel columnSelector, m method) (rows int, converted int, err error) {
	err = writer.Write(header)
	if err != nil {
		return 0, 0, fmt.Errorf("write csv error: %w", err)
	}

	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, converted, fmt.Errorf("read csv error (row=%d): %w", rowNum, err)
		}

		rows++
		out, n := convertRecord(CtxAddKvs(ctx, "row", rowNum), record, sel, m)
		converted += n

		err = writer.Write(out)
		if err != nil {
			return rows, converted, fmt.Errorf("write csv error (row=%d): %w", rowNum, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return rows, converted, fmt.Errorf("flush csv error: %w", err)
	}

	LoggerOf(ctx).Debug("rows converted", zap.Int("rows", rows), zap.Int("converted", converted))
	return rows, converted, nil
}

// convertRecord returns a converted copy of record and the number of cells
// converted. A cell that fails to decode keeps its text.
func convertRecord(ctx context.Context, record []string, sel columnSelector, m method) ([]string, int) {
	out := make([]string, len(record))
	copy(out, record)

	n := 0
	for col, cell := range record {
		if !sel.selects(col, cell) {
			continue
		}

		v, err := m.decode(cell)
		if err != nil {
			LoggerOf(ctx).Warn("convert cell error, original value kept", zap.Int("column", col+1), zap.Error(err))
			continue
		}

		out[col] = formatFloat(v)
		n++
	}
	return out, n
}
