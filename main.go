package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var cli struct {
	Input   string `arg:"" name:"input_file" help:"input csv file"`
	Output  string `name:"output" short:"o" help:"output file, if not set, \"_converted\" is inserted before the extension of the input file"`
	Method  string `name:"method" short:"m" help:"conversion method: ieee754 reads the hex bytes as a big-endian IEEE-754 float (4 bytes single, 8 bytes double, others cut or padded to 4 bytes), direct reads the hex digits as an integer" enum:"ieee754,direct" default:"ieee754"`
	Columns string `name:"columns" short:"c" help:"comma separated column names or 0-based indices to convert, the first column is never converted. if not set, every cell that looks like hex is converted"`
	Format  string `name:"separator" short:"s" help:"file type: csv fields separated by comma, tsv fields separated by tab" enum:"csv,tsv" default:"csv"`
	CRLF    bool   `name:"crlf" help:"end output lines with CRLF instead of LF"`
	Verbose int    `name:"verbose" short:"v" type:"counter"`
}

type options struct {
	Input   string
	Output  string
	Method  method
	Columns []columnRef
	Comma   rune
	CRLF    bool
}

type summary struct {
	Input     string
	Output    string
	Rows      int
	Converted int
	Method    method
}

func main() {
	kong.Parse(&cli, kong.Description("Convert hex strings in csv files to floating point values"))
	prepareLogLevel()
	log.SetFlags(0)

	opts, err := optionsFromCli()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	LoggerOf(context.Background()).Info("config", zap.Any("config", cli))

	s, err := run(context.Background(), opts)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	printSummary(os.Stdout, s)
}

func optionsFromCli() (options, error) {
	m, err := parseMethod(cli.Method)
	if err != nil {
		return options{}, err
	}

	var comma rune
	switch cli.Format {
	case "csv":
		comma = ','
	case "tsv":
		comma = '\t'
	default:
		return options{}, fmt.Errorf("unsupported format: %q", cli.Format)
	}

	return options{
		Input:   cli.Input,
		Output:  cli.Output,
		Method:  m,
		Columns: parseColumnRefs(cli.Columns),
		Comma:   comma,
		CRLF:    cli.CRLF,
	}, nil
}

func run(ctx context.Context, opts options) (*summary, error) {
	ctx = CtxAddKvs(ctx, "input", opts.Input)

	inFile, err := openReadFile(opts.Input)
	if err != nil {
		return nil, err
	}
	defer inFile.Close()

	reader := csv.NewReader(inFile)
	reader.Comma = opts.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", errEmptyInput, opts.Input)
	}
	if err != nil {
		return nil, fmt.Errorf("read title error: %w", err)
	}

	sel, warnings := resolveColumns(opts.Columns, header)
	for _, w := range multierr.Errors(warnings) {
		LoggerOf(ctx).Warn(w.Error())
	}
	if sel.auto {
		LoggerOf(ctx).Info("auto-detect hex columns")
	} else {
		LoggerOf(ctx).Info("convert columns", zap.Ints("columns", sel.indices()))
	}

	output := opts.Output
	if output == "" {
		output = defaultOutputPath(opts.Input)
	}
	same, err := isSameFile(inFile, output)
	if err != nil {
		return nil, fmt.Errorf("stat output file error, file:%s, error: %w", output, err)
	}
	if same {
		return nil, fmt.Errorf("%w: %s", errSameFile, output)
	}

	outFile, err := openWriteFile(output)
	if err != nil {
		return nil, err
	}
	defer outFile.Close()

	writer := csv.NewWriter(outFile)
	writer.Comma = opts.Comma
	writer.UseCRLF = opts.CRLF

	ctx = CtxAddKvs(ctx, "output", output)
	rows, converted, err := convertRows(ctx, reader, writer, header, sel, opts.Method)
	if err != nil {
		return nil, err
	}

	err = outFile.Close()
	if err != nil {
		return nil, fmt.Errorf("close output file error, file:%s, error: %w", output, err)
	}

	return &summary{
		Input:     opts.Input,
		Output:    output,
		Rows:      rows,
		Converted: converted,
		Method:    opts.Method,
	}, nil
}

func printSummary(w io.Writer, s *summary) {
	fmt.Fprintln(w, "Conversion complete!")
	fmt.Fprintf(w, "Input file: %s\n", s.Input)
	fmt.Fprintf(w, "Output file: %s\n", s.Output)
	fmt.Fprintf(w, "Total data rows processed: %d\n", s.Rows)
	fmt.Fprintf(w, "Values converted: %d\n", s.Converted)
	fmt.Fprintf(w, "Conversion method: %s\n", s.Method)
}

func prepareLogLevel() {
	switch {
	case cli.Verbose >= 2:
		SetLevel(zapcore.DebugLevel)
	case cli.Verbose >= 1:
		SetLevel(zapcore.InfoLevel)
	default:
		SetLevel(zapcore.WarnLevel)
	}
}
