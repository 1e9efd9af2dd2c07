package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	errInputNotFound = errors.New("input file not found")
	errEmptyInput    = errors.New("input file is empty")
	errSameFile      = errors.New("output file is the input file")
)

func openReadFile(file string) (*os.File, error) {
	f, err := os.Open(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", errInputNotFound, file)
	}
	if err != nil {
		return nil, fmt.Errorf("open input file error, file:%s, error: %w", file, err)
	}
	return f, nil
}

func openWriteFile(file string) (*os.File, error) {
	f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open output file error, file:%s, error: %w", file, err)
	}
	return f, nil
}

// defaultOutputPath inserts "_converted" before the extension of input, in the
// same directory. A dot file like ".data" has no extension.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	if ext == filepath.Base(input) {
		ext = ""
	}
	return strings.TrimSuffix(input, ext) + "_converted" + ext
}

// isSameFile tells whether path names the already opened file in. A path that
// does not exist yet is never the same file.
func isSameFile(in *os.File, path string) (bool, error) {
	outInfo, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	inInfo, err := in.Stat()
	if err != nil {
		return false, err
	}
	return os.SameFile(inInfo, outInfo), nil
}
