// Package text loads documents and splits them into words.
package text

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrInputUnavailable is returned when neither a file nor piped data is given.
var ErrInputUnavailable = errors.New("no input provided")

// ErrEmptyDocument is returned when a document contains no words.
var ErrEmptyDocument = errors.New("document contains no words")

// Usage describes the accepted ways of providing text.
const Usage = "Usage: tuider <file.md>  or  cat file.txt | tuider"

// StdinSource labels documents read from standard input.
const StdinSource = "stdin"

// Document is loaded text ready for playback.
type Document struct {
	Source string
	Words  []string
}

// Load reads the document named by args, or stdin when args is empty and
// stdin is not a terminal. Markdown files are stripped to plain text.
func Load(args []string, stdin io.Reader, stdinIsTTY bool) (Document, error) {
	var (
		raw        string
		source     string
		isMarkdown bool
	)
	switch {
	case len(args) > 0:
		data, err := readFile(args[0])
		if err != nil {
			return Document{}, err
		}
		raw = data
		source = args[0]
		isMarkdown = IsMarkdownPath(args[0])
	case !stdinIsTTY && stdin != nil:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return Document{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = string(data)
		source = StdinSource
	default:
		return Document{}, fmt.Errorf("%w\n%s", ErrInputUnavailable, Usage)
	}

	if isMarkdown {
		raw = StripMarkdown([]byte(raw))
	}
	words := Tokenize(raw)
	if len(words) == 0 {
		return Document{}, fmt.Errorf("%s: %w", source, ErrEmptyDocument)
	}
	return Document{Source: source, Words: words}, nil
}

// IsMarkdownPath reports whether path has a Markdown extension.
func IsMarkdownPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// Tokenize splits text on whitespace, dropping empty fields.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

func readFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", path)
		}
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
