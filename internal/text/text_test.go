package text

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleMarkdown = "---\ntitle: x\n---\n# Hello *world*\n\nSee [the docs](http://example.com).\n\n![alt text](img.png)\n\n<div>hidden</div>\n\n- one\n- two\n\n```\ncode here\n```\n\nTom &amp; Jerry\n"

func TestStripMarkdown(t *testing.T) {
	got := StripMarkdown([]byte(sampleMarkdown))
	want := "Hello world See the docs. one two code here Tom & Jerry"
	if got != want {
		t.Fatalf("StripMarkdown:\n got %q\nwant %q", got, want)
	}
}

func TestStripMarkdownSeparatesBlocks(t *testing.T) {
	got := StripMarkdown([]byte("first\n\nsecond\nthird"))
	if got != "first second third" {
		t.Fatalf("unexpected block joining: %q", got)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("  The quick\tbrown\n\nfox.  ")
	want := []string{"The", "quick", "brown", "fox."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %q, want %q", got, want)
	}
}

func TestLoadMarkdownFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("# Title\n\nSome **bold** text."), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := Load([]string{path}, nil, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"Title", "Some", "bold", "text."}
	if !reflect.DeepEqual(doc.Words, want) {
		t.Fatalf("words = %q, want %q", doc.Words, want)
	}
	if doc.Source != path {
		t.Fatalf("unexpected source %q", doc.Source)
	}
}

func TestLoadPlainFileKeepsMarkup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("# not a heading"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := Load([]string{path}, nil, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Words[0] != "#" {
		t.Fatalf("plain text should not be stripped: %q", doc.Words)
	}
}

func TestLoadStdin(t *testing.T) {
	doc, err := Load(nil, strings.NewReader("piped words here"), false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Source != StdinSource || len(doc.Words) != 3 {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(nil, strings.NewReader("ignored"), true); !errors.Is(err, ErrInputUnavailable) {
		t.Fatalf("expected ErrInputUnavailable, got %v", err)
	}
	if _, err := Load(nil, strings.NewReader(" \n\t "), false); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	_, err := Load([]string{filepath.Join(t.TempDir(), "missing.md")}, nil, true)
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Fatalf("expected file not found, got %v", err)
	}
}

func TestIsMarkdownPath(t *testing.T) {
	for path, want := range map[string]bool{
		"a.md":       true,
		"b.MARKDOWN": true,
		"c.txt":      false,
		"README":     false,
	} {
		if got := IsMarkdownPath(path); got != want {
			t.Fatalf("IsMarkdownPath(%q) = %v", path, got)
		}
	}
}
