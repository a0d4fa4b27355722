package filestore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/storage"
)

var store storage.Storage
var path string

func TestMain(m *testing.M) {
	var err error
	path, err = os.MkdirTemp(".", "tempdir")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup tests")
		return
	}

	store = &FileStore{
		Root: path,
	}

	code := m.Run()
	if err = os.RemoveAll(path); err != nil {
		log.Fatal().Err(err).Msg("removal of temporary directory failed")
	}
	os.Exit(code)
}

func TestCreate(t *testing.T) {
	cases := []struct {
		Casename string
		Path     string
		Content  string
		Err      error
	}{
		{"create file", "f1.txt", "hello, world!", nil},
		{"create duplicate file", "f1.txt", "hello, world!", storage.ErrAlreadyExists},
		{"create in blog directory", "default/abc.png", "png bytes", nil},
		{"escape root", "../outside.txt", "nope", storage.ErrInvalidPath},
	}

	for _, c := range cases {
		t.Run(c.Casename, func(t *testing.T) {
			err := store.Create(strings.NewReader(c.Content), c.Path)
			if err != nil {
				if c.Err == nil {
					t.Error("unexpected error:", err)
				} else if !errors.Is(err, c.Err) {
					t.Errorf("unexpected error type.\nexpected: %s\ngot: %s\n", c.Err, err)
				}
				return
			}
			if c.Err != nil {
				t.Fatalf("expected error %s", c.Err)
			}

			f, err := os.Open(filepath.Join(path, filepath.FromSlash(c.Path)))
			if err != nil {
				t.Errorf("failed to open file: %s", err)
				return
			}
			defer f.Close()

			content, err := io.ReadAll(f)
			if err != nil {
				t.Errorf("unexpected error: %s", err)
			}

			if string(content) != c.Content {
				t.Errorf("expected \"%s\", got \"%s\"", c.Content, content)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	if err := store.Create(strings.NewReader("readable"), "open/me.txt"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	content, err := store.Open("open/me.txt")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if string(content) != "readable" {
		t.Errorf("expected \"readable\", got %q", content)
	}

	if _, err = store.Open("open/missing.txt"); !errors.Is(err, storage.ErrNotExist) {
		t.Errorf("expected %s, got %v", storage.ErrNotExist, err)
	}
}

func TestDelete(t *testing.T) {
	name := "moribundus"
	newpath := filepath.Join(path, name)
	f, err := os.Create(newpath)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	f.Close()

	err = store.Delete(name)
	if err != nil {
		t.Errorf("unexpected error: %s", err)
	}

	name = "none"
	err = store.Delete(name)
	if err == nil || !errors.Is(err, storage.ErrNotExist) {
		t.Errorf("unexpected err: %s\nexpected \"%s\"", err, storage.ErrNotExist)
	}
}
