package filestore

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/storage"
)

type FileStore struct {
	Root string
}

func New(root string) (fs storage.Storage, err error) {
	fs = &FileStore{
		Root: root,
	}

	info, err := os.Stat(root)
	if err == nil {
		if !info.IsDir() {
			log.Error().Msg("not a directory")
			err = storage.ErrNotDir
		}
		return
	}

	if errors.Is(err, os.ErrNotExist) {
		err = os.MkdirAll(root, os.ModePerm)
	}

	if err != nil {
		log.Error().Err(err).Msg("internal error when setting up storage")
		err = storage.ErrInternal
	}

	return
}

// resolve maps a slash separated path inside the store to a filesystem path.
func (s *FileStore) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if !filepath.IsLocal(clean) {
		return "", storage.ErrInvalidPath
	}
	return filepath.Join(s.Root, clean), nil
}

func (s *FileStore) Open(path string) (content []byte, err error) {
	path, err = s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = storage.ErrNotExist
		} else {
			log.Error().Err(err).Msg("failed to open file at path " + path)
			err = storage.ErrInternal
		}
		return
	}
	defer f.Close()

	content, err = io.ReadAll(f)
	if err != nil {
		log.Error().Err(err).Msg("failed to read file " + path)
		err = storage.ErrInternal
	}
	return
}

func (s *FileStore) Delete(path string) error {
	path, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotExist
		}
		log.Error().Err(err).Msg("file deletion error")
		return storage.ErrInternal
	}

	return nil
}

// Create writes the file through a temporary sibling that is renamed into place, so readers never observe a
// partial upload.
func (s *FileStore) Create(content io.Reader, path string) error {
	path, err := s.resolve(path)
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		return storage.ErrAlreadyExists
	}
	if !os.IsNotExist(err) {
		log.Error().Err(err).Msg("unknown filesystem error")
		return storage.ErrInternal
	}

	if dir := filepath.Dir(path); dir != s.Root {
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			log.Error().Err(err).Msg("failed to create directory " + dir)
			return storage.ErrCreate
		}
	}

	if err = atomic.WriteFile(path, content); err != nil {
		log.Error().Err(err).Msg("failed to write file with path " + path)
		return storage.ErrCreate
	}

	return nil
}
