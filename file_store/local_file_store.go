package file_store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// LocalFileStore keeps attachments on local disk. Used for development and
// tests where no bucket is configured.
type LocalFileStore struct {
	dir       string
	urlPrefix string
}

func NewLocalFileStore(dir, urlPrefix string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "fail to create local file store dir")
	}
	return &LocalFileStore{dir: dir, urlPrefix: urlPrefix}, nil
}

func (s *LocalFileStore) Store(data []byte, fileName string) (string, error) {
	key, err := KeyFromContent(data, fileName)
	if err != nil {
		return "", err
	}
	target := filepath.Join(s.dir, key)
	if _, err := os.Stat(target); err == nil {
		return key, nil
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", errors.Wrap(err, "fail to write attachment")
	}
	return key, nil
}

func (s *LocalFileStore) GetUrlFromKey(key string) string {
	return s.urlPrefix + key
}

func (s *LocalFileStore) CleanUp() {
	os.RemoveAll(s.dir)
}
