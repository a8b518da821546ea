// Package output persists banners under sequential, collision-free filenames.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultDir is the output directory used when OUTPUT_DIR is not set.
	DefaultDir = "images"

	filePrefix = "img"
	fileExt    = ".png"
)

// ErrWrite indicates the banner could not be written to disk.
var ErrWrite = errors.New("cannot write image file")

var namePattern = regexp.MustCompile(`^` + filePrefix + `(\d+)` + regexp.QuoteMeta(fileExt) + `$`)

// Store writes banners into a directory as img1.png, img2.png, … without
// ever overwriting an existing file.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The directory is created on the
// first probe or save, not here.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

// Dir returns the output directory path.
func (s *Store) Dir() string {
	return s.dir
}

// NextFilename scans the directory for existing img<number>.png files and
// returns the name following the highest index found. Gaps left by deleted
// files are not reused; a run only has to avoid collisions, not fill holes.
func (s *Store) NextFilename() (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: failed to create directory %s: %v", ErrWrite, s.dir, err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read directory %s: %v", ErrWrite, s.dir, err)
	}

	maxIndex := 0
	for _, entry := range entries {
		m := namePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		if idx, err := strconv.Atoi(m[1]); err == nil && idx > maxIndex {
			maxIndex = idx
		}
	}

	return fmt.Sprintf("%s%d%s", filePrefix, maxIndex+1, fileExt), nil
}

// Save writes data under the next sequential filename and returns the chosen
// name. The file is created with O_EXCL, so even a stale probe (or a
// concurrent writer) cannot overwrite an existing banner; on collision the
// probe is repeated.
func (s *Store) Save(data []byte) (string, error) {
	for {
		name, err := s.NextFilename()
		if err != nil {
			return "", err
		}

		path := filepath.Join(s.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			log.Warn().Str("path", path).Msg("Filename taken between probe and create, re-probing")
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrWrite, err)
		}

		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path) // do not leave a partial image behind
			return "", fmt.Errorf("%w: %v", ErrWrite, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("%w: %v", ErrWrite, err)
		}

		log.Info().
			Str("path", path).
			Int("size_bytes", len(data)).
			Msg("Image saved")
		return name, nil
	}
}
