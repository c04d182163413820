package metadata

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// Accepted metadata filenames per episode folder, in preference order.
// "mark.txt" is a historical name some older folders still use.
var metaFileNames = []string{"meta.md.txt", "mark.txt", "meta.txt"}

var (
	englishHeadingNumberRe = regexp.MustCompile(`(?im)^#\s+Episode\s+(\d+):`)
	hebrewHeadingNumberRe  = regexp.MustCompile(`(?im)^#\s+פרק\s+(\d+):`)
	folderNumberRe         = regexp.MustCompile(`(?i)ep\s*(\d+)`)
)

// Store reads hand-authored episode metadata from a directory tree with one
// subdirectory per episode.
type Store struct {
	dir    string
	parser *Parser
}

func NewStore(dir string) *Store {
	return &Store{
		dir:    dir,
		parser: NewParser(),
	}
}

// LoadAll parses every episode folder that contains a readable metadata
// file. Folders without one are skipped, not errors; a file that matches no
// fields still yields a (mostly empty) record.
func (s *Store) LoadAll() ([]Meta, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read episodes directory %s: %w", s.dir, err)
	}

	metas := make([]Meta, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		content, ok := s.readMetaFile(entry.Name())
		if !ok {
			slog.Debug("No metadata file found, skipping folder", "folder", entry.Name())
			continue
		}

		meta := s.parser.Run(content, resolveEpisodeNumber(content, entry.Name()))
		meta.FolderName = entry.Name()
		metas = append(metas, meta)
	}

	return metas, nil
}

// LoadOne returns the metadata record whose resolved episode number matches.
func (s *Store) LoadOne(episodeNumber int) (*Meta, error) {
	metas, err := s.LoadAll()
	if err != nil {
		return nil, err
	}

	for i := range metas {
		if metas[i].Number == episodeNumber {
			return &metas[i], nil
		}
	}
	return nil, nil
}

func (s *Store) readMetaFile(folder string) (string, bool) {
	for _, name := range metaFileNames {
		data, err := os.ReadFile(filepath.Join(s.dir, folder, name))
		if err == nil {
			return string(data), true
		}
	}
	return "", false
}

// resolveEpisodeNumber prefers the explicit number in the file's heading
// (English, then Hebrew) over digits embedded in the folder name. The heading
// is authoritative because folder names have drifted from the numbering.
func resolveEpisodeNumber(content, folder string) int {
	if m := englishHeadingNumberRe.FindStringSubmatch(content); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := hebrewHeadingNumberRe.FindStringSubmatch(content); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := folderNumberRe.FindStringSubmatch(folder); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 0
}
