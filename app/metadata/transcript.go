package metadata

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Accepted transcript filenames, in preference order. Transcripts are by far
// the largest payload per episode and are loaded only for detail views.
var transcriptFileNames = []string{"transcript.md", "transcript.txt"}

// LoadTranscript returns the transcript body for an episode folder, trying
// each accepted filename in order. A UTF-8 byte-order mark left behind by
// authoring tools is stripped. Returns false when no candidate is readable
// or the content is empty; never an error.
func (s *Store) LoadTranscript(folder string) (string, bool) {
	for _, name := range transcriptFileNames {
		data, err := os.ReadFile(filepath.Join(s.dir, folder, name))
		if err != nil {
			continue
		}

		content := strings.TrimPrefix(string(data), "\uFEFF")
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		return content, true
	}

	slog.Debug("No transcript file found", "folder", folder)
	return "", false
}
