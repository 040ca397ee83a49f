package wordlist

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/renameio/v2"
)

// BackupStampLayout formats the UTC timestamp embedded in backup file names.
const BackupStampLayout = "20060102T150405Z"

// Line is one raw line of a word-list file with its zero-based position.
// Order is significant; the writer emits kept lines exactly as loaded.
type Line struct {
	Index int
	Text  string
}

// Blank reports whether the line is empty or whitespace-only.
// Blank lines are preserved in output but never used as match keys.
func (l Line) Blank() bool {
	return strings.TrimSpace(l.Text) == ""
}

// Load reads a line-oriented text file into ordered lines.
// Invalid UTF-8 byte sequences are replaced with U+FFFD instead of failing
// the whole read.
func Load(path string) ([]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Parse splits file content on "\n", tolerating CRLF endings. The implicit
// final line terminator does not produce a trailing empty line; a genuine
// blank line before EOF does.
func Parse(content string) []Line {
	content = strings.ToValidUTF8(content, "�")
	if content == "" {
		return nil
	}

	raw := strings.Split(content, "\n")
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	lines := make([]Line, len(raw))
	for i, text := range raw {
		lines[i] = Line{Index: i, Text: strings.TrimSuffix(text, "\r")}
	}
	return lines
}

// Contents serializes lines with single newline separators. A trailing
// newline is added only when the sequence is non-empty.
func Contents(lines []Line) string {
	if len(lines) == 0 {
		return ""
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Write replaces the file at path with the serialized lines.
// The content lands in a temp file that is fsynced before an atomic
// rename, so the target is never observed partially written. Existing
// file permissions are preserved; new files are created 0644.
func Write(path string, lines []Line) error {
	pending, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", path, err)
	}
	defer func() {
		// Removes the temp file when the replace never happened.
		_ = pending.Cleanup()
	}()

	if _, err := pending.WriteString(Contents(lines)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Backup writes a snapshot of lines to a sibling file named
// <path>.bak.<timestamp> and returns that path. The stamp is UTC so
// backup names sort chronologically regardless of host timezone.
func Backup(path string, lines []Line, now time.Time) (string, error) {
	backupPath := path + ".bak." + now.UTC().Format(BackupStampLayout)
	if err := renameio.WriteFile(backupPath, []byte(Contents(lines)), 0o644); err != nil {
		return "", fmt.Errorf("write backup %s: %w", backupPath, err)
	}
	return backupPath, nil
}
