package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// GameBoyDat is a small Logiqx dat: one title in two regions and a demo.
const GameBoyDat = `<?xml version="1.0"?>
<datafile>
	<header>
		<name>Nintendo - Game Boy</name>
		<version>20240101</version>
	</header>
	<game name="Game X (USA)">
		<rom name="Game X (USA).gb" size="1" crc="00000001"/>
	</game>
	<game name="Game X (Europe)">
		<rom name="Game X (Europe).gb" size="1" crc="00000002"/>
	</game>
	<game name="Game Y (Japan) (Demo)">
		<rom name="Game Y (Japan) (Demo).gb" size="1" crc="00000003"/>
	</game>
</datafile>
`

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteDat writes a dat named name into dir and returns its path.
func WriteDat(t testing.TB, dir, name, content string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, name), content)
}
