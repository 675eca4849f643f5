package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAppendLineGoesToReplacedLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := Replace(zap.New(core))
	defer restore()

	AppendLine("renderer failed to load")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "renderer failed to load" {
		t.Errorf("Unexpected message %q", entries[0].Message)
	}
}

func TestReplaceRestoresPrevious(t *testing.T) {
	orig := Log
	first := zap.New(nil)
	restoreFirst := Replace(first)
	second := zap.NewNop()
	restoreSecond := Replace(second)

	if Log != second {
		t.Fatalf("Expected the latest logger to be active")
	}
	restoreSecond()
	if Log != first {
		t.Errorf("Expected restore to bring back the previous logger")
	}
	restoreFirst()
	if Log != orig {
		t.Errorf("Expected the original logger after both restores")
	}
}

func TestInitWritesStartMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logfile")
	prev := Log
	defer Replace(prev)

	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	AppendLine("second line")
	Sync()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	defer f.Close()

	var msgs []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("line is not JSON: %q", sc.Text())
		}
		msgs = append(msgs, entry["msg"].(string))
	}

	if len(msgs) != 2 || msgs[0] != "logging started" || msgs[1] != "second line" {
		t.Errorf("Unexpected log contents: %v", msgs)
	}
}
