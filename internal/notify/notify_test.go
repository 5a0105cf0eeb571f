package notify

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestKeyPromptPrintsMessageAndConsumesOneByte(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("xy")
	var out bytes.Buffer

	if err := NewKeyPrompt(in, &out).Notify(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != DefaultMessage+"\n" {
		t.Fatalf("unexpected prompt %q", out.String())
	}
	if in.Len() != 1 {
		t.Fatalf("expected exactly one byte to be consumed, %d left", in.Len())
	}
}

func TestKeyPromptToleratesEOF(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := NewKeyPrompt(strings.NewReader(""), &out).Notify(); err != nil {
		t.Fatalf("expected EOF to release the prompt, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestKeyPromptReportsReadErrors(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := NewKeyPrompt(failingReader{}, &out).Notify(); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestKeyPromptWithRegularFile(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "key")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString("k"); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("seek temp file: %v", err)
	}

	if IsTerminal(f) {
		t.Fatalf("expected regular file not to be a terminal")
	}
	var out bytes.Buffer
	if err := NewKeyPrompt(f, &out).Notify(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFuncAndNop(t *testing.T) {
	t.Parallel()

	calls := 0
	var n Notifier = Func(func() error {
		calls++
		return nil
	})
	if err := n.Notify(); err != nil || calls != 1 {
		t.Fatalf("expected Func to be invoked once, calls=%d err=%v", calls, err)
	}
	if err := (Nop{}).Notify(); err != nil {
		t.Fatalf("unexpected error from Nop: %v", err)
	}
	if IsTerminal(nil) {
		t.Fatalf("expected nil file not to be a terminal")
	}
}
