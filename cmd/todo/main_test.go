package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func runMain(t *testing.T, input string, args ...string) (string, string, int) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	var out, errOut bytes.Buffer
	code := run(append([]string{"-theme", "mono"}, args...), strings.NewReader(input), &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		input    string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{name: "loop only", input: "add Buy milk\n", wantCode: 0, wantOut: "Created: [1] Buy milk"},
		{name: "unknown id", args: []string{"done", "42"}, wantCode: 1, wantErr: "no task with id 42"},
		{name: "usage error", args: []string{"done", "x"}, wantCode: 2, wantErr: "done: not a number: x"},
		{name: "unknown command", args: []string{"nope"}, wantCode: 2, wantErr: "unknown command: nope"},
		{name: "seeded one-shot then loop", args: []string{"-seed", "done", "3"}, input: "ls\n", wantCode: 0, wantOut: "[x] [3] Call the mechanic"},
		{name: "start id", args: []string{"-start-id", "10", "add", "first"}, wantCode: 0, wantOut: "Created: [10] first"},
		{name: "bad flag value", args: []string{"-start-id", "0"}, wantCode: 2, wantErr: "start id must be >= 1"},
		{name: "help flag", args: []string{"-h"}, wantCode: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, code := runMain(t, tt.input, tt.args...)
			if code != tt.wantCode {
				t.Errorf("code: got %d, want %d (stderr: %s)", code, tt.wantCode, errOut)
			}
			if tt.wantOut != "" && !strings.Contains(out, tt.wantOut) {
				t.Errorf("stdout: got %q, want it to contain %q", out, tt.wantOut)
			}
			if tt.wantErr != "" && !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("stderr: got %q, want it to contain %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestRunFailedCommandSkipsLoop(t *testing.T) {
	out, _, code := runMain(t, "add never\n", "done", "42")
	if code != 1 {
		t.Fatalf("code: got %d, want 1", code)
	}
	if strings.Contains(out, "Created") || strings.Contains(out, "Bye!") {
		t.Errorf("loop ran after a failed command:\n%s", out)
	}
}
