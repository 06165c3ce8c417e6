package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), "class files 45.3 (Java 1.1) through 52.0 (Java 8)") {
		t.Errorf("got %q", out.String())
	}
}

func TestPoolCmdMissingFile(t *testing.T) {
	cmd := newPoolCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{t.TempDir() + "/Missing.class"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "failed to read class file") {
		t.Errorf("Execute() error = %v", err)
	}
}

func TestUseColor(t *testing.T) {
	if !useColor("always") || useColor("never") {
		t.Error("Expected always and never to force the color mode")
	}
}
