package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/fintrack/config"
)

func TestExtensionEnv(t *testing.T) {
	saved, savedVerbose := cfg, *Verbose
	t.Cleanup(func() { cfg, *Verbose = saved, savedVerbose })

	cfg = config.Default()
	cfg.User = "zoe"
	cfg.Advisor.APIKey = "secret"
	*Verbose = true

	env := extensionEnv()
	for _, want := range []string{config.EnvUser + "=zoe", config.EnvLocalStore + "=.fintrack.db", EnvVerbose + "=true"} {
		if !slices.Contains(env, want) {
			t.Errorf("extension environment lacks %q", want)
		}
	}
	for _, kv := range env {
		if strings.Contains(kv, "secret") {
			t.Errorf("extension environment leaks the API key: %q", kv)
		}
	}
}

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	helloSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	for _, k := range []string{%q, %q, %q} {
		fmt.Printf("%%s=%%s\n", k, os.Getenv(k))
	}
	fmt.Println("args", os.Args[1:])
}
`, config.EnvUser, config.EnvLocalStore, EnvVerbose)

	helloPath := filepath.Join(tempDir, ExtensionPrefix+"hello")
	srcFile := helloPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloSource), 0644); err != nil {
		t.Fatalf("Failed to write ft-hello source: %v", err)
	}
	build := exec.Command("go", "build", "-o", helloPath, srcFile)
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile ft-hello: %v", err)
	}

	ftPath := filepath.Join(tempDir, "ft")
	build = exec.Command("go", "build", "-o", ftPath, "../ft")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile ft: %v", err)
	}

	localStore := filepath.Join(tempDir, "data.db")
	ft := exec.Command(ftPath, "-v", "hello", "world")
	ft.Env = []string{
		"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH"),
		config.EnvUser + "=zoe",
		config.EnvLocalStore + "=" + localStore,
	}
	var stdout, stderr bytes.Buffer
	ft.Stdout, ft.Stderr = &stdout, &stderr
	if err := ft.Run(); err != nil {
		t.Fatalf("ft command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, want := range []string{
		config.EnvUser + "=zoe",
		config.EnvLocalStore + "=" + localStore,
		EnvVerbose + "=true",
		"args [world]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, output)
		}
	}
}
