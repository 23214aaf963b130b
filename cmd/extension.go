package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog/log"
)

// EnvVerbose tells extensions that -v was set.
const EnvVerbose = "FT_VERBOSE"

// ExtensionPrefix prefixes the name of extension binaries.
const ExtensionPrefix = "ft-"

// extensionEnv is the environment of extensions: the current one, plus the
// loaded configuration.
func extensionEnv() []string {
	env := os.Environ()
	env = append(env, cfg.Environ()...)
	return append(env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
}

// RunExtension attempts to find and execute an external ft-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debug().Err(err).Str("extension", name).Msg("extension not found")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
