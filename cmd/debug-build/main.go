// Command debug-build runs the project build and saves its output to a file,
// so a failing CI or deploy build can be inspected after the fact.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	command := flag.String("cmd", "go build ./...", "build command to run")
	out := flag.String("out", "debug_build_output.txt", "file to write the report to")
	timeout := flag.Duration("timeout", 10*time.Minute, "give up after this long")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	buildErr, err := run(ctx, *command, *out)
	if err != nil {
		log.Fatal().Err(err).Str("out", *out).Msg("Failed to write build report")
	}

	event := log.Info()
	if buildErr != nil {
		event = log.Warn().Err(buildErr)
	}
	event.Str("out", *out).Msg("Build finished, output saved")
}

// run executes command and writes the report to path. The build's own
// failure is returned separately from a failure to write the report.
func run(ctx context.Context, command, path string) (buildErr, err error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, errors.New("empty build command")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	buildErr = cmd.Run()

	report := formatReport(buildErr, stderr.String(), stdout.String())
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return buildErr, fmt.Errorf("write report: %w", err)
	}
	return buildErr, nil
}

func formatReport(buildErr error, stderr, stdout string) string {
	msg := "None"
	if buildErr != nil {
		msg = buildErr.Error()
	}
	return fmt.Sprintf("Error: %s\n\nStderr:\n%s\n\nStdout:\n%s", msg, stderr, stdout)
}
