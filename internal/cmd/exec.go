package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// runHook runs the post-write script for the file at path.
func runHook(script, path, dir string, stdout, stderr io.Writer) error {
	exitCode, err := runCommand(expandCommand(script, path), dir, stdout, stderr)
	if err != nil {
		return err
	}

	if exitCode != 0 {
		return fmt.Errorf("%w: exit status %d", errHookFailed, exitCode)
	}

	return nil
}

func expandCommand(scr, path string) string {
	quoted, err := syntax.Quote(path, syntax.LangBash)
	if err != nil {
		quoted = path
	}

	return strings.ReplaceAll(scr, "{}", quoted)
}

func runCommand(command, dir string, stdout, stderr io.Writer) (int, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return -1, err
	}

	if len(dir) == 0 {
		dir = "."
	}

	runner, err := interp.New(interp.Dir(dir), interp.StdIO(os.Stdin, stdout, stderr))
	if err != nil {
		return -1, err
	}

	err = runner.Run(context.TODO(), file)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return int(status), nil
		}

		return -1, err
	}

	return 0, nil
}

var errHookFailed = fmt.Errorf("command after write failed")
