package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func (e *env) consoleCommand() *cli.Command {
	return &cli.Command{
		Name:  "console",
		Usage: "run commands read from stdin against one open clock",
		Action: func(c *cli.Context) error {
			if _, err := e.device(); err != nil {
				return err
			}
			return e.console(c.App.Reader, c.App.Writer)
		},
	}
}

// console runs each input line as a command until quit or EOF. A failing command is reported and the session goes on.
func (e *env) console(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "> ")
		if !sc.Scan() {
			fmt.Fprintln(w)
			return errors.Wrap(sc.Err(), "reading console input")
		}
		args, err := shlex.Split(sc.Text())
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "quit", "exit":
			return nil
		case "console":
			fmt.Fprintln(w, "error: already in a console")
			continue
		}
		if err := newApp(e).Run(append([]string{"max31329ctl"}, args...)); err != nil {
			e.log.Debug("console command failed", zap.Strings("args", args), zap.Error(err))
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
}
