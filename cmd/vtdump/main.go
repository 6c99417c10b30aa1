// vtdump runs a command under a pseudo terminal, feeds its output
// through the interpreter and prints the final screen as text.
//
//	vtdump -cols 80 -rows 24 ls --color=always
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"github.com/hnimtadd/vtio"
	"github.com/hnimtadd/vtio/logger"
	"github.com/hnimtadd/vtio/terminal/screen"
	"golang.org/x/term"
)

type replyListener struct {
	screen.NullListener
	pty *os.File
}

func (l *replyListener) Reply(data []byte) {
	// Reports flow back to the child like a real terminal would.
	_, _ = l.pty.Write(data)
}

func main() {
	cols := flag.Int("cols", 0, "terminal columns (default: inherit, else 80)")
	rows := flag.Int("rows", 0, "terminal rows (default: inherit, else 24)")
	verbose := flag.Bool("v", false, "log interpreter diagnostics to stderr")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		shell := os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
		args = []string{shell, "-c", "true"}
	}

	if *cols == 0 || *rows == 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if *cols == 0 {
				*cols = w
			}
			if *rows == 0 {
				*rows = h
			}
		}
	}
	if *cols == 0 {
		*cols = 80
	}
	if *rows == 0 {
		*rows = 24
	}

	log := logger.Discard
	if *verbose {
		log = logger.New(logger.Options{
			Buffer: os.Stderr,
			Level:  logger.DebugLevel,
			Type:   logger.TypePretty,
		})
	}

	cmd := exec.Command(args[0], args[1:]...)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(*rows),
		Cols: uint16(*cols),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "vtdump: %v\n", err)
		os.Exit(1)
	}
	defer ptmx.Close()

	listener := &replyListener{pty: ptmx}
	interp := vtio.New(vtio.Options{
		Rows:     *rows,
		Cols:     *cols,
		Listener: listener,
		Logger:   log,
	})

	// Drain the pty into the interpreter until the child exits.
	// Reading a closed pty reports EIO on Linux; that is the normal
	// end of the stream, not an error worth surfacing.
	_, _ = io.Copy(interp, ptmx)
	_ = cmd.Wait()

	fmt.Println(interp.Snapshot())
}
