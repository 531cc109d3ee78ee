// Tarzan is a tiny interpreted language with C-like syntax. The
// interpreter executes source text directly by re-scanning it; see
// pkg/interpreter.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/tarzanLang/tarzan/pkg/checker"
	"github.com/tarzanLang/tarzan/pkg/interpreter"
)

const historyFile = ".tarzan_history"

var (
	flagCheck       = flag.Bool("check", false, "Check syntax only, do not execute")
	flagInteractive = flag.Bool("i", false, "Start an interactive session")
	flagQuiet       = flag.Bool("quiet", false, "Suppress the timing trailer")
)

func main() {
	flag.Parse()
	args := flag.Args()

	if *flagInteractive {
		os.Exit(runREPL())
	}

	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Tarzan wants: %s <filename>\n", os.Args[0])
		os.Exit(1)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Tarzan can't open file %s\n", args[0])
		os.Exit(1)
	}

	if *flagCheck {
		if err := checker.Check(args[0], src); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	start := time.Now()
	engine := interpreter.New(src)
	if err := engine.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !*flagQuiet {
		fmt.Printf("Tarzan done in %dms!\n", time.Since(start).Milliseconds())
	}
}

func runREPL() int {
	fmt.Println("Tarzan interactive. Type :quit to exit.")

	// No known home dir means no history persistence.
	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	engine := interpreter.New(nil)
	buffer := ""
	depth := 0

	for {
		prompt := "tarzan> "
		if buffer != "" {
			prompt = "   ...> "
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			// Ctrl-C abandons the pending input
			buffer = ""
			depth = 0
			continue
		}

		trimmed := strings.TrimSpace(line)
		if buffer == "" && strings.HasPrefix(trimmed, ":") {
			switch trimmed {
			case ":quit", ":q":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		// Track brace depth for multi-line input
		for _, ch := range line {
			switch ch {
			case '{':
				depth++
			case '}':
				depth--
			}
		}
		buffer += line + "\n"
		if depth > 0 {
			continue
		}

		source := buffer
		buffer = ""
		depth = 0
		if strings.TrimSpace(source) == "" {
			continue
		}

		engine.Append([]byte(source))
		if err := engine.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			engine.Resync()
		}
		ln.AppendHistory(strings.TrimSpace(strings.ReplaceAll(source, "\n", " ")))
	}
}
