/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// Answers is the spec.md §6 interactive wizard's output: the four prompts,
// in order.
type Answers struct {
	InputPath string
	Radius    int64
	Threaded  bool
	Workers   int
}

// maxWorkers is the hard cap on worker count from spec.md §4.7.
const maxWorkers = 256

// RunWizard asks the spec.md §6 prompts in order, one at a time, the same
// one-shot-question shape scm.Repl uses for its own line reads — just
// without the loop back to a fresh prompt afterward. It fails fast on an
// unreadable input path or a non-positive radius (spec.md §7).
func RunWizard() (Answers, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return Answers{}, err
	}
	defer rl.Close()

	var a Answers

	rl.SetPrompt("Input file path: ")
	path, err := rl.Readline()
	if err != nil {
		return Answers{}, err
	}
	a.InputPath = strings.TrimSpace(path)
	if a.InputPath == "" {
		return Answers{}, errors.New("cli: input file path is required")
	}
	in, err := os.Open(a.InputPath)
	if err != nil {
		return Answers{}, fmt.Errorf("cli: input file unreadable: %w", err)
	}
	in.Close()

	rl.SetPrompt("Radius (blocks): ")
	radiusLine, err := rl.Readline()
	if err != nil {
		return Answers{}, err
	}
	radius, err := strconv.ParseInt(strings.TrimSpace(radiusLine), 10, 64)
	if err != nil || radius <= 0 {
		return Answers{}, fmt.Errorf("cli: radius must be a positive integer, got %q", radiusLine)
	}
	a.Radius = radius

	rl.SetPrompt("Use multithreading? [Y/n]: ")
	mtLine, err := rl.Readline()
	if err != nil {
		return Answers{}, err
	}
	a.Threaded = !strings.EqualFold(strings.TrimSpace(mtLine), "n")

	defaultWorkers := runtime.NumCPU()
	if defaultWorkers > maxWorkers {
		defaultWorkers = maxWorkers
	}
	if !a.Threaded {
		a.Workers = 1
		return a, nil
	}

	rl.SetPrompt(fmt.Sprintf("Worker count [%d]: ", defaultWorkers))
	wLine, err := rl.Readline()
	if err != nil {
		return Answers{}, err
	}
	wLine = strings.TrimSpace(wLine)
	if wLine == "" {
		a.Workers = defaultWorkers
	} else {
		w, err := strconv.Atoi(wLine)
		if err != nil || w <= 0 {
			return Answers{}, fmt.Errorf("cli: worker count must be a positive integer, got %q", wLine)
		}
		if w > maxWorkers {
			w = maxWorkers
		}
		a.Workers = w
	}
	return a, nil
}

// printConfigSummary writes the spec.md §6 item 2 printout (detected RAM,
// budget, tier, multiplier, record size) to w.
func printConfigSummary(w io.Writer, summary string) {
	fmt.Fprintln(w, summary)
}
