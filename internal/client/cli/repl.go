package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Forget(ctx context.Context) error
	Baseline(ctx context.Context) error
	UpdateBaseline(ctx context.Context) error
	CheckIn(ctx context.Context) error
	Today(ctx context.Context) error
	History(ctx context.Context) error
	Progress(ctx context.Context) error
	Timeline(ctx context.Context) error
	Milestones(ctx context.Context) error
	PairCode(ctx context.Context) error
	Pair(ctx context.Context, args []string) error
	Partner(ctx context.Context) error
	Export(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the vitalkeeper CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Command handlers read their own prompts from
// the same reader. The loop exits on EOF, on a cancelled ctx or when the user
// types "exit" or "quit".
//
//	Not logged in:
//	  - help             show available commands
//	  - signup           create an account
//	  - login            authenticate
//	  - forget           clear the remembered email
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - checkin          record today's habits
//	  - today            show today's check-in
//	  - history          list recent check-ins
//	  - progress         streaks and completion rates
//	  - timeline         cycle phases
//	  - milestones       achieved streak milestones
//	  - baseline         show the health baseline
//	  - updatebaseline   answer the baseline questionnaire again
//	  - paircode         create a code for the partner
//	  - pair [code]      pair using the partner's code
//	  - partner          compare progress with the partner
//	  - export <file>    write all data as JSON
//	  - logout           log out
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("vk%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: checkin, today, history, progress, timeline, milestones, " +
					"baseline, updatebaseline, paircode, pair, partner, export, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, forget, exit")
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "forget":
			_ = a.Forget(ctx)

		case "baseline":
			_ = a.Baseline(ctx)

		case "updatebaseline":
			_ = a.UpdateBaseline(ctx)

		case "checkin":
			_ = a.CheckIn(ctx)

		case "today":
			_ = a.Today(ctx)

		case "history":
			_ = a.History(ctx)

		case "progress":
			_ = a.Progress(ctx)

		case "timeline":
			_ = a.Timeline(ctx)

		case "milestones":
			_ = a.Milestones(ctx)

		case "paircode":
			_ = a.PairCode(ctx)

		case "pair":
			_ = a.Pair(ctx, args)

		case "partner":
			_ = a.Partner(ctx)

		case "export":
			_ = a.Export(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
