/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/josephgoksu/todowing/internal/ui"
	"github.com/josephgoksu/todowing/store"
	"github.com/spf13/cobra"
)

// interactiveCmd represents the interactive command
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Numbered menu for managing your to-do list",
	Long: `Interactive mode shows a numbered menu (0-11) to add, view, complete,
edit, delete, search and filter tasks. Every change is saved immediately.

This is also what runs when todowing is started without a subcommand.`,
	Aliases: []string{"menu", "ui"},
	RunE:    runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// MenuCommand is a numbered menu choice.
type MenuCommand int

const (
	MenuExit MenuCommand = iota
	MenuAdd
	MenuViewAll
	MenuViewIncomplete
	MenuMarkCompleted
	MenuMarkIncomplete
	MenuEdit
	MenuDelete
	MenuSearch
	MenuStatistics
	MenuFilterCategory
	MenuListCategories
)

// MenuItem represents a menu option
type MenuItem struct {
	Command MenuCommand
	Label   string
}

var menuItems = []MenuItem{
	{MenuAdd, "➕ Add Task"},
	{MenuViewAll, "👁️  View All Tasks"},
	{MenuViewIncomplete, "👁️  View Incomplete Tasks Only"},
	{MenuMarkCompleted, "✅ Mark Task as Completed"},
	{MenuMarkIncomplete, "↩️  Mark Task as Incomplete"},
	{MenuEdit, "✏️  Edit Task"},
	{MenuDelete, "🗑️  Delete Task"},
	{MenuSearch, "🔍 Search Tasks"},
	{MenuStatistics, "📊 View Statistics"},
	{MenuFilterCategory, "📁 Filter by Category"},
	{MenuListCategories, "📋 List Categories"},
	{MenuExit, "🚪 Exit"},
}

// menuResult tells the loop what to do after a handler ran.
type menuResult int

const (
	menuContinue menuResult = iota
	// menuExit ends the session normally, after saving.
	menuExit
	// menuClosed ends the session because input is gone. Nothing is saved.
	menuClosed
)

type menuHandler func(*session) menuResult

var menuHandlers = map[MenuCommand]menuHandler{
	MenuExit:           (*session).exit,
	MenuAdd:            (*session).addTask,
	MenuViewAll:        (*session).viewAll,
	MenuViewIncomplete: (*session).viewIncomplete,
	MenuMarkCompleted:  (*session).markCompleted,
	MenuMarkIncomplete: (*session).markIncomplete,
	MenuEdit:           (*session).editTask,
	MenuDelete:         (*session).deleteTask,
	MenuSearch:         (*session).search,
	MenuStatistics:     (*session).statistics,
	MenuFilterCategory: (*session).filterByCategory,
	MenuListCategories: (*session).listCategories,
}

const (
	farewellInterrupted = "\n\nApplication terminated by user. Goodbye! 👋"
	menuChoicePrompt    = "Choose an option (0-11): "
)

// session is one run of the menu loop.
type session struct {
	store  store.TaskStore
	prompt Prompter
	out    io.Writer
	errOut io.Writer
	pause  bool
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	logger.SetCommand("interactive")
	taskStore, err := openStore(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if err := taskStore.Close(); err != nil {
			LogError("failed to close task store", err)
		}
	}()

	cfg := GetConfig()
	s := &session{
		store:  taskStore,
		prompt: newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.UI.Plain),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		pause:  cfg.UI.Pause,
	}

	stop := watchInterrupt(s.out, os.Exit)
	defer stop()

	fmt.Fprintln(s.out, "Welcome to your Personal To-Do List Application!")
	fmt.Fprintf(s.out, "Your tasks are automatically saved to '%s'\n", GetTaskFilePath())
	s.run()
	return nil
}

// watchInterrupt prints the farewell and exits with status 130 on SIGINT or
// SIGTERM until stop is called.
func watchInterrupt(out io.Writer, exit func(int)) (stop func()) {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigs:
			fmt.Fprintln(out, farewellInterrupted)
			exit(130)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// run drives the menu until the user exits or input ends.
func (s *session) run() {
	for {
		s.displayMenu()

		line, ok := s.ask(menuChoicePrompt, false)
		if !ok {
			fmt.Fprintln(s.out, farewellInterrupted)
			return
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a valid number.")
			continue
		}

		handler, found := menuHandlers[MenuCommand(choice)]
		if !found {
			fmt.Fprintln(s.out, "Invalid choice. Please select a number between 0-11.")
		} else {
			switch handler(s) {
			case menuExit:
				return
			case menuClosed:
				fmt.Fprintln(s.out, farewellInterrupted)
				return
			}
		}

		if s.pause {
			if _, err := s.prompt.Prompt("\nPress Enter to continue..."); err != nil {
				fmt.Fprintln(s.out, farewellInterrupted)
				return
			}
		}
	}
}

func (s *session) displayMenu() {
	rule := ui.StyleSubtle.Render(strings.Repeat("=", 50))
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out, ui.StyleHeader.Render("📝 PERSONAL TO-DO LIST APPLICATION"))
	fmt.Fprintln(s.out, rule)
	for _, item := range menuItems {
		fmt.Fprintf(s.out, "%-4s%s\n", strconv.Itoa(int(item.Command))+".", item.Label)
	}
	fmt.Fprintln(s.out, rule)
}

// ask prompts until it gets an acceptable answer. The answer is trimmed;
// blank answers are rejected unless allowEmpty is set. ok is false once input
// is closed.
func (s *session) ask(label string, allowEmpty bool) (answer string, ok bool) {
	for {
		line, err := s.prompt.Prompt(label)
		if err != nil {
			if !errors.Is(err, ErrInputClosed) {
				LogError("prompt failed", err)
			}
			return "", false
		}
		line = strings.TrimSpace(line)
		if line == "" && !allowEmpty {
			fmt.Fprintln(s.out, "Input cannot be empty. Please try again.")
			continue
		}
		return line, true
	}
}

// askID prompts until it gets a whole number.
func (s *session) askID(label string) (int, bool) {
	for {
		line, ok := s.ask(label, false)
		if !ok {
			return 0, false
		}
		id, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a valid number.")
			continue
		}
		return id, true
	}
}

// save persists the store and reports a failure without ending the session.
func (s *session) save() bool {
	if err := s.store.Save(); err != nil {
		printErrorTo(s.errOut, userMessage(err), err)
		return false
	}
	return true
}

// openStore initializes and loads the task store for the menu. A load failure
// is reported and the session starts from an empty list.
func openStore(errOut io.Writer) (store.TaskStore, error) {
	taskStore, err := GetStore()
	if err != nil {
		return nil, err
	}
	if err := taskStore.Load(); err != nil {
		printErrorTo(errOut, userMessage(err), err)
	}
	printWarnings(errOut, taskStore.Warnings())
	return taskStore, nil
}
