package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/josephgoksu/todowing/internal/ui"
	"github.com/josephgoksu/todowing/store"
	"github.com/spf13/viper"
)

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	printErrorTo(os.Stderr, userMsg, technicalErr)
}

// printErrorTo prints the friendly message, or with --verbose the underlying
// technical error, to w.
func printErrorTo(w io.Writer, userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(w, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(w, ui.StyleError.Render(userMsg))
	}
}

// printWarnings reports problems a load recovered from.
func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintln(w, ui.StyleWarning.Render("Warning: "+msg))
	}
}

// LogError logs an error without printing to stderr if verbose mode is off.
func LogError(msg string, err error) {
	if viper.GetBool("verbose") {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}

// userMessage turns a store error into the sentence shown to the user.
func userMessage(err error) string {
	var taskErr *store.TaskError
	var persistErr *store.PersistenceError
	switch {
	case errors.As(err, &taskErr) && errors.Is(err, store.ErrTaskNotFound):
		return fmt.Sprintf("Task with ID %d not found!", taskErr.ID)
	case errors.Is(err, store.ErrEmptyTitle):
		return "Task title cannot be empty!"
	case errors.As(err, &persistErr):
		return fmt.Sprintf("Error %s tasks: %v", persistVerb(persistErr.Op), persistErr.Err)
	default:
		return err.Error()
	}
}

func persistVerb(op string) string {
	switch op {
	case "load":
		return "loading"
	case "save":
		return "saving"
	case "backup":
		return "backing up"
	case "restore":
		return "restoring"
	default:
		return op
	}
}
