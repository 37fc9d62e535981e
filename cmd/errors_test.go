package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/josephgoksu/todowing/store"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestPrintError(t *testing.T) {
	tests := []struct {
		name         string
		userMsg      string
		technicalErr error
		verbose      bool
		expectedOut  string
	}{
		{
			name:         "normal mode without error",
			userMsg:      "Error saving tasks",
			technicalErr: nil,
			verbose:      false,
			expectedOut:  "Error saving tasks",
		},
		{
			name:         "verbose mode with error",
			userMsg:      "Error saving tasks",
			technicalErr: &testError{msg: "permission denied"},
			verbose:      true,
			expectedOut:  "Error: permission denied",
		},
		{
			name:         "normal mode with technical error",
			userMsg:      "Error saving tasks",
			technicalErr: &testError{msg: "permission denied"},
			verbose:      false,
			expectedOut:  "Error saving tasks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Set("verbose", tt.verbose)
			defer viper.Set("verbose", false)

			var buf bytes.Buffer
			printErrorTo(&buf, tt.userMsg, tt.technicalErr)

			output := strings.TrimSpace(buf.String())
			if !strings.Contains(output, tt.expectedOut) {
				t.Errorf("printErrorTo() output = %q, want to contain %q", output, tt.expectedOut)
			}
		})
	}
}

func TestLogError(t *testing.T) {
	originalStderr := os.Stderr

	tests := []struct {
		name        string
		msg         string
		err         error
		verbose     bool
		shouldPrint bool
	}{
		{
			name:        "verbose mode with error",
			msg:         "failed to close task store",
			err:         &testError{msg: "bad file descriptor"},
			verbose:     true,
			shouldPrint: true,
		},
		{
			name:        "verbose mode without error",
			msg:         "failed to close task store",
			err:         nil,
			verbose:     true,
			shouldPrint: true,
		},
		{
			name:        "non-verbose mode",
			msg:         "failed to close task store",
			err:         &testError{msg: "bad file descriptor"},
			verbose:     false,
			shouldPrint: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Set("verbose", tt.verbose)
			defer viper.Set("verbose", false)

			// Capture stderr output
			r, w, _ := os.Pipe()
			os.Stderr = w

			LogError(tt.msg, tt.err)

			_ = w.Close()
			var buf bytes.Buffer
			_, _ = buf.ReadFrom(r)
			output := strings.TrimSpace(buf.String())

			os.Stderr = originalStderr

			if tt.shouldPrint && !strings.Contains(output, "[DEBUG]") {
				t.Errorf("LogError() should have printed debug output")
			}
			if !tt.shouldPrint && output != "" {
				t.Errorf("LogError() should not have printed anything, got: %q", output)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not found",
			err:  &store.TaskError{ID: 42, Err: store.ErrTaskNotFound},
			want: "Task with ID 42 not found!",
		},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("done: %w", &store.TaskError{ID: 7, Err: store.ErrTaskNotFound}),
			want: "Task with ID 7 not found!",
		},
		{
			name: "empty title",
			err:  store.ErrEmptyTitle,
			want: "Task title cannot be empty!",
		},
		{
			name: "save failure",
			err:  &store.PersistenceError{Op: "save", Path: "tasks.json", Err: &testError{msg: "disk full"}},
			want: "Error saving tasks: disk full",
		},
		{
			name: "load failure",
			err:  &store.PersistenceError{Op: "load", Path: "tasks.json", Err: &testError{msg: "unexpected EOF"}},
			want: "Error loading tasks: unexpected EOF",
		},
		{
			name: "other",
			err:  &testError{msg: "invalid task ID \"x\""},
			want: "invalid task ID \"x\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, userMessage(tt.err))
		})
	}
}

// testError is a simple error type for testing
type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}
