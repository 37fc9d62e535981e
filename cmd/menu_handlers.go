package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/josephgoksu/todowing/internal/ui"
	"github.com/josephgoksu/todowing/models"
	"github.com/josephgoksu/todowing/store"
)

func (s *session) exit() menuResult {
	if err := s.store.Save(); err != nil {
		printErrorTo(s.errOut, userMessage(err), err)
	} else {
		fmt.Fprintln(s.out, "Tasks saved successfully!")
	}
	fmt.Fprintln(s.out, "Thank you for using the Personal To-Do List Application!")
	fmt.Fprintln(s.out, "Goodbye! 👋")
	return menuExit
}

func (s *session) addTask() menuResult {
	title, ok := s.ask("Enter task title: ", false)
	if !ok {
		return menuClosed
	}
	description, ok := s.ask("Enter task description (optional): ", true)
	if !ok {
		return menuClosed
	}
	fmt.Fprintf(s.out, "Available categories: %s\n", strings.Join(s.store.Categories(), ", "))
	category, ok := s.ask("Enter category (or press Enter for 'General'): ", true)
	if !ok {
		return menuClosed
	}

	task, err := s.store.Add(title, description, category)
	if err != nil {
		fmt.Fprintln(s.out, userMessage(err))
		return menuContinue
	}
	fmt.Fprintf(s.out, "Task '%s' added successfully!\n", task.Title)
	s.save()
	return menuContinue
}

func (s *session) view(opts store.ViewOptions) {
	ui.RenderGroups(s.out, s.store.View(opts), len(s.store.Tasks()) > 0)
}

func (s *session) viewAll() menuResult {
	s.view(store.ViewOptions{IncludeCompleted: true})
	return menuContinue
}

func (s *session) viewIncomplete() menuResult {
	s.view(store.ViewOptions{})
	return menuContinue
}

// reportNotFound prints the not-found message for id-taking actions and
// reports whether err was handled.
func (s *session) reportNotFound(err error) bool {
	if errors.Is(err, store.ErrTaskNotFound) {
		fmt.Fprintln(s.out, userMessage(err))
		return true
	}
	return false
}

func (s *session) markCompleted() menuResult {
	s.view(store.ViewOptions{})
	if len(s.store.Tasks()) == 0 {
		return menuContinue
	}
	id, ok := s.askID("Enter task ID to mark as completed: ")
	if !ok {
		return menuClosed
	}

	task, changed, err := s.store.MarkCompleted(id)
	switch {
	case err != nil:
		s.reportNotFound(err)
	case !changed:
		fmt.Fprintf(s.out, "Task '%s' is already completed!\n", task.Title)
	default:
		fmt.Fprintf(s.out, "Task '%s' marked as completed!\n", task.Title)
		s.save()
	}
	return menuContinue
}

func (s *session) markIncomplete() menuResult {
	var completed []models.Task
	for _, t := range s.store.Tasks() {
		if t.Completed {
			completed = append(completed, t)
		}
	}
	if len(completed) == 0 {
		fmt.Fprintln(s.out, "No completed tasks found!")
		return menuContinue
	}
	ui.RenderTaskList(s.out, completed)

	id, ok := s.askID("Enter task ID to mark as incomplete: ")
	if !ok {
		return menuClosed
	}

	task, changed, err := s.store.MarkIncomplete(id)
	switch {
	case err != nil:
		s.reportNotFound(err)
	case !changed:
		fmt.Fprintf(s.out, "Task '%s' is already incomplete!\n", task.Title)
	default:
		fmt.Fprintf(s.out, "Task '%s' marked as incomplete!\n", task.Title)
		s.save()
	}
	return menuContinue
}

// clearDescription is the edit answer that empties a description, since a
// blank answer keeps the current value.
const clearDescription = "-"

func (s *session) editTask() menuResult {
	s.view(store.ViewOptions{IncludeCompleted: true})
	if len(s.store.Tasks()) == 0 {
		return menuContinue
	}
	id, ok := s.askID("Enter task ID to edit: ")
	if !ok {
		return menuClosed
	}
	task, err := s.store.FindByID(id)
	if err != nil {
		s.reportNotFound(err)
		return menuContinue
	}

	fmt.Fprintf(s.out, "\nEditing task: %s\n", task.Title)
	fmt.Fprintf(s.out, "Leave blank to keep current value. Enter '%s' to clear the description.\n", clearDescription)

	var edit store.TaskEdit
	title, ok := s.ask(fmt.Sprintf("Title [%s]: ", task.Title), true)
	if !ok {
		return menuClosed
	}
	if title != "" {
		edit.Title = &title
	}
	description, ok := s.ask(fmt.Sprintf("Description [%s]: ", task.Description), true)
	if !ok {
		return menuClosed
	}
	switch description {
	case "":
	case clearDescription:
		empty := ""
		edit.Description = &empty
	default:
		edit.Description = &description
	}
	category, ok := s.ask(fmt.Sprintf("Category [%s]: ", task.Category), true)
	if !ok {
		return menuClosed
	}
	if category != "" {
		edit.Category = &category
	}

	updated, err := s.store.Edit(id, edit)
	if err != nil {
		s.reportNotFound(err)
		return menuContinue
	}
	fmt.Fprintf(s.out, "Task '%s' updated successfully!\n", updated.Title)
	s.save()
	return menuContinue
}

func (s *session) deleteTask() menuResult {
	s.view(store.ViewOptions{IncludeCompleted: true})
	if len(s.store.Tasks()) == 0 {
		return menuContinue
	}
	id, ok := s.askID("Enter task ID to delete: ")
	if !ok {
		return menuClosed
	}
	confirm, ok := s.ask("Are you sure you want to delete this task? (y/N): ", true)
	if !ok {
		return menuClosed
	}
	if !isYes(confirm) {
		fmt.Fprintln(s.out, "Delete operation cancelled.")
		return menuContinue
	}

	task, err := s.store.Delete(id)
	if err != nil {
		s.reportNotFound(err)
		return menuContinue
	}
	fmt.Fprintf(s.out, "Task '%s' deleted successfully!\n", task.Title)
	s.save()
	return menuContinue
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (s *session) search() menuResult {
	query, ok := s.ask("Enter search query: ", false)
	if !ok {
		return menuClosed
	}
	ui.RenderSearchResults(s.out, s.store.Search(query))
	return menuContinue
}

func (s *session) statistics() menuResult {
	ui.RenderStats(s.out, s.store.Statistics())
	return menuContinue
}

func (s *session) filterByCategory() menuResult {
	fmt.Fprintf(s.out, "Available categories: %s\n", strings.Join(s.store.Categories(), ", "))
	category, ok := s.ask("Enter category to filter by: ", false)
	if !ok {
		return menuClosed
	}
	s.view(store.ViewOptions{Category: category, IncludeCompleted: true})
	return menuContinue
}

func (s *session) listCategories() menuResult {
	ui.RenderCategories(s.out, s.store.Categories())
	return menuContinue
}
