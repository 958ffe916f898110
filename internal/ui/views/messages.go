package views

// Messages emitted by views for the root model to act on. Defined here
// to avoid a circular import with the ui package.

import "github.com/kolisa/Daily-task-manager/internal/model"

// TasksChangedMsg carries a new task snapshot after a user action; the
// root persists it and fans it back out to the other views
type TasksChangedMsg struct {
	Tasks []model.Task
}

// AddTaskMsg asks the root to parse a quick-add line and create the task
type AddTaskMsg struct {
	Line string
}

// TaskDeletedMsg asks the root to delete a task permanently
type TaskDeletedMsg struct {
	TaskID string
}

// FocusRequestMsg asks the root to open the focus view on a task
type FocusRequestMsg struct {
	TaskID string
}
