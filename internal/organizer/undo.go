package organizer

import (
	"fmt"
	"os"
	"path/filepath"
)

// UndoLast reverts the most recent history entry. Only batch renames
// can actually be undone; the entry is popped only when every rename
// reverts cleanly, so a partial failure can be retried.
func (o *Organizer) UndoLast() *Result {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.history) == 0 {
		return &Result{Success: false, Error: ErrNothingToUndo.Error()}
	}

	last := o.history[len(o.history)-1]
	switch last.Operation {
	case OpRename:
		return o.undoRename(last)
	case OpOrganize:
		return &Result{Success: false,
			Error: fmt.Sprintf("%v: organize; restore files manually", ErrUndoUnsupported)}
	case OpCleanup:
		return &Result{Success: false,
			Error: fmt.Sprintf("%v: removed directories cannot be restored", ErrUndoUnsupported)}
	default:
		return &Result{Success: false,
			Error: fmt.Sprintf("%v: %s", ErrUndoUnsupported, last.Operation)}
	}
}

func (o *Organizer) undoRename(rec Record) *Result {
	res := &Result{Success: true}

	for _, ri := range rec.Result.Renamed {
		if ri.Status != StatusRenamed {
			continue
		}
		current := filepath.Join(filepath.Dir(ri.Path), ri.New)
		if _, err := os.Lstat(current); err != nil {
			continue
		}
		if err := os.Rename(current, ri.Path); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("restore %s: %v", ri.New, err))
			continue
		}
		res.Undone = append(res.Undone, ri.Original)
	}

	if len(res.Errors) == 0 {
		o.history = o.history[:len(o.history)-1]
	}
	return res
}
