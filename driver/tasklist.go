// Package driver runs time-stepping cycles over a MeshBlockPack: a
// cooperative task list orders the exchange protocol steps, an explicit
// isotropic-diffusion operator supplies fluxes and updates, and problem
// generators fill initial conditions.
package driver

import (
	"fmt"
	"runtime"

	"github.com/notargets/goamr/bvals"
)

// Task is one named protocol step. A step returning TaskIncomplete is retried;
// an error or TaskFail aborts the list.
type Task struct {
	Name string
	Fn   func() (bvals.TaskStatus, error)
}

// TaskList executes tasks in order, retrying incomplete steps. Tasks later in
// the list never run before every earlier task has completed, which is how the
// exchange cycle's ordering (post receives, send, unpack, clear) is enforced.
type TaskList struct {
	Tasks []Task

	// MaxSpins bounds consecutive passes with no task completing before the
	// list is declared stalled. A stall means a peer rank never sent, which
	// would otherwise hang the step forever.
	MaxSpins int
}

const defaultMaxSpins = 10_000_000

// NewTaskList builds a list with the default stall bound.
func NewTaskList(tasks ...Task) *TaskList {
	return &TaskList{Tasks: tasks, MaxSpins: defaultMaxSpins}
}

// Run drives the list to completion.
func (tl *TaskList) Run() error {
	next := 0
	spins := 0
	for next < len(tl.Tasks) {
		t := tl.Tasks[next]
		st, err := t.Fn()
		if err != nil {
			return fmt.Errorf("task %q: %w", t.Name, err)
		}
		switch st {
		case bvals.TaskComplete:
			next++
			spins = 0
		case bvals.TaskIncomplete:
			spins++
			if spins > tl.MaxSpins {
				return fmt.Errorf("task %q stalled after %d retries", t.Name, spins)
			}
			// yield so peer ranks in this process can make progress
			runtime.Gosched()
		default:
			return fmt.Errorf("task %q: %s", t.Name, st)
		}
	}
	return nil
}
