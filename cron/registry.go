package cron

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"products.GO/core/registry"
)

// DefaultTimeout bounds a job run when the job does not set its own.
const DefaultTimeout = 10 * time.Minute

// Job is a named unit of scheduled work. Names are matched case-insensitively.
type Job struct {
	Name     string
	Schedule string
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

// Exec runs the job under its timeout.
func (j Job) Exec(ctx context.Context) error {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := j.Run(ctx); err != nil {
		return fmt.Errorf("job %s: %w", j.Name, err)
	}
	return nil
}

var mu sync.Mutex

// Register adds a job from an init() func. It panics once the scheduler has
// read the registry, on a duplicate name and on a job without a Run func.
func Register(j Job) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		panic("cron: registry locked, register jobs during init")
	}
	if j.Run == nil {
		panic("cron: job " + j.Name + " has no Run func")
	}
	j.Name = strings.ToLower(j.Name)
	jobs := registered()
	if _, ok := jobs[j.Name]; ok {
		panic("cron: duplicate job " + j.Name)
	}
	jobs[j.Name] = j
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

// Unregister removes a job. Tests only.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	jobs := registered()
	delete(jobs, strings.ToLower(name))
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

func registered() map[string]Job {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCron); ok && v != nil {
		return v.(map[string]Job)
	}
	return make(map[string]Job)
}

// Jobs returns the registered jobs sorted by name and locks the registry.
func Jobs() []Job {
	mu.Lock()
	defer mu.Unlock()
	jobs := registered()
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Name < out[k].Name })
	if !registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryCron)
	}
	return out
}

// Lookup finds a job by name.
func Lookup(name string) (Job, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, j := range Jobs() {
		if j.Name == name {
			return j, true
		}
	}
	return Job{}, false
}

// Names lists the registered job names in order.
func Names() []string {
	jobs := Jobs()
	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.Name
	}
	return names
}
