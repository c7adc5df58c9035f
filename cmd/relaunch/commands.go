package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/loykin/relaunch"
)

type command struct{}

// withRestarter loads config, builds the facade, runs fn, and releases the
// history sink.
func (c command) withRestarter(g *GlobalFlags, fn func(*relaunch.Restarter) error) error {
	cfg, err := relaunch.LoadConfig(g.ConfigPath)
	if err != nil {
		return err
	}
	r, err := relaunch.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()
	return fn(r)
}

// Run performs the full stop -> wait -> launch sequence.
func (c command) Run(g *GlobalFlags, f RunFlags) error {
	return c.withRestarter(g, func(r *relaunch.Restarter) error {
		r.SkipEnvCheck(f.SkipEnvCheck)
		return r.Run(context.Background())
	})
}

// Stop performs the stop phase only, optionally for a single target.
func (c command) Stop(g *GlobalFlags, f StopFlags) error {
	return c.withRestarter(g, func(r *relaunch.Restarter) error {
		if f.Target != "" {
			return r.StopTarget(context.Background(), f.Target)
		}
		return r.Stop(context.Background())
	})
}

// Launch performs the launch phase only.
func (c command) Launch(g *GlobalFlags, f LaunchFlags) error {
	return c.withRestarter(g, func(r *relaunch.Restarter) error {
		r.SkipEnvCheck(f.SkipEnvCheck)
		pid, err := r.Launch(context.Background())
		if err != nil {
			return err
		}
		fmt.Println("launched pid", pid)
		return nil
	})
}

// Status prints the processes currently matching each target.
func (c command) Status(g *GlobalFlags) error {
	return c.withRestarter(g, func(r *relaunch.Restarter) error {
		statuses, err := r.Status()
		if err != nil {
			return err
		}
		return printStatuses(statuses)
	})
}

// History prints recent audit events.
func (c command) History(g *GlobalFlags, f HistoryFlags) error {
	return c.withRestarter(g, func(r *relaunch.Restarter) error {
		events, err := r.History(context.Background(), f.Limit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("no history recorded")
			return nil
		}
		return printJSON(events)
	})
}

func printStatuses(statuses []relaunch.TargetStatus) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TARGET\tPID\tUPTIME\tCOMMAND")
	now := time.Now()
	for _, s := range statuses {
		if len(s.Matches) == 0 {
			_, _ = fmt.Fprintf(w, "%s\t-\t-\tnot running (pattern: %s)\n", s.Name, s.Pattern)
			continue
		}
		for _, m := range s.Matches {
			up := "-"
			if d := m.Uptime(now); d > 0 {
				up = d.Truncate(time.Second).String()
			}
			_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", s.Name, m.PID, up, m.Cmdline)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for _, s := range statuses {
		if s.LastLaunch == nil {
			continue
		}
		state := "gone"
		if s.LastLaunch.Alive {
			state = "alive"
		}
		fmt.Printf("last launch of %s: pid %d (%s)\n", s.Name, s.LastLaunch.PID, state)
	}
	return nil
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
