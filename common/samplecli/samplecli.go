// Copyright 2026 The LUCI Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package samplecli holds the plumbing shared by the command line samples.
//
// Each sample subcommand is described by a Spec. The resulting command gets
// the -log-level and, if needed, -project flags, argument count checks and
// the exit code conventions:
//
//	0 - the sample ran and printed its result
//	1 - the cloud call failed
//	2 - bad command line usage
package samplecli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
	"go.chromium.org/luci/common/logging/gologger"

	"github.com/luci/gcpsamples/common/gcpenv"
)

// Exit codes returned by Run implementations.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// BaseRun is embedded by all sample subcommands.
type BaseRun struct {
	subcommands.CommandRunBase

	// Out receives the sample output. Defaults to os.Stdout.
	Out io.Writer

	project  string
	logLevel logging.Level
}

// RegisterBaseFlags registers flags shared by all subcommands.
func (r *BaseRun) RegisterBaseFlags() {
	r.logLevel = logging.Info
	r.Flags.Var(&r.logLevel, "log-level", "Logging level: debug, info, warning or error.")
}

// RegisterProjectFlag registers the -project flag.
func (r *BaseRun) RegisterProjectFlag() {
	r.Flags.StringVar(&r.project, "project", "",
		"Cloud project ID. Defaults to $GOOGLE_CLOUD_PROJECT or the metadata server.")
}

// ModifyContext implements cli.ContextModificator.
func (r *BaseRun) ModifyContext(ctx context.Context) context.Context {
	return logging.SetLevel(ctx, r.logLevel)
}

// Project returns the Cloud project the command should operate on.
func (r *BaseRun) Project(ctx context.Context) (string, error) {
	return gcpenv.ProjectID(ctx, r.project)
}

// Stdout is where the sample prints its result.
func (r *BaseRun) Stdout() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

// CheckArgs verifies the number of positional arguments.
//
// Pass max < 0 for "no upper bound". Prints usage to stderr on mismatch.
func (r *BaseRun) CheckArgs(args []string, min, max int, usage string) bool {
	if len(args) < min || (max >= 0 && len(args) > max) {
		fmt.Fprintf(os.Stderr, "usage: %s\n", usage)
		return false
	}
	return true
}

// UsageError prints a usage problem to stderr and returns ExitUsage.
func (r *BaseRun) UsageError(format string, args ...any) int {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return ExitUsage
}

// Done logs err, if any, and returns the matching exit code.
func (r *BaseRun) Done(ctx context.Context, err error) int {
	if err != nil {
		logging.Errorf(ctx, "%s", err)
		return ExitError
	}
	return ExitOK
}

// Exec runs a sample with the positional arguments of the command line.
type Exec func(ctx context.Context, r *Run, args []string) error

// Spec describes a subcommand that runs one sample.
type Spec struct {
	UsageLine string
	ShortDesc string
	LongDesc  string

	// MinArgs and MaxArgs bound the number of positional arguments. MaxArgs < 0
	// means unbounded.
	MinArgs int
	MaxArgs int

	// NeedsProject adds the -project flag and resolves Run.ProjectID before
	// Exec is called.
	NeedsProject bool

	// Exec runs the sample. Used when Build is nil.
	Exec Exec

	// Build registers the command specific flags and returns the function
	// running the sample. It is called once per invocation, so flag values
	// can be captured by the returned closure.
	Build func(fs *flag.FlagSet) Exec
}

// Command returns the subcommand described by s.
func (s Spec) Command() *subcommands.Command {
	long := s.LongDesc
	if long == "" {
		long = s.ShortDesc
	}
	return &subcommands.Command{
		UsageLine: s.UsageLine,
		ShortDesc: s.ShortDesc,
		LongDesc:  long,
		CommandRun: func() subcommands.CommandRun {
			r := &Run{spec: s}
			r.RegisterBaseFlags()
			if s.NeedsProject {
				r.RegisterProjectFlag()
			}
			if s.Build != nil {
				r.exec = s.Build(&r.Flags)
			} else {
				r.exec = s.Exec
			}
			return r
		},
	}
}

// Run is the subcommands.CommandRun of a Spec.
type Run struct {
	BaseRun

	// ProjectID is the resolved Cloud project if Spec.NeedsProject is set.
	ProjectID string

	spec Spec
	exec Exec
}

// Run implements subcommands.CommandRun.
func (r *Run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if !r.CheckArgs(args, r.spec.MinArgs, r.spec.MaxArgs, r.spec.UsageLine) {
		return ExitUsage
	}
	ctx := cli.GetContext(a, r, env)
	if r.spec.NeedsProject {
		var err error
		if r.ProjectID, err = r.Project(ctx); err != nil {
			return r.Done(ctx, err)
		}
	}
	err := r.exec(ctx, r, args)
	if errors.Is(err, ErrUsage) {
		return r.UsageError("%s\nusage: %s", err, r.spec.UsageLine)
	}
	return r.Done(ctx, err)
}

// WithClient returns an Exec that creates a Cloud client for the resolved
// project, runs f with it and closes it.
func WithClient[C io.Closer](newClient func(ctx context.Context, project string) (C, error), f func(ctx context.Context, r *Run, client C, args []string) error) Exec {
	return func(ctx context.Context, r *Run, args []string) error {
		client, err := newClient(ctx, r.ProjectID)
		if err != nil {
			return errors.Annotate(err, "creating client").Err()
		}
		defer client.Close()
		return f(ctx, r, client, args)
	}
}

// ErrUsage can be wrapped by an Exec to signal bad command line usage.
var ErrUsage = errors.New("bad usage")

// Application returns the CLI application with the given subcommands.
func Application(name, title string, cmds ...*subcommands.Command) *cli.Application {
	logCfg := gologger.LoggerConfig{Out: os.Stderr}
	return &cli.Application{
		Name:  name,
		Title: title,
		Context: func(ctx context.Context) context.Context {
			return logCfg.Use(ctx)
		},
		Commands: append(cmds, subcommands.CmdHelp),
	}
}
