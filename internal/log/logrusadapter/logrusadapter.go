// Copyright The btrdb-go Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logrusadapter provides the default Logger implementation,
// backed by logrus.FieldLogger the same way every cmd/ entrypoint in
// this codebase configures its logging.
package logrusadapter

import (
	"github.com/bombsimon/logrusr/v4"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"

	"github.com/btrdb/btrdb-go/internal/log"
)

// New wraps an existing logrus.FieldLogger as a log.Logger. Passing
// logrus.StandardLogger() matches cmd/btrdbcli's own setup.
func New(entry logrus.FieldLogger) log.Logger {
	return &adapter{entry: entry}
}

// Discard returns a Logger that drops every message, for tests that
// want the full call path exercised without console noise.
func Discard() log.Logger {
	l := logrus.New()
	l.Out = discardWriter{}
	return New(l)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// AsLogr exposes the same underlying logrus instance as a logr.Logger,
// for any dependency in the wider tree (leader-election, controller
// helpers) that is wired to the logr interface rather than this
// package's own Logger.
func AsLogr(entry *logrus.Logger) logr.Logger {
	return logrusr.New(entry)
}

type adapter struct {
	entry  logrus.FieldLogger
	verbosity int
}

func (a *adapter) Infof(format string, args ...interface{}) {
	a.entry.Debugf(format, args...)
}

func (a *adapter) Error(args ...interface{}) {
	a.entry.Error(args...)
}

func (a *adapter) Errorf(format string, args ...interface{}) {
	a.entry.Errorf(format, args...)
}

func (a *adapter) V(level int) log.InfoLogger {
	return &adapter{entry: a.entry, verbosity: level}
}

func (a *adapter) WithPrefix(prefix string) log.Logger {
	return &adapter{entry: a.entry.WithField("component", prefix)}
}
