/*
 * Copyright 2025 SREDiag Authors
 * Copyright 2023 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logging builds the logrus loggers used by shmopen binaries.
package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/valyala/bytebufferpool"
)

var (
	magenta = string([]byte{27, 91, 57, 53, 109}) // Trace
	green   = string([]byte{27, 91, 57, 50, 109}) // Debug
	blue    = string([]byte{27, 91, 57, 52, 109}) // Info
	yellow  = string([]byte{27, 91, 57, 51, 109}) // Warn
	red     = string([]byte{27, 91, 57, 49, 109}) // Error
	reset   = string([]byte{27, 91, 48, 109})
)

const timeLayout = "2006-01-02 15:04:05.999999"

func levelStyle(l logrus.Level) (color, name string) {
	switch l {
	case logrus.TraceLevel:
		return magenta, "Trace"
	case logrus.DebugLevel:
		return green, "Debug"
	case logrus.InfoLevel:
		return blue, "Info"
	case logrus.WarnLevel:
		return yellow, "Warn"
	case logrus.ErrorLevel:
		return red, "Error"
	case logrus.FatalLevel:
		return red, "Fatal"
	default:
		return red, "Panic"
	}
}

// Formatter writes "Level time file:line name message k=v..." lines,
// colored by level when Color is set.
type Formatter struct {
	Name  string
	Color bool
}

func (f *Formatter) Format(e *logrus.Entry) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	color, name := levelStyle(e.Level)
	if f.Color {
		_, _ = buf.WriteString(color)
	}
	_, _ = buf.WriteString(name)
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(e.Time.Format(timeLayout))
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(location(e))
	if f.Name != "" {
		_ = buf.WriteByte(' ')
		_, _ = buf.WriteString(f.Name)
	}
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_ = buf.WriteByte(' ')
		_, _ = buf.WriteString(k)
		_ = buf.WriteByte('=')
		_, _ = fmt.Fprint(buf, e.Data[k])
	}
	if f.Color {
		_, _ = buf.WriteString(reset)
	}
	_ = buf.WriteByte('\n')

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

func location(e *logrus.Entry) string {
	if !e.HasCaller() {
		return "???:0"
	}
	return filepath.Base(e.Caller.File) + ":" + strconv.Itoa(e.Caller.Line)
}

// Silent is the level that suppresses everything short of a panic.
const Silent = logrus.PanicLevel

// ParseLevel accepts logrus level names, "silent", or the numeric levels
// 0 (trace) through 5 (silent).
func ParseLevel(s string) (logrus.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "0":
		return logrus.TraceLevel, nil
	case "1":
		return logrus.DebugLevel, nil
	case "2":
		return logrus.InfoLevel, nil
	case "3":
		return logrus.WarnLevel, nil
	case "4":
		return logrus.ErrorLevel, nil
	case "5", "silent", "off":
		return Silent, nil
	}
	l, err := logrus.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// New returns a logger writing to out at level.
func New(out io.Writer, level, name string, color bool) (*logrus.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.Out = out
	logger.SetLevel(l)
	logger.SetReportCaller(true)
	logger.SetFormatter(&Formatter{Name: name, Color: color})
	return logger, nil
}

// Discard returns a logger that writes nothing.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	logger.SetLevel(Silent)
	return logger
}
