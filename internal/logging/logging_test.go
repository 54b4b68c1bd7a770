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

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type LoggingTestSuite struct {
	suite.Suite
}

func (s *LoggingTestSuite) TestParseLevel() {
	cases := map[string]logrus.Level{
		"0":      logrus.TraceLevel,
		"3":      logrus.WarnLevel,
		"5":      Silent,
		"silent": Silent,
		"debug":  logrus.DebugLevel,
		" Info ": logrus.InfoLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		s.Require().NoError(err, in)
		s.Equal(want, got, in)
	}
	_, err := ParseLevel("loud")
	s.Error(err)
}

func (s *LoggingTestSuite) TestFormatLine() {
	var out bytes.Buffer
	logger, err := New(&out, "debug", "shmctl", false)
	s.Require().NoError(err)

	logger.WithFields(logrus.Fields{"name": "/seg", "op": "shm_open"}).Debug("opened")
	line := out.String()
	s.True(strings.HasPrefix(line, "Debug "), line)
	s.Contains(line, "logging_test.go:")
	s.Contains(line, " shmctl opened name=/seg op=shm_open\n")
	s.NotContains(line, reset)
}

func (s *LoggingTestSuite) TestColorAndLevelFilter() {
	var out bytes.Buffer
	logger, err := New(&out, "warn", "", true)
	s.Require().NoError(err)

	logger.Info("hidden")
	s.Zero(out.Len())

	logger.WithError(errors.New("boom")).Error("failed")
	line := out.String()
	s.True(strings.HasPrefix(line, red+"Error "), line)
	s.Contains(line, "error=boom")
	s.True(strings.HasSuffix(line, reset+"\n"))
}

func (s *LoggingTestSuite) TestDiscard() {
	logger := Discard()
	logger.Error("nowhere")
	s.Equal(Silent, logger.GetLevel())
}

func TestLoggingTestSuite(t *testing.T) {
	suite.Run(t, new(LoggingTestSuite))
}
