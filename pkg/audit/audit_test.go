package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RecorderTestSuite struct {
	suite.Suite
	r *Recorder
}

func (s *RecorderTestSuite) SetupTest() {
	s.r = NewRecorder(0)
}

func (s *RecorderTestSuite) TearDownTest() {
	s.r.Close()
}

func (s *RecorderTestSuite) TestDrainOrder() {
	for _, name := range []string{"/a", "/b", "/c"} {
		s.r.Record(Event{Op: "shm_open", Name: name, Result: "ok"})
	}
	s.Require().Equal(3, s.r.Len())

	first := s.r.Drain(2)
	s.Require().Len(first, 2)
	s.Equal("/a", first[0].Name)
	s.Equal("/b", first[1].Name)
	s.False(first[0].At.IsZero())

	rest := s.r.Drain(0)
	s.Require().Len(rest, 1)
	s.Equal("/c", rest[0].Name)
	s.Nil(s.r.Drain(0))
}

func (s *RecorderTestSuite) TestWait() {
	_, ok := s.r.Wait(5 * time.Millisecond)
	s.False(ok)

	go s.r.Record(Event{Op: "shm_unlink", Name: "/x", Err: errors.New("boom")})
	e, ok := s.r.Wait(time.Second)
	s.Require().True(ok)
	s.Equal("/x", e.Name)
	s.True(e.Failed())
}

func (s *RecorderTestSuite) TestRecordAfterClose() {
	s.False(s.r.Closed())
	s.r.Close()
	s.True(s.r.Closed())
	s.r.Record(Event{Op: "shm_open", Name: "/late"})
	s.Equal(uint64(1), s.r.Dropped())
}

func TestRecorderTestSuite(t *testing.T) {
	suite.Run(t, new(RecorderTestSuite))
}
