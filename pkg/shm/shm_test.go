package shm

import (
	"errors"
	"io/fs"
	"runtime"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ShmTestSuite struct {
	suite.Suite
}

func (s *ShmTestSuite) SetupTest() {
	requireNamespace(s.T())
}

func (s *ShmTestSuite) TestCreateAbsentName() {
	name := testName(s.T())
	fd, err := Open(name, Create|ReadWrite, 0600)
	s.Require().NoError(err)
	s.GreaterOrEqual(fd, 0)
	s.NoError(Close(fd))
}

func (s *ShmTestSuite) TestExclusiveCreateOnExisting() {
	name := testName(s.T())
	fd, err := Open(name, Create|ReadWrite, 0600)
	s.Require().NoError(err)
	defer Close(fd)

	_, err = Open(name, Create|Exclusive|ReadWrite, 0600)
	s.Require().Error(err)
	s.Equal(KindAlreadyExists, KindOf(err))
	s.True(errors.Is(err, fs.ErrExist))

	var shmErr *Error
	s.Require().True(errors.As(err, &shmErr))
	s.Equal("shm_open", shmErr.Op)
	s.Equal(name, shmErr.Name)
}

func (s *ShmTestSuite) TestUnlinkAbsentName() {
	name := testName(s.T())
	err := Unlink(name)
	s.Require().Error(err)
	s.Equal(KindNotFound, KindOf(err))
	s.True(errors.Is(err, fs.ErrNotExist))
}

func (s *ShmTestSuite) TestCreateUnlinkOpen() {
	name := testName(s.T())
	fd, err := Open(name, Create|ReadWrite, 0600)
	s.Require().NoError(err)
	s.Require().NoError(Close(fd))
	s.Require().NoError(Unlink(name))

	_, err = Open(name, ReadWrite, 0)
	s.Equal(KindNotFound, KindOf(err))
}

func (s *ShmTestSuite) TestFixedName() {
	const name = "/test-shm-1"
	_ = UnlinkIfExists(name)
	defer UnlinkIfExists(name)

	fd, err := Open(name, Create|ReadWrite, 0600)
	s.Require().NoError(err)
	s.GreaterOrEqual(fd, 0)
	defer Close(fd)

	_, err = Open(name, Create|Exclusive, 0600)
	s.Equal(KindAlreadyExists, KindOf(err))
}

func (s *ShmTestSuite) TestMalformedNames() {
	if runtime.GOOS != "linux" {
		s.T().Skip("name rules are platform defined")
	}
	for _, name := range []string{"", "/", "/a/b"} {
		_, err := Open(name, Create|ReadWrite, 0600)
		s.Equal(KindInvalidArgument, KindOf(err), "name %q", name)
		s.Equal(KindInvalidArgument, KindOf(Unlink(name)), "name %q", name)
	}
}

func (s *ShmTestSuite) TestUnlinkKeepsOpenDescriptor() {
	name := testName(s.T())
	f, err := OpenFile(name, Create|ReadWrite, 0600)
	s.Require().NoError(err)
	defer f.Close()
	s.Require().NoError(f.Truncate(8))
	s.Require().NoError(Unlink(name))

	_, err = f.WriteAt([]byte("still ok"), 0)
	s.NoError(err)
}

func (s *ShmTestSuite) TestExistsAndUnlinkIfExists() {
	name := testName(s.T())
	ok, err := Exists(name)
	s.Require().NoError(err)
	s.False(ok)

	fd, err := Open(name, Create|ReadWrite, 0600)
	s.Require().NoError(err)
	s.Require().NoError(Close(fd))

	ok, err = Exists(name)
	s.Require().NoError(err)
	s.True(ok)

	s.NoError(UnlinkIfExists(name))
	s.NoError(UnlinkIfExists(name))
}

func TestShmTestSuite(t *testing.T) {
	suite.Run(t, new(ShmTestSuite))
}
