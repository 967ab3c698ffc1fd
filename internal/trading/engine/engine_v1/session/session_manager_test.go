package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/crossover-trader/internal/logger"
	"github.com/stretchr/testify/suite"
)

type SessionManagerTestSuite struct {
	suite.Suite
	tempDir string
	logger  *logger.Logger
}

func (s *SessionManagerTestSuite) SetupSuite() {
	log, err := logger.NewLogger()
	s.Require().NoError(err)
	s.logger = log
}

func (s *SessionManagerTestSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
}

func TestSessionManagerTestSuite(t *testing.T) {
	suite.Run(t, new(SessionManagerTestSuite))
}

func (s *SessionManagerTestSuite) newManagerAt(now time.Time) *SessionManager {
	sm := NewSessionManager(s.logger)
	sm.now = func() time.Time { return now }

	return sm
}

func (s *SessionManagerTestSuite) TestInitialize_FirstRun() {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	sm := s.newManagerAt(now)

	s.Require().NoError(sm.Initialize(s.tempDir))

	s.Equal("run_1", sm.GetRunID())
	s.Equal(now, sm.GetSessionStart())
	s.Equal("2024-03-10", sm.GetCurrentDate())
	s.Equal(filepath.Join(s.tempDir, "2024-03-10", "run_1"), sm.GetCurrentRunPath())
	s.DirExists(sm.GetCurrentRunPath())
}

func (s *SessionManagerTestSuite) TestInitialize_NextRunAfterHighest() {
	for _, name := range []string{"run_1", "run_3", "run_10", "not_a_run"} {
		s.Require().NoError(os.MkdirAll(filepath.Join(s.tempDir, "2024-03-10", name), 0755))
	}

	// a file named like a run folder is ignored
	s.Require().NoError(os.WriteFile(filepath.Join(s.tempDir, "2024-03-10", "run_99"), []byte("x"), 0644))

	sm := s.newManagerAt(time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local))
	s.Require().NoError(sm.Initialize(s.tempDir))

	s.Equal("run_11", sm.GetRunID())
}

func (s *SessionManagerTestSuite) TestHandleDateBoundary_SameDate() {
	sm := s.newManagerAt(time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local))
	s.Require().NoError(sm.Initialize(s.tempDir))

	changed, err := sm.HandleDateBoundary(time.Date(2024, 3, 10, 23, 59, 0, 0, time.Local))
	s.Require().NoError(err)
	s.False(changed)
}

func (s *SessionManagerTestSuite) TestHandleDateBoundary_NewDate() {
	sm := s.newManagerAt(time.Date(2024, 3, 10, 23, 55, 0, 0, time.Local))
	s.Require().NoError(sm.Initialize(s.tempDir))

	changed, err := sm.HandleDateBoundary(time.Date(2024, 3, 11, 0, 5, 0, 0, time.Local))
	s.Require().NoError(err)
	s.True(changed)

	s.Equal("2024-03-11", sm.GetCurrentDate())
	s.Equal("run_1", sm.GetRunID())
	s.Equal(filepath.Join(s.tempDir, "2024-03-11", "run_1"), sm.GetCurrentRunPath())
	s.DirExists(sm.GetCurrentRunPath())
}

func (s *SessionManagerTestSuite) TestGetFilePath() {
	sm := s.newManagerAt(time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local))
	s.Require().NoError(sm.Initialize(s.tempDir))

	s.Equal(filepath.Join(s.tempDir, "2024-03-10", "run_1", StatsFileName), sm.GetFilePath(StatsFileName))
}

func (s *SessionManagerTestSuite) TestListSessionsForDate() {
	for _, name := range []string{"run_2", "run_10", "run_1"} {
		s.Require().NoError(os.MkdirAll(filepath.Join(s.tempDir, "2024-03-10", name), 0755))
	}

	sm := s.newManagerAt(time.Date(2024, 3, 12, 8, 0, 0, 0, time.Local))
	s.Require().NoError(sm.Initialize(s.tempDir))

	runs, err := sm.ListSessionsForDate("2024-03-10")
	s.Require().NoError(err)
	s.Equal([]string{"run_1", "run_2", "run_10"}, runs)

	runs, err = sm.ListSessionsForDate("2023-01-01")
	s.Require().NoError(err)
	s.Empty(runs)
}
