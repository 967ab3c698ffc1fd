package session

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rxtech-lab/crossover-trader/internal/logger"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"

	StatsFileName  = "stats.yaml"
	TradesFileName = "trades.parquet"
)

var runFolderPattern = regexp.MustCompile(`^run_(\d+)$`)

// SessionManager owns the output folder of one bot run:
//
//	{dataOutputPath}/{YYYY-MM-DD}/run_N/
//
// The run number is chosen once at startup. When the day changes the same run
// number continues under the new date folder.
type SessionManager struct {
	dataOutputPath string
	runID          string
	runNumber      int
	sessionStart   time.Time
	currentDate    string
	currentRunPath string
	now            func() time.Time
	mu             sync.Mutex
	logger         *logger.Logger
}

// NewSessionManager creates a new SessionManager instance.
func NewSessionManager(log *logger.Logger) *SessionManager {
	return &SessionManager{
		dataOutputPath: "",
		runID:          "",
		runNumber:      0,
		sessionStart:   time.Time{},
		currentDate:    "",
		currentRunPath: "",
		now:            time.Now,
		mu:             sync.Mutex{},
		logger:         log,
	}
}

// Initialize picks the next free run number for today and creates the run folder.
func (s *SessionManager) Initialize(dataOutputPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataOutputPath = dataOutputPath
	s.sessionStart = s.now()
	s.currentDate = s.sessionStart.Format(dateLayout)

	runs, err := listRuns(filepath.Join(s.dataOutputPath, s.currentDate))
	if err != nil {
		return err
	}

	s.runNumber = 1
	if len(runs) > 0 {
		s.runNumber = runs[len(runs)-1] + 1
	}

	s.runID = "run_" + strconv.Itoa(s.runNumber)

	if err := s.createRunFolder(); err != nil {
		return err
	}

	s.logger.Info("Session initialized",
		zap.String("run_id", s.runID),
		zap.String("date", s.currentDate),
		zap.String("path", s.currentRunPath),
	)

	return nil
}

// createRunFolder creates the folder for the current date and run.
//
//nolint:funcorder // helper method used by Initialize and HandleDateBoundary
func (s *SessionManager) createRunFolder() error {
	s.currentRunPath = filepath.Join(s.dataOutputPath, s.currentDate, s.runID)

	if err := os.MkdirAll(s.currentRunPath, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeSessionFailed, err, "failed to create run folder %s", s.currentRunPath)
	}

	return nil
}

// HandleDateBoundary moves the session to a new date folder when timestamp falls on
// a different day. Returns true when a new folder was created.
func (s *SessionManager) HandleDateBoundary(timestamp time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newDate := timestamp.Format(dateLayout)
	if newDate == s.currentDate {
		return false, nil
	}

	oldDate := s.currentDate
	s.currentDate = newDate

	if err := s.createRunFolder(); err != nil {
		return false, err
	}

	s.logger.Info("Date boundary crossed, created new folder",
		zap.String("old_date", oldDate),
		zap.String("new_date", newDate),
		zap.String("run_id", s.runID),
		zap.String("new_path", s.currentRunPath),
	)

	return true, nil
}

// GetCurrentRunPath returns the current run folder path.
func (s *SessionManager) GetCurrentRunPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentRunPath
}

// GetRunID returns the session run ID (e.g., "run_1").
func (s *SessionManager) GetRunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runID
}

// GetSessionStart returns the session start time.
func (s *SessionManager) GetSessionStart() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessionStart
}

// GetCurrentDate returns the current date in YYYY-MM-DD format.
func (s *SessionManager) GetCurrentDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentDate
}

// GetFilePath returns the full path for a file in the current run folder.
func (s *SessionManager) GetFilePath(filename string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return filepath.Join(s.currentRunPath, filename)
}

// ListSessionsForDate returns the run IDs recorded for date, in run order.
func (s *SessionManager) ListSessionsForDate(date string) ([]string, error) {
	runs, err := listRuns(filepath.Join(s.dataOutputPath, date))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(runs))
	for _, n := range runs {
		ids = append(ids, "run_"+strconv.Itoa(n))
	}

	return ids, nil
}

// listRuns returns the sorted run numbers found in datePath. A missing folder has no runs.
func listRuns(datePath string) ([]int, error) {
	entries, err := os.ReadDir(datePath)
	if os.IsNotExist(err) {
		return []int{}, nil
	}

	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeSessionFailed, err, "failed to read date directory %s", datePath)
	}

	runs := make([]int, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		matches := runFolderPattern.FindStringSubmatch(entry.Name())
		if len(matches) != 2 {
			continue
		}

		num, err := strconv.Atoi(matches[1])
		if err != nil {
			continue
		}

		runs = append(runs, num)
	}

	sort.Ints(runs)

	return runs, nil
}
