// Package backup takes consistent snapshots of the SQLite booking store on a
// cron schedule. Snapshots are written with VACUUM INTO, which produces a
// compacted copy without blocking readers, and only the newest Keep files are
// retained.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	filePrefix = "kumbayah-"
	fileSuffix = ".db"
	// stampLayout is fixed-width so file names sort chronologically.
	stampLayout = "20060102-150405.000"
)

// Config controls scheduled snapshots. An empty Schedule disables them.
type Config struct {
	Schedule string
	Dir      string
	Keep     int
}

// Enabled reports whether a schedule is configured.
func (c Config) Enabled() bool { return strings.TrimSpace(c.Schedule) != "" }

// ValidateSchedule checks a standard five-field cron spec (descriptors such
// as "@daily" are accepted too).
func ValidateSchedule(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	return nil
}

// Scheduler runs Snapshot + Prune on a cron schedule.
type Scheduler struct {
	db   *gorm.DB
	cfg  Config
	cron *cron.Cron
	now  func() time.Time
}

// New validates cfg and prepares (but does not start) the scheduler.
func New(db *gorm.DB, cfg Config) (*Scheduler, error) {
	if !cfg.Enabled() {
		return nil, errors.New("backup schedule is empty")
	}
	if cfg.Dir == "" {
		return nil, errors.New("backup dir is empty")
	}
	s := &Scheduler{
		db:   db,
		cfg:  cfg,
		cron: cron.New(cron.WithLogger(cronLogger{})),
		now:  time.Now,
	}
	if _, err := s.cron.AddFunc(cfg.Schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", cfg.Schedule, err)
	}
	return s, nil
}

// Start begins running snapshots in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Str("schedule", s.cfg.Schedule).Str("dir", s.cfg.Dir).Int("keep", s.cfg.Keep).Msg("backup scheduler started")
}

// Stop prevents new runs and waits for a running snapshot, or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce takes one snapshot and prunes old ones.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	path, err := Snapshot(ctx, s.db, s.cfg.Dir, s.now())
	if err != nil {
		return "", err
	}
	if _, err := Prune(s.cfg.Dir, s.cfg.Keep); err != nil {
		return path, err
	}
	return path, nil
}

func (s *Scheduler) run() {
	start := time.Now()
	path, err := s.RunOnce(context.Background())
	if err != nil {
		log.Error().Err(err).Str("dir", s.cfg.Dir).Msg("backup failed")
		return
	}
	log.Info().Str("file", path).Dur("took", time.Since(start)).Msg("backup written")
}

// Snapshot writes a consistent copy of db into dir and returns its path.
func Snapshot(ctx context.Context, db *gorm.DB, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filePrefix+now.UTC().Format(stampLayout)+fileSuffix)
	if err := db.WithContext(ctx).Exec("VACUUM INTO ?", path).Error; err != nil {
		return "", fmt.Errorf("vacuum into %s: %w", path, err)
	}
	return path, nil
}

// Prune deletes all but the newest keep snapshots in dir. keep <= 0 keeps
// everything.
func Prune(dir string, keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var snaps []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileSuffix) {
			snaps = append(snaps, name)
		}
	}
	if len(snaps) <= keep {
		return nil, nil
	}
	sort.Strings(snaps)
	var removed []string
	for _, name := range snaps[:len(snaps)-keep] {
		p := filepath.Join(dir, name)
		if err := os.Remove(p); err != nil {
			return removed, err
		}
		removed = append(removed, p)
	}
	return removed, nil
}

// cronLogger routes cron's own messages through zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
