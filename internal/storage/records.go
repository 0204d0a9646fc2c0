package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"daybook/internal/task"
)

type ClockSize string

const (
	ClockNone   ClockSize = "none"
	ClockSmall  ClockSize = "small"
	ClockMedium ClockSize = "medium"
	ClockLarge  ClockSize = "large"
)

var ClockSizes = []ClockSize{ClockNone, ClockSmall, ClockMedium, ClockLarge}

const (
	MinClockOpacity = 20
	MaxClockOpacity = 100
)

// Settings are the display preferences kept next to the task list.
type Settings struct {
	ClockSize    ClockSize
	ClockOpacity int
	NormalSort   task.SortMode
}

func DefaultSettings() Settings {
	return Settings{
		ClockSize:    ClockMedium,
		ClockOpacity: MaxClockOpacity,
		NormalSort:   task.SortCreated,
	}
}

// LoadTasks reads the task list. A missing or malformed record yields an
// empty list; malformed data is logged, not returned as an error.
func (s *Store) LoadTasks() ([]task.Task, error) {
	raw, ok, err := s.Get(KeyTodos)
	if err != nil || !ok {
		return nil, err
	}
	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.logger.Warn("ignoring malformed task list", slog.String("error", err.Error()))
		return nil, nil
	}
	seen := make(map[string]struct{}, len(tasks))
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID == "" {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			s.logger.Warn("dropping duplicate task id", slog.String("id", t.ID))
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, task.Normalize(t))
	}
	return out, nil
}

func (s *Store) SaveTasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return s.Set(KeyTodos, string(data))
}

func (s *Store) LoadSettings() (Settings, error) {
	cfg := DefaultSettings()

	if v, ok, err := s.Get(KeyClockSize); err != nil {
		return cfg, err
	} else if ok {
		if size, valid := parseClockSize(v); valid {
			cfg.ClockSize = size
		} else {
			s.logger.Warn("ignoring malformed setting", slog.String("key", KeyClockSize), slog.String("value", v))
		}
	}

	if v, ok, err := s.Get(KeyClockOpacity); err != nil {
		return cfg, err
	} else if ok {
		n, perr := strconv.Atoi(v)
		if perr == nil && n >= MinClockOpacity && n <= MaxClockOpacity {
			cfg.ClockOpacity = n
		} else {
			s.logger.Warn("ignoring malformed setting", slog.String("key", KeyClockOpacity), slog.String("value", v))
		}
	}

	if v, ok, err := s.Get(KeyNormalSort); err != nil {
		return cfg, err
	} else if ok {
		if mode, valid := task.ParseSortMode(v); valid {
			cfg.NormalSort = mode
		} else {
			s.logger.Warn("ignoring malformed setting", slog.String("key", KeyNormalSort), slog.String("value", v))
		}
	}
	return cfg, nil
}

func (s *Store) SaveSettings(cfg Settings) error {
	if err := s.Set(KeyClockSize, string(cfg.ClockSize)); err != nil {
		return err
	}
	if err := s.Set(KeyClockOpacity, strconv.Itoa(cfg.ClockOpacity)); err != nil {
		return err
	}
	return s.Set(KeyNormalSort, string(cfg.NormalSort))
}

// LoadFocusLock returns the persisted mode flag and password hash.
func (s *Store) LoadFocusLock() (bool, string, error) {
	mode, ok, err := s.Get(KeySabotageMode)
	if err != nil {
		return false, "", err
	}
	enabled := false
	if ok {
		enabled, err = strconv.ParseBool(mode)
		if err != nil {
			s.logger.Warn("ignoring malformed setting", slog.String("key", KeySabotageMode), slog.String("value", mode))
			enabled = false
		}
	}
	hash, _, err := s.Get(KeySabotagePassword)
	if err != nil {
		return false, "", err
	}
	return enabled, hash, nil
}

func (s *Store) SaveFocusLock(enabled bool, hash string) error {
	if err := s.Set(KeySabotageMode, strconv.FormatBool(enabled)); err != nil {
		return err
	}
	if hash == "" {
		return s.Delete(KeySabotagePassword)
	}
	return s.Set(KeySabotagePassword, hash)
}

func parseClockSize(v string) (ClockSize, bool) {
	for _, size := range ClockSizes {
		if string(size) == v {
			return size, true
		}
	}
	return "", false
}
