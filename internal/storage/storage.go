package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/plan"
)

// Storage is the local journal of finished workouts.
type Storage struct {
	mu      sync.Mutex
	dataDir string
	now     func() time.Time
}

func New() (*Storage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewAt(filepath.Join(homeDir, ".coachlix"))
}

// NewAt keeps the journal in dataDir, creating it when needed.
func NewAt(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &Storage{dataDir: dataDir, now: time.Now}, nil
}

func (s *Storage) historyFile() string {
	return filepath.Join(s.dataDir, "history.json")
}

// NewEntry builds a journal record for a workout finished at completedAt.
func NewEntry(addr plan.WorkoutAddress, workoutName string, summary models.WorkoutSummary, completedAt time.Time) models.HistoryEntry {
	local := completedAt.Local()
	year, week := local.ISOWeek()
	return models.HistoryEntry{
		ID:          uuid.New().String(),
		PlanID:      addr.PlanID,
		WeekNumber:  addr.Week,
		DayNumber:   addr.Day,
		WorkoutName: workoutName,
		CompletedAt: completedAt,
		Date:        local.Format("2006-01-02"),
		Week:        week,
		Month:       local.Format("2006-01"),
		Year:        year,
		Summary:     summary,
	}
}

// AppendHistory adds entry to the journal, assigning an id when it has none.
func (s *Storage) AppendHistory(entry models.HistoryEntry) (models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readHistory()
	if err != nil {
		return entry, err
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return entry, err
	}
	if err := os.WriteFile(s.historyFile(), data, 0644); err != nil {
		return entry, fmt.Errorf("writing history: %w", err)
	}
	return entry, nil
}

func (s *Storage) GetHistory() ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readHistory()
}

func (s *Storage) readHistory() ([]models.HistoryEntry, error) {
	data, err := os.ReadFile(s.historyFile())
	if err != nil {
		if os.IsNotExist(err) {
			return []models.HistoryEntry{}, nil
		}
		return nil, err
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	return entries, nil
}

// RecentHistory returns up to n entries, newest first.
func (s *Storage) RecentHistory(n int) ([]models.HistoryEntry, error) {
	entries, err := s.GetHistory()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CompletedAt.After(entries[j].CompletedAt)
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func (s *Storage) GetHistoryByDate(date string) ([]models.HistoryEntry, error) {
	return s.filter(func(e models.HistoryEntry) bool { return e.Date == date })
}

func (s *Storage) GetWeekHistory(year int, week int) ([]models.HistoryEntry, error) {
	return s.filter(func(e models.HistoryEntry) bool { return e.Year == year && e.Week == week })
}

func (s *Storage) filter(keep func(models.HistoryEntry) bool) ([]models.HistoryEntry, error) {
	all, err := s.GetHistory()
	if err != nil {
		return nil, err
	}
	var entries []models.HistoryEntry
	for _, e := range all {
		if keep(e) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *Storage) GetDayStats(date string) (models.DayStats, error) {
	entries, err := s.GetHistoryByDate(date)
	if err != nil {
		return models.DayStats{}, err
	}
	return dayStats(date, entries), nil
}

func dayStats(date string, entries []models.HistoryEntry) models.DayStats {
	stats := models.DayStats{Date: date, Entries: entries}
	for _, e := range entries {
		stats.Workouts++
		stats.TotalMinutes += e.Summary.DurationMinutes
		stats.TotalSets += e.Summary.TotalSets
	}
	return stats
}

// GetWeekStats aggregates an ISO week. Daily stats are ordered by date.
func (s *Storage) GetWeekStats(year int, week int) (models.WeekStats, error) {
	entries, err := s.GetWeekHistory(year, week)
	if err != nil {
		return models.WeekStats{}, err
	}

	stats := models.WeekStats{Week: week, Year: year}
	byDate := make(map[string][]models.HistoryEntry)
	for _, e := range entries {
		stats.Workouts++
		stats.TotalMinutes += e.Summary.DurationMinutes
		stats.TotalSets += e.Summary.TotalSets
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		stats.DailyStats = append(stats.DailyStats, dayStats(date, byDate[date]))
	}
	return stats, nil
}

// CurrentWeekStats is GetWeekStats for the ISO week containing today.
func (s *Storage) CurrentWeekStats() (models.WeekStats, error) {
	year, week := s.now().ISOWeek()
	return s.GetWeekStats(year, week)
}

func (s *Storage) ResetAllData() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.historyFile()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func formatMinutes(total int) string {
	if h := total / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, total%60)
	}
	return fmt.Sprintf("%dm", total)
}

// ExportReport renders the journal as a plain-text report.
func (s *Storage) ExportReport() (string, error) {
	entries, err := s.RecentHistory(-1)
	if err != nil {
		return "", err
	}

	now := s.now()
	var b strings.Builder
	fmt.Fprintf(&b, "Coachlix - Training Report\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("January 2, 2006 3:04 PM"))
	fmt.Fprintf(&b, "==========================\n\n")

	totalMinutes, totalSets := 0, 0
	for _, e := range entries {
		totalMinutes += e.Summary.DurationMinutes
		totalSets += e.Summary.TotalSets
	}
	fmt.Fprintf(&b, "OVERALL\n-------\n")
	fmt.Fprintf(&b, "Workouts: %d\n", len(entries))
	fmt.Fprintf(&b, "Training Time: %s\n", formatMinutes(totalMinutes))
	fmt.Fprintf(&b, "Sets: %d\n", totalSets)
	if len(entries) > 0 {
		fmt.Fprintf(&b, "Average Workout: %d minutes\n", totalMinutes/len(entries))
	}
	b.WriteString("\n")

	week, err := s.CurrentWeekStats()
	if err == nil && week.Workouts > 0 {
		fmt.Fprintf(&b, "CURRENT WEEK (Week %d, %d)\n", week.Week, week.Year)
		fmt.Fprintf(&b, "------------------------\n")
		for _, day := range week.DailyStats {
			date, _ := time.Parse("2006-01-02", day.Date)
			fmt.Fprintf(&b, "  %s: %d workouts, %d sets (%s)\n",
				date.Format("Monday"), day.Workouts, day.TotalSets, formatMinutes(day.TotalMinutes))
		}
		b.WriteString("\n")
	}

	if len(entries) > 0 {
		fmt.Fprintf(&b, "WORKOUTS\n--------\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "  %s  %-24s week %d day %d  %d/%d exercises  %d sets  %s\n",
				e.Date, e.WorkoutName, e.WeekNumber, e.DayNumber,
				e.Summary.CompletedExercises, e.Summary.TotalExercises,
				e.Summary.TotalSets, formatMinutes(e.Summary.DurationMinutes))
		}
	}

	return b.String(), nil
}
