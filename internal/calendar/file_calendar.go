package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileCalendar implements Calendar using a local text file of extra holidays
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	holidays []Holiday
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
	}
}

// Load loads holiday data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	var holidays []Holiday
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: MM-DD [name]
		// Example: 12-24 Božični večer
		parts := strings.SplitN(line, " ", 2)

		date, err := time.Parse("01-02", parts[0])
		if err != nil {
			fc.logger.Warn("Failed to parse holiday date",
				zap.String("line", line),
				zap.Error(err))
			continue
		}

		name := ""
		if len(parts) == 2 {
			name = strings.TrimSpace(parts[1])
		}

		holidays = append(holidays, Holiday{
			Month: date.Month(),
			Day:   date.Day(),
			Name:  name,
		})
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fc.holidays = holidays

	fc.logger.Info("Holiday file loaded",
		zap.String("file", fc.filePath),
		zap.Int("holidays", len(holidays)))

	return nil
}

// Holidays returns the holidays read by Load
func (fc *FileCalendar) Holidays() []Holiday {
	return fc.holidays
}

// IsEasterMonday always returns false, the file only lists fixed dates
func (fc *FileCalendar) IsEasterMonday(date time.Time) bool {
	return false
}
