package infrastructure

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
)

// DayOffLog acrescenta pedidos de folga em "driverId,date,reason". O motivo é
// o último campo e pode conter vírgulas.
type DayOffLog struct {
	path   string
	logger pkgApp.AppLogger
}

func NewDayOffLog(path string, logger pkgApp.AppLogger) *DayOffLog {
	return &DayOffLog{path: path, logger: logger}
}

func (l *DayOffLog) Append(ctx context.Context, request domain.DayOffRequest) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		pkgApp.LogError(ctx, l.logger, "Could not submit day off request", err, map[string]interface{}{
			"file": l.path,
		})
		return err
	}
	defer file.Close()

	reason := strings.ReplaceAll(request.Reason, "\n", " ")
	if _, err := fmt.Fprintf(file, "%s,%s,%s\n", request.DriverID, request.Date, reason); err != nil {
		return err
	}

	pkgApp.LogInfo(ctx, l.logger, "day off request submitted", map[string]interface{}{
		"driver_id": request.DriverID,
		"date":      request.Date,
	})
	return nil
}

func (l *DayOffLog) List(ctx context.Context) ([]domain.DayOffRequest, error) {
	file, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.DayOffRequest{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	requests := []domain.DayOffRequest{}
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, Separator, 3)
		if len(fields) < 2 {
			pkgApp.LogError(ctx, l.logger, fmt.Sprintf("Error in %s at line %d: Expected 3 fields, got %d", l.path, lineNumber, len(fields)), nil, nil)
			continue
		}
		request := domain.DayOffRequest{DriverID: fields[0], Date: fields[1]}
		if len(fields) == 3 {
			request.Reason = fields[2]
		}
		requests = append(requests, request)
	}
	return requests, scanner.Err()
}
