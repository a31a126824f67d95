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

	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
)

// Separator é o delimitador de campos das linhas persistidas.
const Separator = ","

// Codec converte um registro de/para os campos de uma linha.
type Codec[T any] interface {
	Name() string
	Fields() int
	Decode(fields []string) (T, error)
	Encode(rec T) []string
}

// FlatFileStore guarda um registro por linha. Load ignora linhas em branco e
// pula (registrando no log) linhas malformadas; Save reescreve o arquivo inteiro.
type FlatFileStore[T any] struct {
	path   string
	codec  Codec[T]
	logger pkgApp.AppLogger
}

func NewFlatFileStore[T any](path string, codec Codec[T], logger pkgApp.AppLogger) *FlatFileStore[T] {
	return &FlatFileStore[T]{
		path:   path,
		codec:  codec,
		logger: logger,
	}
}

func (s *FlatFileStore[T]) Path() string {
	return s.path
}

// Load devolve lista vazia, sem erro, quando o arquivo não existe.
func (s *FlatFileStore[T]) Load(ctx context.Context) ([]T, error) {
	file, err := os.Open(s.path)
	if err != nil {
		pkgApp.LogError(ctx, s.logger, "Could not open file "+s.path, err, nil)
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return []T{}, err
	}
	defer file.Close()

	records := []T{}
	scanner := bufio.NewScanner(file)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		if ctx.Err() != nil {
			return records, ctx.Err()
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		fields := strings.Split(line, Separator)
		if len(fields) != s.codec.Fields() {
			s.lineError(ctx, lineNumber, fmt.Sprintf("Expected %d fields, got %d", s.codec.Fields(), len(fields)))
			continue
		}

		rec, err := s.codec.Decode(fields)
		if err != nil {
			s.lineError(ctx, lineNumber, "Parsing error: "+err.Error())
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		pkgApp.LogError(ctx, s.logger, "error reading "+s.path, err, nil)
		return records, err
	}

	pkgApp.LogInfo(ctx, s.logger, fmt.Sprintf("Loaded %d %s from %s", len(records), s.codec.Name(), s.path), map[string]interface{}{
		"count": len(records),
	})
	return records, nil
}

// Save grava num arquivo temporário no mesmo diretório e renomeia por cima do
// original, de forma que uma falha no meio não trunca os dados anteriores.
func (s *FlatFileStore[T]) Save(ctx context.Context, records []T) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		pkgApp.LogError(ctx, s.logger, "Could not open file "+s.path+" for writing", err, nil)
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.WriteString(strings.Join(s.codec.Encode(rec), Separator) + "\n"); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		pkgApp.LogError(ctx, s.logger, "error replacing "+s.path, err, nil)
		return err
	}

	pkgApp.LogDebug(ctx, s.logger, fmt.Sprintf("Successfully saved %d %s to %s", len(records), s.codec.Name(), s.path), nil)
	return nil
}

func (s *FlatFileStore[T]) lineError(ctx context.Context, lineNumber int, msg string) {
	pkgApp.LogError(ctx, s.logger, fmt.Sprintf("Error in %s at line %d: %s", s.path, lineNumber, msg), nil, map[string]interface{}{
		"file": s.path,
		"line": lineNumber,
	})
}
