package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"github.com/blacktop/devirt/internal/db"
	"github.com/blacktop/devirt/internal/model"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
)

// OutputPath is where a restored snapshot of path is written in dir.
func OutputPath(dir, path string) string {
	base := filepath.Base(path)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".devirt.yml")
}

type saveSink struct {
	dir string
}

// NewSaveSink writes every module with restored methods to dir.
func NewSaveSink(dir string) Sink {
	s := &saveSink{dir: dir}
	return NewSinkFunc("save", func(*Config) bool { return dir != "" }, s.consume)
}

func (s *saveSink) consume(_ context.Context, r *Report) error {
	if r.Module == nil || r.Outcome == nil || r.Outcome.Converted == 0 {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	out := OutputPath(s.dir, r.Path)
	if err := snapshot.Save(r.Module, out); err != nil {
		return err
	}
	log.WithField("path", out).Info("Saved restored module")
	return nil
}

// NewDBSink records every report in d under the run runID.
func NewDBSink(d db.Database, runID uint) Sink {
	return NewSinkFunc("database", nil, func(_ context.Context, r *Report) error {
		return d.Create(ToModel(r, runID))
	})
}

// ToModel converts a report to its database record.
func ToModel(r *Report, runID uint) *model.Module {
	m := &model.Module{
		RunID:  runID,
		Path:   r.Path,
		Name:   filepath.Base(r.Path),
		VMName: r.VMName,
	}
	if r.Module != nil {
		m.Name = r.Module.Name()
	}
	if r.Err != nil {
		m.Error = r.Err.Error()
	}
	if r.Outcome == nil {
		return m
	}
	if r.Outcome.Catalog != nil {
		m.Catalog = r.Outcome.Catalog.String()
	}
	m.Converted = r.Outcome.Converted
	m.Warned = r.Outcome.Warned
	m.Skipped = r.Outcome.Skipped
	m.ResourceRemoved = r.Outcome.ResourceRemoved
	for _, mo := range r.Outcome.Methods {
		meth := model.Method{
			Token:    mo.Token,
			GUID:     mo.GUID.String(),
			Name:     mo.Name,
			Restored: mo.Restored,
			Skipped:  mo.Skipped,
			Warnings: strings.Join(mo.Warnings, "\n"),
		}
		if mo.Err != nil {
			meth.Error = mo.Err.Error()
		}
		m.Methods = append(m.Methods, meth)
	}
	return m
}
