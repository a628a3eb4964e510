package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/matsen/cliprdf/internal/export"
	"github.com/matsen/cliprdf/internal/storage"
)

// Processor converts clipboard texts into files under OutputDir and
// records each one in the history.
type Processor struct {
	Converter   *Converter
	OutputDir   string
	HistoryPath string      // JSONL log; empty disables history
	DB          *storage.DB // Optional search index kept in step with the log
	Log         logrus.FieldLogger

	now func() time.Time
}

// Handle converts text and writes the result. It returns the written
// entry; on failure it logs and returns the error. A file whose history
// entry cannot be recorded is removed again.
func (p *Processor) Handle(text string) (*storage.Entry, error) {
	log := p.logger()

	res, err := p.Converter.Convert(text)
	for _, irr := range res.Irregularities {
		log.WithFields(logrus.Fields{
			"line": irr.Line,
			"char": irr.Char,
		}).Warn(irr.Hint)
	}
	if err != nil {
		log.WithError(err).Warn("Citation not converted")
		return nil, err
	}

	path, err := p.write(FileName(res.Paper.Title), res.Document)
	if err != nil {
		log.WithError(err).Error("Writing RDF file failed")
		return nil, err
	}

	entry := storage.Entry{
		Paper:       res.Paper,
		File:        path,
		ConvertedAt: p.clock().UTC(),
	}
	if err := p.record(&entry); err != nil {
		log.WithError(err).Error("Recording history failed")
		if rmErr := os.Remove(path); rmErr != nil {
			log.WithError(rmErr).WithField("file", path).Warn("Removing unrecorded file failed")
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"id":      entry.ID,
		"file":    path,
		"authors": len(res.Paper.Authors),
	}).Info("Exported citation")
	return &entry, nil
}

// Handler adapts Handle to the watcher callback.
func (p *Processor) Handler(text string) error {
	_, err := p.Handle(text)
	return err
}

// write stores doc under OutputDir without overwriting existing files.
func (p *Processor) write(name, doc string) (string, error) {
	dir := p.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	candidate := name
	for n := 2; ; n++ {
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			candidate = numbered(name, n)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating %s: %w", path, err)
		}
		if _, err := f.WriteString(doc); err != nil {
			f.Close()
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		return path, f.Close()
	}
}

func (p *Processor) record(e *storage.Entry) error {
	if p.HistoryPath == "" {
		e.ID = export.CiteKey(e.Paper)
		return nil
	}

	existing, err := storage.ReadAll(p.HistoryPath)
	if err != nil {
		return err
	}
	e.ID = storage.GenerateUniqueID(existing, export.CiteKey(e.Paper))

	if err := storage.Append(p.HistoryPath, *e); err != nil {
		return err
	}
	if p.DB != nil {
		// The log is already written; the index can be rebuilt from it.
		if err := p.DB.Insert(*e); err != nil {
			p.logger().WithError(err).WithField("id", e.ID).Warn("Indexing entry failed; run rebuild")
		}
	}
	return nil
}

func (p *Processor) logger() logrus.FieldLogger {
	if p.Log == nil {
		return logrus.StandardLogger()
	}
	return p.Log
}

func (p *Processor) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}
