// Package storage caches CORA entries as one JSON file per day under
// <dir>/YYYY/MM/DD.json.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Tiliavir/cora-hours/internal/model"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

// dayFilePath returns the path for the given YYYY-MM-DD date's JSON file.
func dayFilePath(base, date string) (string, error) {
	t, err := timecalc.ParseDate(timecalc.DateKey(date))
	if err != nil {
		return "", err
	}
	return filepath.Join(base, t.Format("2006"), t.Format("01"), t.Format("02")+".json"), nil
}

// LoadDay loads the DayFile for the given date. Returns an empty DayFile if not found.
func LoadDay(base, date string) (model.DayFile, error) {
	path, err := dayFilePath(base, date)
	if err != nil {
		return model.DayFile{}, err
	}
	key := timecalc.DateKey(date)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.DayFile{Date: key, Entries: []model.Entry{}}, nil
	}
	if err != nil {
		return model.DayFile{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var df model.DayFile
	if err := json.Unmarshal(data, &df); err != nil {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return model.DayFile{}, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	if df.Entries == nil {
		df.Entries = []model.Entry{}
	}
	return df, nil
}

// SaveDay atomically writes a DayFile. An empty day removes the file.
func SaveDay(base string, df model.DayFile) error {
	path, err := dayFilePath(base, df.Date)
	if err != nil {
		return err
	}
	if len(df.Entries) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("storage error removing %s: %w", path, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// Files is the day-file cache.
type Files struct {
	dir string
}

// NewFiles returns a cache rooted at dir.
func NewFiles(dir string) *Files {
	return &Files{dir: dir}
}

// Dir returns the cache root.
func (f *Files) Dir() string {
	return f.dir
}

// Entries returns every cached entry, ordered by date, start time and id.
func (f *Files) Entries(ctx context.Context) ([]model.Entry, error) {
	days, err := f.days()
	if err != nil {
		return nil, err
	}
	var entries []model.Entry
	for _, date := range days {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		df, err := LoadDay(f.dir, date)
		if err != nil {
			return nil, err
		}
		entries = append(entries, df.Entries...)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.ID < b.ID
	})
	return entries, nil
}

// Upsert stores e in the file of its date, replacing any entry with the same
// id. An entry whose date changed is moved out of its old day file.
func (f *Files) Upsert(ctx context.Context, e model.Entry) error {
	e.Date = timecalc.DateKey(e.Date)
	if _, err := timecalc.ParseDate(e.Date); err != nil {
		return fmt.Errorf("entry #%d: %w", e.ID, err)
	}

	old, found, err := f.locate(ctx, e.ID)
	if err != nil {
		return err
	}
	if found && old != e.Date {
		if err := f.remove(old, e.ID); err != nil {
			return err
		}
	}

	df, err := LoadDay(f.dir, e.Date)
	if err != nil {
		return err
	}
	df.Date = e.Date
	for i, existing := range df.Entries {
		if existing.ID == e.ID {
			df.Entries[i] = e
			return SaveDay(f.dir, df)
		}
	}
	df.Entries = append(df.Entries, e)
	return SaveDay(f.dir, df)
}

// Delete removes the entry with the given id. Unknown ids are not an error.
func (f *Files) Delete(ctx context.Context, id int64) error {
	date, found, err := f.locate(ctx, id)
	if err != nil || !found {
		return err
	}
	return f.remove(date, id)
}

func (f *Files) remove(date string, id int64) error {
	df, err := LoadDay(f.dir, date)
	if err != nil {
		return err
	}
	kept := df.Entries[:0]
	for _, e := range df.Entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	df.Entries = kept
	return SaveDay(f.dir, df)
}

// locate returns the date of the day file holding id.
func (f *Files) locate(ctx context.Context, id int64) (string, bool, error) {
	days, err := f.days()
	if err != nil {
		return "", false, err
	}
	for _, date := range days {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		df, err := LoadDay(f.dir, date)
		if err != nil {
			return "", false, err
		}
		for _, e := range df.Entries {
			if e.ID == id {
				return date, true, nil
			}
		}
	}
	return "", false, nil
}

// days lists the dates that have a day file, ascending.
func (f *Files) days() ([]string, error) {
	var days []string
	err := filepath.WalkDir(f.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == f.dir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		rel, err := filepath.Rel(f.dir, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(strings.TrimSuffix(rel, ".json")), "/")
		if len(parts) != 3 {
			return nil
		}
		date := parts[0] + "-" + parts[1] + "-" + parts[2]
		if _, err := timecalc.ParseDate(date); err != nil {
			return nil
		}
		days = append(days, date)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage error listing %s: %w", f.dir, err)
	}
	sort.Strings(days)
	return days, nil
}
