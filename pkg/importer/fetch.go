package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/OpenTraceLab/jlcimport/pkg/component"
)

// ErrNotFound is returned by fetchers for data that does not exist.
var ErrNotFound = errors.New("not found")

// Fetcher retrieves part documents and model geometry by part id.
type Fetcher interface {
	FetchComponent(ctx context.Context, id string) (*component.Component, error)
	// FetchModel returns the OBJ source of the model with the given uuid.
	FetchModel(ctx context.Context, id, uuid string) ([]byte, error)
}

// File name suffixes of a data directory.
const (
	footprintSuffix = "_footprint.json"
	symbolSuffix    = "_symbol.json"
	modelSuffix     = "_model.obj"
)

// DirFetcher reads parts from a directory holding <id>_footprint.json,
// <id>_symbol.json and <id>_model.obj files.
type DirFetcher struct {
	Dir string
}

// NewDirFetcher returns a fetcher over dir.
func NewDirFetcher(dir string) *DirFetcher {
	return &DirFetcher{Dir: dir}
}

func (d *DirFetcher) file(id, suffix string) string {
	return filepath.Join(d.Dir, id+suffix)
}

func (d *DirFetcher) readDocument(id, suffix string) (*component.Document, error) {
	f, err := os.Open(d.file(id, suffix))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer f.Close()
	doc, err := component.ReadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	return doc, nil
}

// FetchComponent implements Fetcher. The symbol file is optional.
func (d *DirFetcher) FetchComponent(ctx context.Context, id string) (*component.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fp, err := d.readDocument(id, footprintSuffix)
	if err != nil {
		return nil, err
	}
	sym, err := d.readDocument(id, symbolSuffix)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return component.New(id, fp, sym)
}

// FetchModel implements Fetcher. The directory layout keys models by part
// id, so uuid is not consulted.
func (d *DirFetcher) FetchModel(ctx context.Context, id, uuid string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.file(id, modelSuffix))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// IDs lists the part ids that have a footprint file, sorted.
func (d *DirFetcher) IDs() ([]string, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if id, ok := strings.CutSuffix(e.Name(), footprintSuffix); ok && id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
