package main

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/option"
)

// classFile is one discovered class file's raw bytes paired with a
// human-readable origin, used only for diagnostics.
type classFile struct {
	origin string
	data   []byte
}

// collectClassFiles discovers every .class entry under path: archive
// members for a .jar/.war, or a recursive directory walk otherwise.
func collectClassFiles(ctx context.Context, path string) ([]classFile, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".jar") || strings.HasSuffix(lower, ".war") {
		return collectFromArchive(path)
	}
	return collectFromDirectory(ctx, path)
}

func collectFromArchive(path string) ([]classFile, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer zr.Close()

	var out []classFile
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") || !classFileIncluded(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening archive entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading archive entry %s: %w", f.Name, err)
		}
		out = append(out, classFile{origin: path + "!" + f.Name, data: data})
	}
	return out, nil
}

// collectFromDirectory walks path with afs so that a future remote
// store (S3, GCS, ...) can be scanned through the same routine as a
// local directory, without duplicating the discovery logic.
func collectFromDirectory(ctx context.Context, path string) ([]classFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	url := "file://" + abs

	service := afs.New()
	objects, err := service.List(ctx, url, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", url, err)
	}

	var out []classFile
	for _, obj := range objects {
		if obj.IsDir() || !strings.HasSuffix(obj.Name(), ".class") || !classFileIncluded(obj.Name()) {
			continue
		}
		rc, err := service.OpenURL(ctx, obj.URL())
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", obj.URL(), err)
		}
		data, err := io.ReadAll(rc)
		closeErr := rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", obj.URL(), err)
		}
		if closeErr != nil {
			return nil, closeErr
		}
		out = append(out, classFile{origin: obj.URL(), data: data})
	}
	return out, nil
}

// classFileIncluded reports whether name (an archive entry path for a
// .jar/.war, or the file's base name as afs reports it for a directory
// walk) passes the configured include/exclude
// globs: excluded if it matches any exclude glob, included if there
// are no include globs or it matches at least one.
func classFileIncluded(name string) bool {
	if globMatchesAny(scanExcludeGlobs, name) {
		return false
	}
	if len(scanIncludeGlobs) == 0 {
		return true
	}
	return globMatchesAny(scanIncludeGlobs, name)
}

func globMatchesAny(globs []string, name string) bool {
	for _, g := range globs {
		if ok, err := filepath.Match(g, name); err == nil && ok {
			return true
		}
	}
	return false
}

// fingerprintInput returns the bytes used to fingerprint a scan target
// for the jar cache: the whole archive's bytes for a .jar/.war, or nil
// for a directory (directories are never fingerprint-cached, since a
// single mtime-free hash over an arbitrarily large tree defeats the
// purpose of the cache).
func fingerprintInput(path string) ([]byte, bool) {
	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".jar") && !strings.HasSuffix(lower, ".war") {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}
