package pkgfetcher

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/mholt/archiver"
	"github.com/ulikunitz/xz"

	"github.com/open-edge-platform/node-release-info/internal/platform"
	"github.com/open-edge-platform/node-release-info/internal/utils/logger"
)

// ErrUnsupportedFormat is returned for artifact formats that cannot be
// unpacked in-process (installers and 7z archives).
var ErrUnsupportedFormat = errors.New("unsupported archive format")

// Extract unpacks archivePath into destDir according to format.
func Extract(archivePath, destDir string, format platform.Format) error {
	log := logger.Logger()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating extraction directory: %w", err)
	}

	switch format {
	case platform.TarGz, platform.TarXz:
		f, err := os.Open(archivePath)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer f.Close()

		var r io.Reader
		if format == platform.TarGz {
			gz, err := gzip.NewReader(f)
			if err != nil {
				return fmt.Errorf("reading gzip stream: %w", err)
			}
			defer gz.Close()
			r = gz
		} else {
			xr, err := xz.NewReader(f)
			if err != nil {
				return fmt.Errorf("reading xz stream: %w", err)
			}
			r = xr
		}
		n, err := untar(r, destDir)
		if err != nil {
			return fmt.Errorf("extracting %s: %w", filepath.Base(archivePath), err)
		}
		log.Debugf("extracted %d entries from %s", n, archivePath)
		return nil

	case platform.Zip:
		n, err := unzip(archivePath, destDir)
		if err != nil {
			return fmt.Errorf("extracting %s: %w", filepath.Base(archivePath), err)
		}
		log.Debugf("extracted %d entries from %s", n, archivePath)
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func untar(r io.Reader, destDir string) (int, error) {
	root, err := filepath.Abs(destDir)
	if err != nil {
		return 0, err
	}

	tr := tar.NewReader(r)
	n := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}

		target, err := within(root, hdr.Name)
		if err != nil {
			return n, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return n, err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return n, err
			}
		case tar.TypeSymlink:
			if filepath.IsAbs(hdr.Linkname) {
				return n, fmt.Errorf("absolute symlink %s -> %s", hdr.Name, hdr.Linkname)
			}
			if _, err := within(root, filepath.Join(filepath.Dir(hdr.Name), hdr.Linkname)); err != nil {
				return n, err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return n, err
			}
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return n, err
			}
		default:
			// hard links, devices and pax metadata are not part of release archives
			continue
		}
		n++
	}
}

func unzip(archivePath, destDir string) (int, error) {
	root, err := filepath.Abs(destDir)
	if err != nil {
		return 0, err
	}

	n := 0
	err = archiver.NewZip().Walk(archivePath, func(f archiver.File) error {
		hdr, ok := f.Header.(zip.FileHeader)
		if !ok {
			return fmt.Errorf("unexpected zip header %T", f.Header)
		}
		target, err := within(root, hdr.Name)
		if err != nil {
			return err
		}
		if f.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		} else if f.Mode().IsRegular() {
			if err := writeFile(target, f, f.Mode().Perm()); err != nil {
				return err
			}
		} else {
			// symlinks and other special entries are not part of release zips
			return nil
		}
		n++
		return nil
	})
	return n, err
}

// within joins name onto root and rejects paths escaping it.
func within(root, name string) (string, error) {
	target := filepath.Join(root, name)
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal path in archive: %s", name)
	}
	return target, nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
