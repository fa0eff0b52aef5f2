package webdriver

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"instagrab/pkg/logger"
)

// driverBinaryName is the file staged into the install directory and the
// name looked for inside downloaded archives.
const driverBinaryName = "chromedriver"

// StagedPath returns where the driver binary is staged for the configured
// install directory.
func (b *Bootstrap) StagedPath() string {
	return filepath.Join(b.opts.InstallDir, driverBinaryName)
}

// markerPath is the file recording which driver version is currently staged.
func (b *Bootstrap) markerPath() string {
	return b.StagedPath() + ".version"
}

// Install ensures a driver binary matching the installed browser is staged
// and returns its path. When the staged version already matches the resolved
// one, the download is skipped. There are no retries; any download or unpack
// failure is returned to the caller.
func (b *Bootstrap) Install(ctx context.Context) (string, error) {
	full, major, err := BrowserVersion(ctx, b.opts.BrowserPath)
	if err != nil {
		return "", fmt.Errorf("could not detect browser version: %w", err)
	}
	ctx = logger.WithFields(ctx, zap.String("browserVersion", full))

	version, downloadURL, err := b.ResolveDriverVersion(ctx, full, major)
	if err != nil {
		return "", fmt.Errorf("could not resolve driver version: %w", err)
	}

	staged := b.StagedPath()
	if b.stagedVersion() == version {
		if _, err := os.Stat(staged); err == nil {
			logger.Info(ctx, "driver already staged", zap.String("driverVersion", version))

			return staged, nil
		}
	}

	logger.Info(ctx, "downloading driver",
		zap.String("driverVersion", version),
		zap.String("url", downloadURL))

	archive, err := b.download(ctx, downloadURL)
	if err != nil {
		return "", err
	}

	if err := b.stage(archive, staged); err != nil {
		return "", err
	}
	if err := os.WriteFile(b.markerPath(), []byte(version), 0o644); err != nil {
		return "", fmt.Errorf("could not write version marker: %w", err)
	}

	logger.Info(ctx, "driver staged",
		zap.String("driverVersion", version),
		zap.String("path", staged))

	return staged, nil
}

// stagedVersion returns the version recorded by the last successful Install,
// or empty when none exists.
func (b *Bootstrap) stagedVersion() string {
	raw, err := os.ReadFile(b.markerPath())
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(raw))
}

// download fetches the driver archive into memory.
func (b *Bootstrap) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not download archive: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("archive download failed with status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read archive: %w", err)
	}

	return raw, nil
}

// stage extracts the driver binary from the zip archive and writes it,
// executable, to dst. Both archive layouts are handled: a top-level binary
// (legacy bucket) and one nested a single directory deep (chrome-for-testing).
func (b *Bootstrap) stage(archive []byte, dst string) error {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return fmt.Errorf("could not open archive: %w", err)
	}

	var entry *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if filepath.Base(f.Name) == driverBinaryName {
			entry = f

			break
		}
	}
	if entry == nil {
		return fmt.Errorf("archive does not contain %q", driverBinaryName)
	}

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("could not open archive entry: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("could not create install dir: %w", err)
	}

	// Write to a temp file in the same directory and rename, so a concurrent
	// reader never sees a partially written binary.
	tmp, err := os.CreateTemp(filepath.Dir(dst), driverBinaryName+".*")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, rc); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("could not extract driver: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("could not close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o755); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("could not chmod driver: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("could not stage driver: %w", err)
	}

	return nil
}
