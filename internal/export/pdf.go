package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"resumeforge/internal/shared/telemetry"
)

// PDFExporter renders markdown to PDF through a headless Chromium print.
type PDFExporter struct {
	// ChromiumPath is the browser binary to invoke. Empty means "chromium"
	// on PATH.
	ChromiumPath string
}

// ExportPDF renders the markdown as A4 PDF bytes. The temporary working
// directory is removed whether the print succeeds or not.
func (e *PDFExporter) ExportPDF(ctx context.Context, md string) ([]byte, error) {
	binary := e.ChromiumPath
	if binary == "" {
		binary = "chromium"
	}

	dir, err := os.MkdirTemp("", "resumeforge-pdf-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	inputPath := filepath.Join(dir, "resume.html")
	outputPath := filepath.Join(dir, "resume.pdf")
	if err := os.WriteFile(inputPath, []byte(RenderHTML(md)), 0o600); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, binary,
		"--headless",
		"--disable-gpu",
		"--no-sandbox",
		"--no-pdf-header-footer",
		"--print-to-pdf="+outputPath,
		inputPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		telemetry.Warn("export.pdf_failed", map[string]any{
			"error":  err.Error(),
			"output": string(out),
		})
		return nil, fmt.Errorf("chromium print failed: %w", err)
	}

	pdf, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("chromium produced no output: %w", err)
	}
	return pdf, nil
}
