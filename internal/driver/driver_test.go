package driver

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dheemansa/luminol/internal/sampler"
)

func writeTestImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if x < 8 {
				img.Set(x, y, color.RGBA{R: 20, G: 20, B: 30, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 220, G: 120, B: 40, A: 255})
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
}

func TestRunMissingImagePathIsBadCLI(t *testing.T) {
	code := Run(context.Background(), Options{})
	if code != ExitBadCLI {
		t.Fatalf("expected ExitBadCLI, got %d", code)
	}
}

func TestRunMissingConfigIsBadConfig(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "wall.png")
	writeTestImage(t, imgPath)

	code := Run(context.Background(), Options{
		ImagePath:  imgPath,
		ConfigPath: filepath.Join(dir, "does-not-exist.toml"),
		Quality:    sampler.QualityFast,
		DryRun:     true,
	})
	if code != ExitBadConfig {
		t.Fatalf("expected ExitBadConfig, got %d", code)
	}
}

func TestRunWithNoAppsSucceeds(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "wall.png")
	writeTestImage(t, imgPath)

	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[global]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	code := Run(context.Background(), Options{
		ImagePath:  imgPath,
		ConfigPath: cfgPath,
		Quality:    sampler.QualityFast,
		DryRun:     true,
	})
	if code != ExitSuccess {
		t.Fatalf("expected ExitSuccess, got %d", code)
	}
}

func TestRunMissingAppColorsUnderRemapIsBadConfig(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "wall.png")
	writeTestImage(t, imgPath)

	cfgPath := filepath.Join(dir, "config.toml")
	cfgContents := "[global]\n" +
		"[waybar]\n" +
		"output-file = \"" + filepath.Join(dir, "out", "waybar.css") + "\"\n" +
		"color-format = \"hex6\"\n" +
		"syntax = \"{name}: {color};\"\n" +
		"remap-colors = true\n"
	if err := os.WriteFile(cfgPath, []byte(cfgContents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	code := Run(context.Background(), Options{
		ImagePath:  imgPath,
		ConfigPath: cfgPath,
		Quality:    sampler.QualityFast,
	})
	if code != ExitBadConfig {
		t.Fatalf("expected ExitBadConfig for remap-colors with no [waybar.colors], got %d", code)
	}
}

func TestRunRendersConfiguredApp(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "wall.png")
	writeTestImage(t, imgPath)

	outPath := filepath.Join(dir, "out", "colors.rasi")
	cfgPath := filepath.Join(dir, "config.toml")
	cfgContents := "[global]\n" +
		"[rofi]\n" +
		"output-file = \"" + outPath + "\"\n" +
		"color-format = \"hex6\"\n" +
		"syntax = \"*{{name}: {color};}\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfgContents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	code := Run(context.Background(), Options{
		ImagePath:  imgPath,
		ConfigPath: cfgPath,
		Quality:    sampler.QualityFast,
	})
	if code != ExitSuccess && code != ExitPartialSuccess {
		t.Fatalf("expected success or partial success, got %d", code)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected output file to be written: %v", err)
	}
}
