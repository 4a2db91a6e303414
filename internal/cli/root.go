// Package cli provides the command-line interface for Luminol.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dheemansa/luminol/internal/driver"
	"github.com/dheemansa/luminol/internal/role"
	"github.com/dheemansa/luminol/internal/sampler"
	"github.com/dheemansa/luminol/internal/version"
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	exitCode := driver.ExitSuccess
	root := newRootCmd(&exitCode)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "luminol: %v\n", err)
		if exitCode == driver.ExitSuccess {
			exitCode = driver.ExitBadCLI
		}
	}
	return exitCode
}

func newRootCmd(exitCode *int) *cobra.Command {
	var (
		imageFlag       string
		themeFlag       string
		qualityFlag     string
		verboseFlag     bool
		dryRunFlag      bool
		previewFlag     bool
		savePaletteFlag string
	)

	root := &cobra.Command{
		Use:   "luminol [IMAGE_PATH]",
		Short: "Extract a colour palette from a wallpaper and theme your desktop",
		Long: `Luminol extracts a colour palette from a wallpaper image, assigns
semantic UI and terminal roles to it, and renders per-application colour
configuration files.`,
		Version:      version.Short(),
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath := imageFlag
			if imagePath == "" && len(args) > 0 {
				imagePath = args[0]
			}

			theme, err := parseTheme(themeFlag)
			if err != nil {
				*exitCode = driver.ExitBadCLI
				return err
			}

			quality, err := parseQuality(qualityFlag)
			if err != nil {
				*exitCode = driver.ExitBadCLI
				return err
			}

			*exitCode = driver.Run(cmd.Context(), driver.Options{
				ImagePath:   imagePath,
				Theme:       theme,
				Quality:     quality,
				Verbose:     verboseFlag,
				DryRun:      dryRunFlag,
				Preview:     previewFlag,
				SavePalette: savePaletteFlag,
			})
			return nil
		},
	}

	root.SetVersionTemplate(version.String() + "\n")

	root.Flags().StringVarP(&imageFlag, "image", "i", "", "path to the wallpaper image")
	root.Flags().StringVarP(&themeFlag, "theme", "t", "", "override theme classification (light, dark)")
	root.Flags().StringVarP(&qualityFlag, "quality", "q", "balanced", "extraction quality (fast, balanced, high)")
	root.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose (debug-level) logging")
	root.Flags().BoolVar(&dryRunFlag, "dry-run", false, "preview without writing files or running subprocesses")
	root.Flags().BoolVar(&previewFlag, "preview", false, "print a colour palette preview table")
	root.Flags().StringVar(&savePaletteFlag, "save-palette", "", "save the extracted palette to PATH as JSON")

	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.String())
		},
	}
}

func parseTheme(s string) (role.ThemeType, error) {
	switch s {
	case "":
		return "", nil
	case "light":
		return role.ThemeLight, nil
	case "dark":
		return role.ThemeDark, nil
	default:
		return "", fmt.Errorf("invalid --theme value %q: want \"light\" or \"dark\"", s)
	}
}

func parseQuality(s string) (sampler.Quality, error) {
	switch sampler.Quality(s) {
	case sampler.QualityFast:
		return sampler.QualityFast, nil
	case sampler.QualityBalanced:
		return sampler.QualityBalanced, nil
	case sampler.QualityHigh:
		return sampler.QualityHigh, nil
	default:
		return "", fmt.Errorf("invalid --quality value %q: want \"fast\", \"balanced\" or \"high\"", s)
	}
}
