// Package cli provides the brandcolor command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ironsheep/brandcolor/internal/imaging"
	"github.com/ironsheep/brandcolor/internal/report"
)

const (
	// DefaultBannerPath and DefaultLogoPath are resolved against the working
	// directory.
	DefaultBannerPath = "src/assets/banner.png"
	DefaultLogoPath   = "pics/Stylized app logo4.png"

	// LogLevelEnv selects the log level (trace, debug, info, warn, error).
	LogLevelEnv = "BRANDCOLOR_LOG_LEVEL"
)

// BuildInfo carries version metadata set by ldflags in main.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// Options are the resolved command line settings.
type Options struct {
	BannerPath string
	LogoPath   string
	X          int
	Y          int
	SampleSize int
	TopN       int
	Verbose    bool
}

// AddFlags registers the command flags on fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BannerPath, "banner", DefaultBannerPath, "banner image to sample the background color from")
	fs.StringVar(&o.LogoPath, "logo", DefaultLogoPath, "logo image to extract the highlight color from")
	fs.IntVar(&o.X, "x", 0, "x coordinate of the banner pixel to sample")
	fs.IntVar(&o.Y, "y", 0, "y coordinate of the banner pixel to sample")
	fs.IntVar(&o.SampleSize, "size", imaging.DefaultSampleSize, "edge length the logo is downsampled to")
	fs.IntVar(&o.TopN, "top", imaging.DefaultTopN, "number of frequent colors considered as candidates")
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "enable debug logging")
}

// Validate rejects settings that cannot produce a highlight.
func (o *Options) Validate() error {
	if o.SampleSize <= 0 {
		return fmt.Errorf("invalid --size %d: must be a positive number of pixels", o.SampleSize)
	}
	if o.TopN <= 0 {
		return fmt.Errorf("invalid --top %d: must be at least 1", o.TopN)
	}
	return nil
}

// NewRootCmd builds the brandcolor command.
func NewRootCmd(info BuildInfo) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "brandcolor",
		Short: "Extract theme colors from a banner and a logo",
		Long: `brandcolor reads two image assets and prints colors for theming a UI:
the banner's background color (a single sampled pixel, top-left by default)
and the logo's highlight color (the most saturated of its frequent colors).

Log level can be set with ` + LogLevelEnv + `=debug.`,
		Version:      info.Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
			logger.Debug("starting", "version", info.Version, "built", info.BuildTime, "commit", info.GitCommit)
			return Run(cmd.OutOrStdout(), logger, *opts)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("brandcolor %s\n  Build time: %s\n  Git commit: %s\n",
		info.Version, info.BuildTime, info.GitCommit))
	opts.AddFlags(cmd.Flags())

	return cmd
}

// Run processes the banner and logo and writes the report to w.
//
// Extraction failures are part of the report and do not make Run fail; only
// a failure to write the report is returned.
func Run(w io.Writer, logger hclog.Logger, opts Options) error {
	bannerPath := absPath(opts.BannerPath)
	logoPath := absPath(opts.LogoPath)

	cache := imaging.NewImageCache()
	logImageInfo(logger, cache, "banner", bannerPath)
	logImageInfo(logger, cache, "logo", logoPath)

	background := imaging.SamplePixel(cache, bannerPath, opts.X, opts.Y)
	if !background.OK() {
		logger.Warn("banner sampling failed", "path", bannerPath, "error", background.Message())
	}

	highlight := imaging.ExtractHighlight(cache, logoPath, imaging.HighlightOptions{
		SampleSize: opts.SampleSize,
		TopN:       opts.TopN,
	})
	if !highlight.Best.OK() {
		logger.Warn("highlight extraction failed", "path", logoPath, "error", highlight.Best.Message())
	} else {
		logger.Debug("highlight extracted", "candidates", len(highlight.Candidates), "fallback", highlight.Fallback)
	}

	return report.Write(w, report.Report{
		BannerPath: bannerPath,
		LogoPath:   logoPath,
		Background: background,
		Highlight:  highlight,
	})
}

func logImageInfo(logger hclog.Logger, cache *imaging.ImageCache, role, path string) {
	if !logger.IsDebug() {
		return
	}
	info, err := imaging.LoadImageInfo(cache, path)
	if err != nil {
		logger.Debug("image not loaded", "role", role, "path", path, "error", err)
		return
	}
	logger.Debug("image loaded", "role", role, "path", path,
		"width", info.Width, "height", info.Height, "format", info.Format, "bytes", info.FileSizeBytes)
}

// absPath resolves p against the working directory, returning p unchanged if
// that fails.
func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

func newLogger(out io.Writer, verbose bool) hclog.Logger {
	level := hclog.Warn
	if env := strings.TrimSpace(os.Getenv(LogLevelEnv)); env != "" {
		if l := hclog.LevelFromString(env); l != hclog.NoLevel {
			level = l
		}
	}
	if verbose && level > hclog.Debug {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "brandcolor",
		Level:  level,
		Output: out,
	})
}
