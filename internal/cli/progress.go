package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// NewProgress returns a progress callback that draws a bar on w. The bar is
// created lazily on the first call, once the total is known.
func NewProgress(w io.Writer, description string) func(done, total int) {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					if _, err := fmt.Fprintln(w); err != nil {
						slog.Warn("Failed to write newline after progress bar", "error", err)
					}
				}),
			)
		}
		if err := bar.Set(done); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
}
