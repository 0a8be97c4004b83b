package cli

import (
	"github.com/dshills/tfreview/internal/output"
	"github.com/dshills/tfreview/internal/terminal"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Review the input file, write the report, and annotate the working copy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFull(cmd)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Run the three reviews and write the report only",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()
		p, err := newPipeline(cfg, log)
		if err != nil {
			fail(log, err)
			return nil
		}
		if _, err := p.Review(cmd.Context()); err != nil {
			fail(log, err)
		}
		return nil
	},
}

var flagDryRun bool

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Comment every block of the working copy",
	Long: `Annotate asks for a one-sentence description of every resource, module and
data block in the working copy and inserts it as a "# " comment above the
block. Running it twice adds a second comment above each block.

With --dry-run the annotated file is printed instead of written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()
		p, err := newPipeline(cfg, log)
		if err != nil {
			fail(log, err)
			return nil
		}
		res, err := p.Annotate(cmd.Context(), flagDryRun)
		if err != nil {
			fail(log, err)
			return nil
		}
		if flagDryRun {
			out := cmd.OutOrStdout()
			color := !flagNoColor && terminal.ColorAllowed(out)
			if err := output.Highlight(out, cfg.Paths.WorkingCopy, res.Annotated, color); err != nil {
				fail(log, err)
			}
		}
		return nil
	},
}

func runFull(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	p, err := newPipeline(cfg, log)
	if err != nil {
		fail(log, err)
		return nil
	}
	res, err := p.Run(cmd.Context())
	if err != nil {
		fail(log, err)
		return nil
	}
	log.Successf("%d review(s), %d block(s) annotated", len(res.Report.Issues), res.Blocks)
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{runCmd, reviewCmd, annotateCmd} {
		addRunFlags(cmd)
	}
	annotateCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the annotated file instead of writing it")
}
