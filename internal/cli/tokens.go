package cli

import (
	"fmt"

	"github.com/dshills/tfreview/internal/annotate"
	"github.com/dshills/tfreview/internal/files"
	"github.com/dshills/tfreview/internal/review"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Estimate the prompt tokens a run would send, without calling the API",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		path := cfg.Paths.Input
		if len(args) == 1 {
			path = args[0]
		}
		lines, err := files.ReadLines(path)
		if err != nil {
			fail(log, err)
			return nil
		}
		guidelines, err := review.LoadGuidelines(cfg.RulesFile)
		if err != nil {
			fail(log, err)
			return nil
		}
		roles, err := reviewRoles(cfg)
		if err != nil {
			return err
		}
		match, err := annotate.ParseMatch(cfg.BlockMatch)
		if err != nil {
			return err
		}

		counter := newCounter(cfg, log)
		text := files.Text(lines)
		out := cmd.OutOrStdout()
		total := 0

		fmt.Fprintf(out, "%s (tokenizer: %s)\n", path, cfg.Tokenizer())
		for _, role := range roles {
			n := counter.Count(review.BuildPrompt(role, cfg.Language, text, guidelines))
			total += n
			fmt.Fprintf(out, "  %-26s %6d\n", role.Name, n)
		}

		blocks := match.FindBlocks(lines, cfg.BlockKeywords)
		blockTokens := 0
		for _, b := range blocks {
			blockTokens += counter.Count(annotate.Prompt(cfg.Language, b))
		}
		total += blockTokens
		fmt.Fprintf(out, "  %-26s %6d\n", fmt.Sprintf("%d block prompt(s)", len(blocks)), blockTokens)
		fmt.Fprintf(out, "  %-26s %6d\n", "total", total)
		return nil
	},
}

func init() {
	addRunFlags(tokensCmd)
}
