package generate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dtnitsch/wordfreq/internal/common"
	"github.com/dtnitsch/wordfreq/models"
	"github.com/dtnitsch/wordfreq/pkg/generator"
	"github.com/dtnitsch/wordfreq/pkg/storage"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

func GenerateAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	size, err := models.ParseByteSize(c.String("size"))
	if err != nil {
		return err
	}
	if size <= 0 {
		return fmt.Errorf("%w: size must be positive", models.ErrInvalidConfig)
	}
	groups := c.Int("vocab")
	if groups <= 0 {
		return fmt.Errorf("%w: vocab must be positive, got %d", models.ErrInvalidConfig, groups)
	}

	g := generator.New(generator.Options{
		DictDir: c.String("dict-dir"),
		Groups:  groups,
		Size:    int64(size),
		Seed:    c.Uint64("seed"),
		Logger:  logger,
	})

	out := c.String("out")
	s := &storage.Storage{}
	if s.HasFile(out) && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", out)
	}
	logger.Info("Generating corpus",
		"out", out,
		"size", humanize.IBytes(uint64(size)),
		"vocab_groups", groups,
		"seed", g.Seed(),
	)

	words, err := g.LoadDictionary()
	if err != nil {
		return err
	}
	if c.Bool("show-words") {
		printVocabulary(c, words)
	}

	written, err := g.WriteFile(c.Context, out, words)
	if err != nil {
		return err
	}

	fmt.Fprintf(common.Out(c), "Generated: %s (%s, %d vocabulary words, seed %d)\n",
		out, humanize.IBytes(uint64(written)), len(words), g.Seed())
	return nil
}

// printVocabulary lists the sampled words in order, ten per line.
func printVocabulary(c *cli.Context, words []string) {
	words = slices.Sorted(slices.Values(words))
	w := common.Out(c)
	fmt.Fprintln(w, "Selected words:")
	for i := 0; i < len(words); i += 10 {
		fmt.Fprintln(w, strings.Join(words[i:min(i+10, len(words))], ", "))
	}
	fmt.Fprintln(w)
}
