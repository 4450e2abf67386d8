package main

import (
	"fmt"
	"os"

	"github.com/funvibe/castcheck/internal/universe"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// caseFile is the layout of a batch file for the check command.
type caseFile struct {
	// Declarations are added to the universe before any case runs.
	Declarations *universe.Declarations `yaml:"declarations,omitempty"`
	Cases        []checkCase            `yaml:"cases"`
}

// checkCase states expected answers for one pair of types. Only the answers
// present are checked.
type checkCase struct {
	Name string `yaml:"name,omitempty"`
	From string `yaml:"from"`
	To   string `yaml:"to,omitempty"`

	Possible *bool `yaml:"possible,omitempty"`
	Erased   *bool `yaml:"erased,omitempty"`

	// Reconstruct names a classifier to reconstruct from From.
	Reconstruct string `yaml:"reconstruct,omitempty"`
	Expect      string `yaml:"expect,omitempty"`
	Complete    *bool  `yaml:"complete,omitempty"`
}

func (c checkCase) title() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Reconstruct != "" {
		return c.From + " to " + c.Reconstruct
	}
	return c.From + " as " + c.To
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check CASES.yaml",
		Short: "Run a batch of cast cases and compare the answers with the expected ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := loadCases(args[0])
			if err != nil {
				return err
			}
			if cf.Declarations != nil {
				if err := a.universe.Apply(cf.Declarations, args[0]); err != nil {
					return err
				}
			}

			failed := 0
			for i, c := range cf.Cases {
				problems, err := a.runCase(c)
				if err != nil {
					return fmt.Errorf("%s: cases[%d]: %w", args[0], i, err)
				}
				if len(problems) == 0 {
					fmt.Fprintf(a.out, "%s %s\n", a.palette.good.Sprint("PASS"), c.title())
					continue
				}
				failed++
				fmt.Fprintf(a.out, "%s %s\n", a.palette.bad.Sprint("FAIL"), c.title())
				for _, p := range problems {
					fmt.Fprintf(a.out, "    %s\n", p)
				}
			}

			fmt.Fprintf(a.out, "%d passed, %d failed\n", len(cf.Cases)-failed, failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d cases failed", failed, len(cf.Cases))
			}
			return nil
		},
	}
}

func loadCases(path string) (*caseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cases %s: %w", path, err)
	}
	var cf caseFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i, c := range cf.Cases {
		if c.From == "" {
			return nil, fmt.Errorf("%s: cases[%d]: from is required", path, i)
		}
		if c.To == "" && c.Reconstruct == "" {
			return nil, fmt.Errorf("%s: cases[%d]: one of to or reconstruct is required", path, i)
		}
		if c.To != "" && c.Possible == nil && c.Erased == nil {
			return nil, fmt.Errorf("%s: cases[%d]: nothing to check for %s", path, i, c.To)
		}
	}
	return &cf, nil
}

// runCase returns one message per expectation that did not hold.
func (a *app) runCase(c checkCase) ([]string, error) {
	from, err := a.parse(c.From)
	if err != nil {
		return nil, err
	}

	var problems []string
	if c.To != "" {
		to, err := a.parse(c.To)
		if err != nil {
			return nil, err
		}
		if c.Possible != nil {
			if got := a.engine.IsCastPossible(from, to); got != *c.Possible {
				problems = append(problems, fmt.Sprintf("possible: got %t, want %t", got, *c.Possible))
			}
		}
		if c.Erased != nil {
			if got := a.engine.IsCastErased(from, to); got != *c.Erased {
				problems = append(problems, fmt.Sprintf("erased: got %t, want %t", got, *c.Erased))
			}
		}
	}

	if c.Reconstruct != "" {
		if from.Nullable {
			return nil, fmt.Errorf("%s: reconstruction needs a non-null type", from)
		}
		target, err := a.universe.Resolve(c.Reconstruct)
		if err != nil {
			return nil, err
		}
		res := a.engine.FindStaticallyKnownSubtype(from, target)
		got := "impossible"
		if res.OK() {
			got = res.Type.String()
		}
		if c.Expect != "" && got != c.Expect {
			problems = append(problems, fmt.Sprintf("reconstruct: got %s, want %s", got, c.Expect))
		}
		if c.Complete != nil && res.Complete != *c.Complete {
			problems = append(problems, fmt.Sprintf("complete: got %t, want %t", res.Complete, *c.Complete))
		}
	}
	return problems, nil
}
