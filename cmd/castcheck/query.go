package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPossibleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "possible LHS RHS",
		Short: "Report whether a value of type LHS can ever be cast to RHS",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lhs, err := a.parse(args[0])
			if err != nil {
				return err
			}
			rhs, err := a.parse(args[1])
			if err != nil {
				return err
			}
			ok := a.engine.IsCastPossible(lhs, rhs)
			fmt.Fprintf(a.out, "%s as %s: %s\n", lhs, rhs, a.palette.verdict(ok, "possible", "impossible"))
			return nil
		},
	}
}

func newErasedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "erased FROM TO",
		Short: "Report whether casting FROM to TO needs type arguments the runtime cannot check",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := a.parse(args[0])
			if err != nil {
				return err
			}
			to, err := a.parse(args[1])
			if err != nil {
				return err
			}
			erased := a.engine.IsCastErased(from, to)
			fmt.Fprintf(a.out, "%s as %s: %s\n", from, to, a.palette.verdict(!erased, "checked", "erased"))
			return nil
		},
	}
}

func newReconstructCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reconstruct FROM CLASSIFIER",
		Short: "Print the instantiation of CLASSIFIER statically implied by a value of type FROM",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := a.parse(args[0])
			if err != nil {
				return err
			}
			if from.Nullable {
				return fmt.Errorf("%s: reconstruction needs a non-null type", from)
			}
			c, err := a.universe.Resolve(args[1])
			if err != nil {
				return err
			}

			res := a.engine.FindStaticallyKnownSubtype(from, c)
			if !res.OK() {
				fmt.Fprintf(a.out, "%s to %s: %s\n", from, c, a.palette.bad.Sprint("impossible"))
				return nil
			}
			state := "complete"
			if !res.Complete {
				state = "incomplete"
			}
			fmt.Fprintf(a.out, "%s to %s: %s %s\n", from, c, res.Type, a.palette.note.Sprintf("(%s)", state))
			return nil
		},
	}
}

func newClassifiersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classifiers",
		Short: "List the known classifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range a.universe.IDs() {
				c := a.universe.MustLookup(id)
				line := c.DefaultType().String()
				if c.IsInterface() {
					line = "interface " + line
				} else if c.IsFinal() {
					line = "final " + line
				}
				if natives := a.universe.Platform().MapEquivalents(c); len(natives) > 0 {
					line += a.palette.note.Sprintf(" -> %v", natives)
				}
				fmt.Fprintln(a.out, line)
			}
			return nil
		},
	}
}
