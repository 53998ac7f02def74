package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/photo-edit-mcp/internal/editor"
)

func newApplyCmd(flags *globalFlags) *cobra.Command {
	var ops []string

	cmd := &cobra.Command{
		Use:   "apply INPUT OUTPUT --op STEP [--op STEP ...]",
		Short: "Apply edits to a file without a client",
		Long: `Apply runs edit steps in order and saves the result.

Steps:
  resize=W,H  rotate=DEG  flip=horizontal|vertical
  grayscale  blur  sharpen
  brightness=F  contrast=F  color=F`,
		Example: "  photo-edit-mcp apply in.jpg out.png --op resize=800,600 --op brightness=1.2",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := make([]editor.Step, 0, len(ops))
			for _, op := range ops {
				step, err := editor.ParseStep(op)
				if err != nil {
					return err
				}
				steps = append(steps, step)
			}

			rt, err := setup(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runApply(rt, args[0], args[1], steps)
		},
	}

	cmd.Flags().StringArrayVar(&ops, "op", nil, "edit step, repeatable")
	return cmd
}

func runApply(rt *runtime, in, out string, steps []editor.Step) error {
	if _, err := rt.editor.Load(in); err != nil {
		return err
	}
	for i, step := range steps {
		if err := rt.editor.Apply(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
		rt.log.WithFields(logrus.Fields{"step": step.String(), "depth": rt.editor.Depth()}).Debug("Step applied")
	}
	if err := rt.editor.Save(out); err != nil {
		return err
	}
	rt.log.WithFields(logrus.Fields{"input": in, "output": out, "steps": len(steps)}).Info("Saved")
	return nil
}
