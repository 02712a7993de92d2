package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/armadaproject/lookout-preempt/internal/armadactl"
	"github.com/armadaproject/lookout-preempt/pkg/client/util"
)

func addJobFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("queue", "", "Select jobs in this queue. A trailing '*' matches by prefix.")
	cmd.Flags().String("job-set", "", "Select jobs in this job set. A trailing '*' matches by prefix.")
	cmd.Flags().StringSlice("job-ids", []string{}, "Select jobs with these ids (comma separated).")
	cmd.Flags().StringSlice("states", []string{}, "Select jobs in these states, e.g. QUEUED,RUNNING (comma separated).")
	cmd.Flags().String("owner", "", "Select jobs submitted by this user.")
	cmd.Flags().StringToString("annotations", map[string]string{}, "Select jobs with these annotations, e.g. team=infra,tier=gold.")
	cmd.Flags().StringP("from-file", "f", "", "Read the selection from a YAML or JSON file. Flags override values from the file.")
}

func jobFilterArgsFromFlags(cmd *cobra.Command) (*armadactl.JobFilterArgs, error) {
	flags := cmd.Flags()
	args := &armadactl.JobFilterArgs{}
	fromFile, err := flags.GetString("from-file")
	if err != nil {
		return nil, errors.WithMessage(err, "error reading from-file")
	}
	if fromFile != "" {
		if err := util.BindJsonOrYaml(fromFile, args); err != nil {
			return nil, err
		}
	}

	if flags.Changed("queue") {
		if args.Queue, err = flags.GetString("queue"); err != nil {
			return nil, errors.WithMessage(err, "error reading queue")
		}
	}
	if flags.Changed("job-set") {
		if args.JobSet, err = flags.GetString("job-set"); err != nil {
			return nil, errors.WithMessage(err, "error reading job-set")
		}
	}
	if flags.Changed("job-ids") {
		if args.JobIds, err = flags.GetStringSlice("job-ids"); err != nil {
			return nil, errors.WithMessage(err, "error reading job-ids")
		}
	}
	if flags.Changed("states") {
		if args.States, err = flags.GetStringSlice("states"); err != nil {
			return nil, errors.WithMessage(err, "error reading states")
		}
	}
	if flags.Changed("owner") {
		if args.Owner, err = flags.GetString("owner"); err != nil {
			return nil, errors.WithMessage(err, "error reading owner")
		}
	}
	if flags.Changed("annotations") {
		if args.Annotations, err = flags.GetStringToString("annotations"); err != nil {
			return nil, errors.WithMessage(err, "error reading annotations")
		}
	}
	return args, nil
}
