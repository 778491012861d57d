package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/packops/pkg/cobrax/topics"
)

func newTopicsCmd(tm *topics.TopicManager) *cobra.Command {
	return &cobra.Command{
		Use:     "topics [topic]",
		Short:   MsgTopicsShort,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return tm.ListTopics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				tm.WriteList(out, cmd.Root().Name())
				return nil
			}
			topic, ok := tm.GetTopic(args[0])
			if !ok {
				return fmt.Errorf(MsgTopicNotFound, args[0])
			}
			fmt.Fprint(out, tm.Render(topic))
			return nil
		},
	}
}
