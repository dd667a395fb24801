package cmd

import (
	"fmt"
	"time"

	"github.com/alexiusacademia/gopond/internal/store"
	"github.com/spf13/cobra"
)

var revisionsCmd = &cobra.Command{
	Use:   "revisions",
	Short: "List the saved revisions of the model",
	Run: func(cmd *cobra.Command, args []string) {
		path := store.Path(modelFile)
		revs, err := store.Revisions(path)
		exitOnError(err)

		printHeader("REVISIONS - " + path)
		w := newTable()
		fmt.Fprintln(w, "  ID\tSaved\tBeam\tChange")
		for _, r := range revs {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n", r.ID, r.SavedAt.Local().Format(time.DateTime), r.Name, r.Note)
		}
		w.Flush()
		fmt.Println()
	},
}

var revertCmd = &cobra.Command{
	Use:   "revert <id>",
	Short: "Restore an earlier revision as the newest one",
	Long: `Restore an earlier revision of the model. The restored state is
saved as a new revision, so the history is kept.

Examples:
  gopond revisions
  gopond revert 3`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := int64(parseIndexArg(args[0]))
		b, err := store.LoadRevision(store.Path(modelFile), id)
		exitOnError(err)
		saveModel(b, fmt.Sprintf("revert to %d", id))
		fmt.Printf("Revision %d restored (%s)\n", id, b.Name())
	},
}

func init() {
	rootCmd.AddCommand(revisionsCmd, revertCmd)
}
