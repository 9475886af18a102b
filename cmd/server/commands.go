package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ashureev/scaffolder/internal/catalog"
	"github.com/ashureev/scaffolder/internal/config"
	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/ashureev/scaffolder/internal/store"
	"github.com/spf13/cobra"
)

var poemsCmd = &cobra.Command{
	Use:   "poems",
	Short: "Inspect the poem catalog",
}

var poemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every poem in POEM_DATA_PATH",
	Args:  cobra.NoArgs,
	RunE:  runPoemsList,
}

var poemsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one poem as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runPoemsShow,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect stored reader profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show <user_name>",
	Short: "Print a reader's stored competency levels",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

func init() {
	poemsCmd.AddCommand(poemsListCmd, poemsShowCmd)
	profileCmd.AddCommand(profileShowCmd)
}

func runPoemsList(cmd *cobra.Command, _ []string) error {
	poems, err := catalog.Load(config.Read().PoemDataPath)
	if err != nil {
		return err
	}
	return writePoemTable(cmd.OutOrStdout(), poems.List())
}

func writePoemTable(out io.Writer, poems []domain.Poem) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tLINES")
	for _, p := range poems {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", p.ID, p.Title, p.Author, strings.Count(p.Content, "\n")+1)
	}
	return tw.Flush()
}

func runPoemsShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("poem id must be an integer: %q", args[0])
	}

	poems, err := catalog.Load(config.Read().PoemDataPath)
	if err != nil {
		return err
	}
	poem, err := poems.Get(id)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), poem)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	repo, err := store.NewSQLite(config.Read().DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	profile, err := repo.GetProfile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("no profile stored for %q", args[0])
	}
	return writeJSON(cmd.OutOrStdout(), profile)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
