package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sikhmentors/directory-api/internal/models"
)

var listFilter struct {
	university     string
	location       string
	program        string
	graduationYear int
}

var mentorsCmd = &cobra.Command{
	Use:   "mentors",
	Short: "List, show and delete mentor records",
}

var mentorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mentors; with --token the admin listing (including email) is used",
	RunE:  runMentorsList,
}

var mentorsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one mentor as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runMentorsGet,
}

var mentorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a mentor (requires --token)",
	Args:  cobra.ExactArgs(1),
	RunE:  runMentorsDelete,
}

func init() {
	f := mentorsListCmd.Flags()
	f.StringVar(&listFilter.university, "university", "", "Substring match on university")
	f.StringVar(&listFilter.location, "location", "", "Substring match on location")
	f.StringVar(&listFilter.program, "program", "", "Substring match on job title")
	f.IntVar(&listFilter.graduationYear, "graduation-year", 0, "Exact graduation year")

	mentorsCmd.AddCommand(mentorsListCmd)
	mentorsCmd.AddCommand(mentorsGetCmd)
	mentorsCmd.AddCommand(mentorsDeleteCmd)
}

func currentFilter() models.MentorFilter {
	filter := models.MentorFilter{
		University: listFilter.university,
		Location:   listFilter.location,
		Program:    listFilter.program,
	}
	if listFilter.graduationYear != 0 {
		filter.GraduationYear = models.Year(listFilter.graduationYear)
	}
	return filter
}

func runMentorsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	c := newClient()
	out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	if c.Token() != "" {
		mentors, err := c.ListMentorsAdmin(ctx, currentFilter())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "ID\tNAME\tEMAIL\tUNIVERSITY\tJOB TITLE\tLOCATION")
		for _, m := range mentors {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, m.University, m.JobTitle, m.Location)
		}
		return out.Flush()
	}

	mentors, err := c.ListMentors(ctx, currentFilter())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "ID\tNAME\tUNIVERSITY\tJOB TITLE\tLOCATION")
	for _, m := range mentors {
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.University, m.JobTitle, m.Location)
	}
	return out.Flush()
}

func runMentorsGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	mentor, err := newClient().GetMentor(ctx, id)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), mentor)
}

func runMentorsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	c := newClient()
	if c.Token() == "" {
		return fmt.Errorf("delete requires --token (run directoryctl login)")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if err := c.DeleteMentor(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted mentor %d\n", id)
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid mentor id %q", raw)
	}
	return id, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
