package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/naka-gawa/org-commits/internal/config"
	"github.com/naka-gawa/org-commits/internal/console"
	"github.com/naka-gawa/org-commits/internal/gateway"
	"github.com/naka-gawa/org-commits/internal/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// reportOptions are the values taken from the command line.
type reportOptions struct {
	inputs     config.Inputs
	outputPath string
	pageSize   int
	verbose    bool
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Writes the URLs of a user's commits in an organization to a file",
	Long: `Lists every repository of the organization, fetches the commit history of each one
and keeps the commits authored by the user. Values not given as flags are prompted for.
The GitHub token is read from GTOKEN (or GITHUB_TOKEN).`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := reportOptions{}
		opts.verbose, _ = cmd.InheritedFlags().GetBool("verbose")
		opts.inputs.Org, _ = cmd.Flags().GetString("org")
		opts.inputs.User, _ = cmd.Flags().GetString("user")
		opts.inputs.Since, _ = cmd.Flags().GetString("since")
		opts.inputs.SinceSet = cmd.Flags().Changed("since")
		opts.outputPath, _ = cmd.Flags().GetString("output")
		opts.pageSize, _ = cmd.Flags().GetInt("page-size")

		if err := runReport(context.Background(), opts, os.Stdin, os.Stdout, os.Stderr); err != nil {
			printError(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("org", "o", "", "Target GitHub organization name (prompted when empty)")
	reportCmd.Flags().StringP("user", "u", "", "Target GitHub user name (prompted when empty)")
	reportCmd.Flags().String("since", "", "Only commits after this time (YYYY-MM-DDTHH:MM:SSZ)")
	reportCmd.Flags().String("output", usecase.DefaultReportPath, "Path of the report file")
	reportCmd.Flags().Int("page-size", usecase.DefaultPageSize, "Records requested per page")
}

// printError reports a fatal error. A failed enumeration prints the underlying
// cause followed by a line naming the organization.
func printError(w io.Writer, err error) {
	var enumErr *usecase.EnumerationError
	switch {
	case errors.Is(err, config.ErrMissingToken):
		fmt.Fprintln(w, err)
	case errors.As(err, &enumErr):
		fmt.Fprintln(w, enumErr.Err)
		fmt.Fprintf(w, "Error: Unable to fetch repos from %s\n", enumErr.Org)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

// newLogger returns a logger that discards everything unless verbose is set.
func newLogger(verbose bool, stderr io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if verbose {
		logger.SetOutput(stderr)
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// runReport performs a full run. The token is checked before anything is
// prompted for or requested.
func runReport(ctx context.Context, opts reportOptions, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(opts.verbose, stderr)

	inputs, err := config.NewPrompter(stdin, stdout).Collect(opts.inputs)
	if err != nil {
		return err
	}
	start := time.Now()

	githubGateway, err := gateway.NewGitHubGateway(cfg.Token, cfg.APIURL, cfg.GraphQLURL, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	out := console.New(stdout)
	scanner := usecase.NewScanner(githubGateway, out, logger, opts.pageSize)

	scanner.DescribeOrganization(ctx, inputs.Org)
	repos, err := scanner.EnumerateRepositories(ctx, inputs.Org)
	if err != nil {
		return err
	}
	commits := scanner.CollectCommits(ctx, inputs.Org, repos, inputs.Since)

	report := usecase.BuildReport(commits, inputs.User)
	if err := usecase.WriteReport(opts.outputPath, report); err != nil {
		return err
	}
	logger.WithField("path", opts.outputPath).Debug("report written")

	usecase.PrintSummary(out, inputs.User, report, time.Since(start))
	return nil
}
