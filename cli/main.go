package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tnqbao/gau-movie-service/config"
	"github.com/tnqbao/gau-movie-service/importer"
	infraPkg "github.com/tnqbao/gau-movie-service/infra"
	"github.com/tnqbao/gau-movie-service/repository"
)

func main() {
	root := &cobra.Command{
		Use:           "movie-import",
		Short:         "Import catalog CSV files into the movie store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(moviesCmd())
	root.AddCommand(studiosCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func moviesCmd() *cobra.Command {
	var strictYear bool

	cmd := &cobra.Command{
		Use:   "movies <csv-file>",
		Short: "Import movies from a CSV file",
		Long: `Import movies from a header-prefixed CSV file. Rows matching an existing
movie by title, studio and format update it in place; other rows create new
movies. Bad rows are reported and skipped, the run keeps going.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newImportService(importer.Options{
				StrictYear: strictYear,
				Output:     os.Stdout,
				Progress:   printProgress,
			})

			result, err := service.ImportMovies(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printSummary(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strictYear, "strict-year", false, "reject rows with a non-numeric year instead of storing 0")

	return cmd
}

func studiosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "studios <csv-file>",
		Short: "Import studios from a CSV file",
		Long: `Import studios from a header-prefixed CSV file. Studio names that already
exist are skipped, never updated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newImportService(importer.Options{
				Output:   os.Stdout,
				Progress: printProgress,
			})

			result, err := service.ImportStudios(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printSummary(result)
			return nil
		},
	}
}

// newImportService connects straight to Postgres. The CLI does not need the
// queue, cache or object store the services carry.
func newImportService(opts importer.Options) *importer.Service {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	postgres := infraPkg.InitPostgresClient(cfg.EnvConfig)
	repo := repository.NewRepository(postgres.DB)

	return importer.NewService(repo, opts)
}

func printProgress(done, total int) {
	fmt.Printf("\rProcessing %d/%d rows", done, total)
	if done == total {
		fmt.Println()
	}
}

func printSummary(result *importer.Result) {
	fmt.Printf("Import finished: imported=%d updated=%d errors=%d skipped=%d\n",
		result.Stats.Imported,
		result.Stats.Updated,
		result.Stats.Errors,
		result.Stats.Skipped,
	)
	if len(result.Errors) > 0 {
		fmt.Printf("%d row(s) failed, see the report above\n", len(result.Errors))
	}
}
