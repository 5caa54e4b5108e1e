package commands

import (
	"context"
	"fmt"

	"ecoatlas/internal/models"
	"ecoatlas/internal/services"
	contextutils "ecoatlas/internal/utils"

	"github.com/spf13/cobra"
)

// seedProblem is a sample problem with the solutions inserted under it.
type seedProblem struct {
	Problem   models.CreateProblemRequest
	Solutions []models.CreateSolutionRequest
}

// sampleCatalogue is the demo data loaded by "adm seed". Solution ProblemIDs
// are filled in after the parent insert.
var sampleCatalogue = []seedProblem{
	{
		Problem: models.CreateProblemRequest{
			Title:       "Plastic pollution of rivers",
			Description: "Single-use packaging reaches rivers through storm drains and illegal dumping, harming fish and birds.",
			Category:    models.CategoryWater,
			Severity:    4,
		},
		Solutions: []models.CreateSolutionRequest{
			{Title: "Carry a reusable bottle", Description: "Replace bottled water with a refillable bottle.", Level: models.LevelIndividual, Difficulty: models.RankLow, Impact: models.RankMedium},
			{Title: "Riverbank clean-up days", Description: "Organise monthly volunteer clean-ups along the riverbank.", Level: models.LevelCommunity, Difficulty: models.RankMedium, Impact: models.RankMedium},
			{Title: "Deposit return scheme", Description: "Introduce a refundable deposit on bottles and cans.", Level: models.LevelGovernment, Difficulty: models.RankHigh, Impact: models.RankHigh},
		},
	},
	{
		Problem: models.CreateProblemRequest{
			Title:       "Deforestation",
			Description: "Clear-cutting for agriculture and timber reduces biodiversity and carbon capture.",
			Category:    models.CategoryForest,
			Severity:    5,
		},
		Solutions: []models.CreateSolutionRequest{
			{Title: "Buy certified wood", Description: "Prefer FSC-certified timber and paper products.", Level: models.LevelIndividual, Difficulty: models.RankLow, Impact: models.RankLow},
			{Title: "Community tree planting", Description: "Plant native species on degraded municipal land.", Level: models.LevelCommunity, Difficulty: models.RankMedium, Impact: models.RankHigh},
		},
	},
	{
		Problem: models.CreateProblemRequest{
			Title:       "Urban smog",
			Description: "Traffic and heating emissions raise particulate levels above safe limits in winter.",
			Category:    models.CategoryAir,
			Severity:    4,
		},
		Solutions: []models.CreateSolutionRequest{
			{Title: "Cycle to work", Description: "Swap short car trips for cycling or walking.", Level: models.LevelIndividual, Difficulty: models.RankMedium, Impact: models.RankMedium},
			{Title: "Low emission zones", Description: "Restrict high-emission vehicles in the city centre.", Level: models.LevelGovernment, Difficulty: models.RankHigh, Impact: models.RankHigh},
		},
	},
	{
		Problem: models.CreateProblemRequest{
			Title:       "Overflowing landfills",
			Description: "Mixed household waste is buried instead of being sorted and recycled.",
			Category:    models.CategoryWaste,
			Severity:    3,
		},
		Solutions: []models.CreateSolutionRequest{
			{Title: "Home composting", Description: "Compost kitchen scraps instead of binning them.", Level: models.LevelIndividual, Difficulty: models.RankLow, Impact: models.RankMedium},
			{Title: "Separate collection points", Description: "Install sorted bins for glass, paper and plastic in every yard.", Level: models.LevelCommunity, Difficulty: models.RankMedium, Impact: models.RankHigh},
		},
	},
	{
		Problem: models.CreateProblemRequest{
			Title:       "Soil erosion on farmland",
			Description: "Bare fields lose topsoil to wind and rain, lowering yields.",
			Category:    models.CategorySoil,
			Severity:    3,
		},
		Solutions: []models.CreateSolutionRequest{
			{Title: "Cover crops", Description: "Keep fields planted between harvests.", Level: models.LevelCommunity, Difficulty: models.RankMedium, Impact: models.RankHigh},
		},
	},
	{
		Problem: models.CreateProblemRequest{
			Title:       "Radon in basements",
			Description: "Naturally occurring radon accumulates in poorly ventilated homes.",
			Category:    models.CategoryRadiation,
			Severity:    2,
		},
		Solutions: []models.CreateSolutionRequest{
			{Title: "Test your home", Description: "Use a radon test kit and ventilate if levels are high.", Level: models.LevelIndividual, Difficulty: models.RankLow, Impact: models.RankMedium},
		},
	},
}

// SeedCommand returns the sample data loader.
func SeedCommand(env *Env) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample problems and solutions",
		Long: `Load sample problems and solutions.

The catalogue is only seeded when it has no problems yet, unless --force is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := env.DB(ctx)
			if err != nil {
				return contextutils.WrapError(err, "failed to connect to database")
			}

			stats, err := services.NewStatsService(db, env.Logger).GetStats(ctx)
			if err != nil {
				return contextutils.WrapError(err, "failed to read catalogue")
			}
			if stats.Problems > 0 && !force {
				fmt.Fprintf(cmd.OutOrStdout(), "Catalogue already has %d problems; use --force to seed anyway\n", stats.Problems)
				return nil
			}

			problems := services.NewProblemService(db, env.Logger, nil)
			solutions := services.NewSolutionService(db, env.Logger, nil)
			nProblems, nSolutions, err := seedCatalogue(ctx, problems, solutions, sampleCatalogue)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d problems and %d solutions\n", nProblems, nSolutions)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Seed even if problems already exist")
	return cmd
}

type problemCreator interface {
	CreateProblem(ctx context.Context, req models.CreateProblemRequest) (*models.Problem, error)
}

type solutionCreator interface {
	CreateSolution(ctx context.Context, req models.CreateSolutionRequest) (*models.Solution, error)
}

func seedCatalogue(ctx context.Context, problems problemCreator, solutions solutionCreator, catalogue []seedProblem) (int, int, error) {
	var nProblems, nSolutions int
	for _, entry := range catalogue {
		problem, err := problems.CreateProblem(ctx, entry.Problem)
		if err != nil {
			return nProblems, nSolutions, contextutils.WrapErrorf(err, "failed to seed problem %q", entry.Problem.Title)
		}
		nProblems++

		for _, req := range entry.Solutions {
			req.ProblemID = problem.ID
			if _, err := solutions.CreateSolution(ctx, req); err != nil {
				return nProblems, nSolutions, contextutils.WrapErrorf(err, "failed to seed solution %q", req.Title)
			}
			nSolutions++
		}
	}
	return nProblems, nSolutions, nil
}
